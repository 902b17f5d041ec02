package core

import "testing"

func TestEncodeDecodeRoundTripU8(t *testing.T) {
	f := Frame{Op: OpWrite, Addr: RegMotorBrake, Type: TypeU8, Payload: EncodeU8(200)}
	buf := Encode(f)

	got, n, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Decode consumed %d bytes, want %d", n, len(buf))
	}
	if got.Op != f.Op || got.Addr != f.Addr || got.Type != f.Type {
		t.Fatalf("Decode() = %+v, want %+v", got, f)
	}
	if DecodeU8(got.Payload) != 200 {
		t.Fatalf("DecodeU8(payload) = %d, want 200", DecodeU8(got.Payload))
	}
}

func TestEncodeDecodeRoundTripI32(t *testing.T) {
	f := Frame{Op: OpWrite, Addr: RegMoveTo, Type: TypeI32, Payload: EncodeI32(-12345)}
	buf := Encode(f)

	got, _, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if DecodeI32(got.Payload) != -12345 {
		t.Fatalf("DecodeI32(payload) = %d, want -12345", DecodeI32(got.Payload))
	}
}

func TestDecodeRejectsBadSync(t *testing.T) {
	buf := Encode(Frame{Op: OpRead, Addr: 1, Type: TypeU8})
	buf[0] = 0x00

	if _, _, err := Decode(buf); err != errFrameBadSync {
		t.Fatalf("Decode() error = %v, want errFrameBadSync", err)
	}
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	buf := Encode(Frame{Op: OpWrite, Addr: RegHomeVelocity, Type: TypeU32, Payload: EncodeU32(500)})
	buf[len(buf)-1] ^= 0xFF

	if _, _, err := Decode(buf); err != errFrameChecksum {
		t.Fatalf("Decode() error = %v, want errFrameChecksum", err)
	}
}

func TestDecodeRejectsTruncatedBuffer(t *testing.T) {
	buf := Encode(Frame{Op: OpWrite, Addr: RegHomeVelocity, Type: TypeU32, Payload: EncodeU32(500)})

	if _, _, err := Decode(buf[:len(buf)-2]); err != errFrameTooShort {
		t.Fatalf("Decode() error = %v, want errFrameTooShort", err)
	}
}

func TestDecodeRejectsPayloadLengthMismatch(t *testing.T) {
	buf := Encode(Frame{Op: OpRead, Addr: RegControl, Type: TypeU16})
	// Claim a 4-byte payload for a U16 read with none actually present.
	buf[5] = 4

	if _, _, err := Decode(buf); err == nil {
		t.Fatal("expected an error for a payload-length/type mismatch")
	}
}

func TestDecodeMultipleFramesInOneBuffer(t *testing.T) {
	buf := append(Encode(Frame{Op: OpRead, Addr: 1, Type: TypeU8}),
		Encode(Frame{Op: OpRead, Addr: 2, Type: TypeU8})...)

	f1, n1, err := Decode(buf)
	if err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	f2, _, err := Decode(buf[n1:])
	if err != nil {
		t.Fatalf("second Decode: %v", err)
	}

	if f1.Addr != 1 || f2.Addr != 2 {
		t.Fatalf("got addrs %d, %d, want 1, 2", f1.Addr, f2.Addr)
	}
}
