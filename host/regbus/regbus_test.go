package regbus

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/harp-tech/device.faststepper/core"
)

// fakePort is an in-memory serial.Port: writes land in written, reads
// drain from toRead.
type fakePort struct {
	written []byte
	toRead  *bytes.Buffer
}

func newFakePort() *fakePort {
	return &fakePort{toRead: &bytes.Buffer{}}
}

// Read mimics a serial port's blocking-but-non-EOF behavior: an empty
// buffer yields (0, nil), not io.EOF, so callers should poll instead of
// treating it as a closed stream.
func (p *fakePort) Read(b []byte) (int, error) {
	if p.toRead.Len() == 0 {
		return 0, nil
	}
	return p.toRead.Read(b)
}
func (p *fakePort) Write(b []byte) (int, error) { p.written = append(p.written, b...); return len(b), nil }
func (p *fakePort) Close() error                { return nil }
func (p *fakePort) Flush() error                { return nil }

func TestReadRegisterRoundTrip(t *testing.T) {
	port := newFakePort()
	port.toRead.Write(core.Encode(core.Frame{
		Op: core.OpReadAck, Addr: 33, Type: core.TypeI16, Payload: core.EncodeI16(42),
	}))
	bus := &Bus{port: port}

	f, err := bus.ReadRegister(33, core.TypeI16)
	if err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if core.DecodeI16(f.Payload) != 42 {
		t.Fatalf("payload = %d, want 42", core.DecodeI16(f.Payload))
	}

	sent, _, err := core.Decode(port.written)
	if err != nil {
		t.Fatalf("decoding what was written: %v", err)
	}
	if sent.Op != core.OpRead || sent.Addr != 33 {
		t.Fatalf("sent frame = %+v, want a read of addr 33", sent)
	}
}

func TestRoundTripReturnsErrorOnOpError(t *testing.T) {
	port := newFakePort()
	port.toRead.Write(core.Encode(core.Frame{Op: core.OpError, Addr: 99}))
	bus := &Bus{port: port}

	_, err := bus.WriteRegister(99, core.TypeU8, core.EncodeU8(1))
	if err == nil {
		t.Fatal("expected an error for an OpError response")
	}
}

func TestRoundTripSkipsInterleavedEventFrames(t *testing.T) {
	port := newFakePort()
	port.toRead.Write(core.Encode(core.Frame{Op: core.OpEvent, Addr: 41, Type: core.TypeU8, Payload: core.EncodeU8(1)}))
	port.toRead.Write(core.Encode(core.Frame{Op: core.OpWriteAck, Addr: 40, Type: core.TypeI32}))
	bus := &Bus{port: port}

	f, err := bus.WriteRegister(40, core.TypeI32, core.EncodeI32(100))
	if err != nil {
		t.Fatalf("WriteRegister: %v", err)
	}
	if f.Op != core.OpWriteAck || f.Addr != 40 {
		t.Fatalf("f = %+v, want the write-ack for addr 40", f)
	}
}

func TestPollEventReturnsTrueOnEventFrame(t *testing.T) {
	port := newFakePort()
	port.toRead.Write(core.Encode(core.Frame{Op: core.OpEvent, Addr: 49, Type: core.TypeU8, Payload: core.EncodeU8(1)}))
	bus := &Bus{port: port}

	f, ok, err := bus.PollEvent(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("PollEvent: %v", err)
	}
	if !ok {
		t.Fatal("PollEvent() ok = false, want true")
	}
	if f.Addr != 49 {
		t.Fatalf("f.Addr = %d, want 49", f.Addr)
	}
}

func TestPollEventTimesOutWithoutError(t *testing.T) {
	port := newFakePort()
	bus := &Bus{port: port}

	_, ok, err := bus.PollEvent(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("PollEvent: %v", err)
	}
	if ok {
		t.Fatal("PollEvent() ok = true, want false on timeout")
	}
}

func TestRoundTripPropagatesReadError(t *testing.T) {
	port := &erroringPort{}
	bus := &Bus{port: port}

	_, err := bus.ReadRegister(32, core.TypeU16)
	if err == nil {
		t.Fatal("expected an error when the port read fails")
	}
}

type erroringPort struct{}

func (e *erroringPort) Read(b []byte) (int, error)  { return 0, errors.New("read failed") }
func (e *erroringPort) Write(b []byte) (int, error) { return len(b), nil }
func (e *erroringPort) Close() error                { return nil }
func (e *erroringPort) Flush() error                { return nil }
