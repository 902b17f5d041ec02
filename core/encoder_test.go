package core

import "testing"

func TestQuadratureEncoderCountsForwardAndReverse(t *testing.T) {
	drv := newFakeGPIODriver()
	SetGPIODriver(drv)
	defer SetGPIODriver(drv)

	drv.levels[10] = false
	drv.levels[11] = false
	enc, err := NewQuadratureEncoder(10, 11)
	if err != nil {
		t.Fatalf("NewQuadratureEncoder: %v", err)
	}

	// A leads B (A == B at the edge) counts forward.
	drv.levels[10] = true
	drv.levels[11] = true
	if got := enc.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}

	// B leads A (A != B at the edge) counts backward.
	drv.levels[10] = false
	drv.levels[11] = true
	if got := enc.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}
}

func TestQuadratureEncoderIgnoresNonEdgeCalls(t *testing.T) {
	drv := newFakeGPIODriver()
	SetGPIODriver(drv)
	defer SetGPIODriver(drv)

	enc, err := NewQuadratureEncoder(12, 13)
	if err != nil {
		t.Fatalf("NewQuadratureEncoder: %v", err)
	}

	if got := enc.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0 with no A edge", got)
	}
}

func TestQuadratureEncoderReset(t *testing.T) {
	drv := newFakeGPIODriver()
	SetGPIODriver(drv)
	defer SetGPIODriver(drv)

	enc, err := NewQuadratureEncoder(14, 15)
	if err != nil {
		t.Fatalf("NewQuadratureEncoder: %v", err)
	}
	drv.levels[14] = true
	drv.levels[15] = true
	enc.Count()

	enc.Reset()
	if enc.Count() != 0 {
		t.Fatal("Count() should read 0 right after Reset")
	}
}
