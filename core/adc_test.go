package core

import "testing"

func TestADCInputSourceReadsLatestReadyValue(t *testing.T) {
	var setupPin uint32
	readings := map[uint32]uint16{9: 0}
	ready := true

	ADCSetup = func(pin uint32) error { setupPin = pin; return nil }
	ADCSample = func(pin uint32) (uint16, bool) { return readings[pin], ready }
	defer func() { ADCSetup = nil; ADCSample = nil }()

	src, err := NewADCInputSource(9)
	if err != nil {
		t.Fatalf("NewADCInputSource: %v", err)
	}
	if setupPin != 9 {
		t.Fatalf("ADCSetup called with pin %d, want 9", setupPin)
	}

	readings[9] = 512
	if v := src.Read(); v != 512 {
		t.Fatalf("Read() = %d, want 512", v)
	}

	ready = false
	readings[9] = 999
	if v := src.Read(); v != 512 {
		t.Fatalf("Read() = %d, want previous value 512 while conversion is not ready", v)
	}
}
