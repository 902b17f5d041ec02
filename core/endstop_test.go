package core

import "testing"

func TestGPIOSwitchActiveLowPolarity(t *testing.T) {
	drv := newFakeGPIODriver()
	SetGPIODriver(drv)
	defer SetGPIODriver(drv)

	sw, err := NewGPIOSwitch(5, true)
	if err != nil {
		t.Fatalf("NewGPIOSwitch: %v", err)
	}

	drv.levels[5] = true // pin high = not triggered for active-low wiring
	if sw.Read() {
		t.Fatal("Read() = true while pin is high on an active-low switch")
	}

	drv.levels[5] = false
	if !sw.Read() {
		t.Fatal("Read() = false while pin is low on an active-low switch")
	}
}

func TestGPIOSwitchActiveHighPolarity(t *testing.T) {
	drv := newFakeGPIODriver()
	SetGPIODriver(drv)
	defer SetGPIODriver(drv)

	sw, err := NewGPIOSwitch(6, false)
	if err != nil {
		t.Fatalf("NewGPIOSwitch: %v", err)
	}

	drv.levels[6] = true
	if !sw.Read() {
		t.Fatal("Read() = false while pin is high on an active-high switch")
	}
}
