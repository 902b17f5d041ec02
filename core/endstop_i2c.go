//go:build tinygo

// Time-of-flight alternate home-switch backend, for mounting positions
// where a mechanical switch is impractical (the carriage approaches the
// home end without ever making contact).
package core

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/vl53l1x"
)

var errInvalidI2CBus = errors.New("core: I2C bus does not expose a machine.I2C")

// ToFSwitch implements SwitchReader over a VL53L1X distance sensor: it
// reports triggered once the measured distance drops below a threshold,
// with hysteresis to avoid chattering right at the boundary.
type ToFSwitch struct {
	dev          vl53l1x.Device
	thresholdMM  uint16
	hysteresisMM uint16
	triggered    bool
}

// NewToFSwitch configures a VL53L1X on the given I2C bus and returns a
// SwitchReader that treats distances at or below thresholdMM as
// triggered.
func NewToFSwitch(bus I2CBusID, thresholdMM, hysteresisMM uint16) (*ToFSwitch, error) {
	raw, err := MustI2C().GetMachineBus(bus)
	if err != nil {
		return nil, err
	}
	i2c, ok := raw.(*machine.I2C)
	if !ok {
		return nil, errInvalidI2CBus
	}

	dev := vl53l1x.New(i2c)
	dev.Configure()
	dev.StartContinuous(50)

	return &ToFSwitch{dev: dev, thresholdMM: thresholdMM, hysteresisMM: hysteresisMM}, nil
}

// Read samples the sensor and returns whether the carriage is within
// the home threshold.
func (t *ToFSwitch) Read() bool {
	mm, err := t.dev.Distance()
	if err != nil {
		return t.triggered
	}

	switch {
	case mm <= t.thresholdMM:
		t.triggered = true
	case mm > t.thresholdMM+t.hysteresisMM:
		t.triggered = false
	}
	return t.triggered
}
