// Direct GPIO helpers for the motor enable line and other single-bit
// outputs that do not need the stepper/brake abstractions of their own.
package core

// MotorEnablePin drives a single GPIO used to gate the stepper driver's
// enable input. It tracks the configured polarity so callers only ever
// deal with logical enabled/disabled.
type MotorEnablePin struct {
	pin        GPIOPin
	activeHigh bool
}

// NewMotorEnablePin configures pin as a digital output for motor
// enable control.
func NewMotorEnablePin(pin GPIOPin, activeHigh bool) (*MotorEnablePin, error) {
	if err := MustGPIO().ConfigureOutput(pin); err != nil {
		return nil, err
	}
	p := &MotorEnablePin{pin: pin, activeHigh: activeHigh}
	_ = p.Set(false)
	return p, nil
}

// Set drives the enable line to the given logical state.
func (p *MotorEnablePin) Set(enabled bool) error {
	level := enabled == p.activeHigh
	return MustGPIO().SetPin(p.pin, level)
}

// DigitalBrake implements BrakeDriver over a single GPIO: any nonzero
// value engages the brake fully, matching hardware without a PWM
// driver stage (see core/brake.go for the proportional variant).
type DigitalBrake struct {
	pin        GPIOPin
	activeHigh bool
}

// NewDigitalBrake configures pin as a digital output for an on/off
// brake.
func NewDigitalBrake(pin GPIOPin, activeHigh bool) (*DigitalBrake, error) {
	if err := MustGPIO().ConfigureOutput(pin); err != nil {
		return nil, err
	}
	return &DigitalBrake{pin: pin, activeHigh: activeHigh}, nil
}

// SetValue engages the brake for any v > 0, releases it for v == 0.
func (b *DigitalBrake) SetValue(v uint8) error {
	level := (v > 0) == b.activeHigh
	return MustGPIO().SetPin(b.pin, level)
}
