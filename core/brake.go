//go:build tinygo

// Proportional brake output (C11): a PWM-driven brake that can hold a
// partial clamping force instead of only fully on/off, for mechanisms
// that benefit from a controlled deceleration assist rather than a hard
// stop.
package core

// PWMBrake implements BrakeDriver over a PWM-capable pin, mapping the
// register's 0-255 duty range onto whatever resolution the underlying
// PWMDriver reports.
type PWMBrake struct {
	pin PWMPin
	max uint32
}

// NewPWMBrake configures pin for PWM output at the given period (in
// timer ticks) and returns a BrakeDriver backed by it.
func NewPWMBrake(pin PWMPin, cycleTicks uint32) (*PWMBrake, error) {
	if _, err := MustPWM().ConfigureHardwarePWM(pin, cycleTicks); err != nil {
		return nil, err
	}
	return &PWMBrake{pin: pin, max: MustPWM().GetMaxValue()}, nil
}

// SetValue scales v (0-255) to the PWM driver's duty range and applies it.
func (b *PWMBrake) SetValue(v uint8) error {
	duty := PWMValue(uint32(v) * b.max / 255)
	return MustPWM().SetDutyCycle(b.pin, duty)
}
