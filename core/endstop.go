// Digital switch backend for the stop and home inputs.
package core

// GPIOSwitch implements SwitchReader over a single GPIO pin, correcting
// for active-low wiring: both the stop switch and the home switch on
// the reference hardware read low when triggered.
type GPIOSwitch struct {
	pin       GPIOPin
	activeLow bool
}

// NewGPIOSwitch configures pin as a pulled-up digital input and returns
// a SwitchReader for it. activeLow should be true for the reference
// wiring (switch closure pulls the pin low).
func NewGPIOSwitch(pin GPIOPin, activeLow bool) (*GPIOSwitch, error) {
	if err := MustGPIO().ConfigureInputPullUp(pin); err != nil {
		return nil, err
	}
	return &GPIOSwitch{pin: pin, activeLow: activeLow}, nil
}

// Read returns true when the switch is triggered.
func (g *GPIOSwitch) Read() bool {
	raw := MustGPIO().ReadPin(g.pin)
	if g.activeLow {
		return !raw
	}
	return raw
}
