// ADC Hardware Abstraction Layer
// Defines the interface for platform-specific ADC implementations
package core

// ADCSetup initializes an ADC pin for sampling
// Returns error if pin is not ADC-capable
// Platform-specific implementation required in targets/*/adc.go
var ADCSetup func(pin uint32) error

// ADCSample attempts to read an ADC value from the specified pin
// Returns (value, ready) where:
//
//	value: the ADC reading (0 if not ready)
//	ready: true if conversion complete, false if still in progress
//
// Platform-specific implementation required in targets/*/adc.go
var ADCSample func(pin uint32) (uint16, bool)

// ADCCancel cancels any pending ADC conversion on the specified pin
// Platform-specific implementation required in targets/*/adc.go
var ADCCancel func(pin uint32)

// ADCInputSource implements AnalogSource over a single ADC-capable
// pin, sampled once per main-loop tick. A conversion still in progress
// reports the previous value rather than blocking.
type ADCInputSource struct {
	pin  uint32
	last int16
}

// NewADCInputSource arms pin for sampling and returns an AnalogSource
// reading it.
func NewADCInputSource(pin uint32) (*ADCInputSource, error) {
	if err := ADCSetup(pin); err != nil {
		return nil, err
	}
	return &ADCInputSource{pin: pin}, nil
}

// Read samples the pin, returning the previous value if the conversion
// has not completed yet.
func (a *ADCInputSource) Read() int16 {
	v, ready := ADCSample(a.pin)
	if ready {
		a.last = int16(v)
	}
	return a.last
}
