//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"
	"sync"

	"github.com/harp-tech/device.faststepper/core"
)

// rp2040 ADC channels, for the analog input used by REG_ANALOG_INPUT.
var (
	adcMu      sync.Mutex
	adcPins    = map[uint32]machine.ADC{}
	errNoPin   = errors.New("pin is not ADC-capable")
)

func adcMachinePin(pin uint32) (machine.Pin, bool) {
	switch pin {
	case 26:
		return machine.ADC0, true
	case 27:
		return machine.ADC1, true
	case 28:
		return machine.ADC2, true
	case 29:
		return machine.ADC3, true
	}
	return 0, false
}

// initADCHAL wires core.ADCSetup/ADCSample/ADCCancel to TinyGo's
// machine.ADC, implementing the var-based ADC HAL core/adc_hal.go
// declares.
func initADCHAL() {
	machine.InitADC()

	core.ADCSetup = func(pin uint32) error {
		adcMu.Lock()
		defer adcMu.Unlock()

		if _, ok := adcPins[pin]; ok {
			return nil
		}
		mp, ok := adcMachinePin(pin)
		if !ok {
			return errNoPin
		}
		adc := machine.ADC{Pin: mp}
		if err := adc.Configure(machine.ADCConfig{}); err != nil {
			return err
		}
		adcPins[pin] = adc
		return nil
	}

	core.ADCSample = func(pin uint32) (uint16, bool) {
		adcMu.Lock()
		adc, ok := adcPins[pin]
		adcMu.Unlock()
		if !ok {
			return 0, false
		}
		return adc.Get(), true
	}

	core.ADCCancel = func(pin uint32) {}
}
