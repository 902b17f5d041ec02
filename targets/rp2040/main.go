//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"github.com/harp-tech/device.faststepper/config"
	"github.com/harp-tech/device.faststepper/core"
)

var (
	ctrl *core.Controller
	bank *core.RegisterBank
	rx   []byte
)

func main() {
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	cfg := config.Default()

	InitUSB()
	InitClock()
	core.TimerInit()
	initADCHAL()

	core.SetDebugWriter(func(s string) {
		USBWriteBytes([]byte(s + "\r\n"))
	})

	gpioDriver := NewRPGPIODriver()
	core.SetGPIODriver(gpioDriver)
	core.SetPWMDriver(NewRP2040PWMDriver())
	spiDriver := NewRP2040SPIDriver()
	core.SetSPIDriver(spiDriver)
	core.SetI2CDriver(NewRPI2CDriver())

	driverCfg := core.DefaultDriverConfig(0)
	driverCfg.RunCurrent = currentToCS(cfg.Driver.RunCurrentMA)
	driverCfg.HoldCurrent = currentToCS(cfg.Driver.HoldCurrentMA)
	driverBus, err := spiDriver.ConfigureBus(core.SPIConfig{BusID: 0, Mode: 3, Rate: 4000000})
	if err != nil {
		return
	}
	if err := core.ConfigureTMC5240(driverBus, driverCfg); err != nil {
		return
	}

	pulse := NewPIOStepperBackend(0, 0)
	stepPin := core.GPIOPin(cfg.Pins.StepPin)
	dirPin := core.GPIOPin(cfg.Pins.DirPin)
	if err := pulse.Init(uint8(stepPin), uint8(dirPin), false, false); err != nil {
		return
	}

	enablePin, err := core.NewMotorEnablePin(core.GPIOPin(cfg.Pins.EnablePin), true)
	if err != nil {
		return
	}
	brake, err := core.NewDigitalBrake(core.GPIOPin(cfg.Pins.BrakePin), true)
	if err != nil {
		return
	}
	stopSwitch, err := core.NewGPIOSwitch(core.GPIOPin(cfg.Pins.StopSwitchPin), true)
	if err != nil {
		return
	}
	homeSwitch, err := core.NewGPIOSwitch(core.GPIOPin(cfg.Pins.HomeSwitchPin), true)
	if err != nil {
		return
	}

	ctrl = core.NewController(core.ControllerConfig{
		Pulse:      pulse,
		EnablePin:  enablePin,
		Brake:      brake,
		StopSwitch: stopSwitch,
		HomeSwitch: homeSwitch,

		VMin:   cfg.Motion.MinVelocity,
		VMax:   cfg.Motion.MaxVelocity,
		AAccel: cfg.Motion.Acceleration,
		ADecel: cfg.Motion.Deceleration,
		JAccel: cfg.Motion.AccelerationJerk,
		JDecel: cfg.Motion.DecelerationJerk,
		VHome:  cfg.Motion.HomeVelocity,
	})
	bank = core.NewRegisterBank(ctrl)
	core.SetShutdownHandler(func(string) { ctrl.EmergencyShutdown() })

	if cfg.Pins.AnalogPin != 0 {
		if analog, err := core.NewADCInputSource(cfg.Pins.AnalogPin); err == nil {
			ctrl.SetAnalogSource(analog)
		}
	}
	if cfg.Pins.EncoderPinA != 0 && cfg.Pins.EncoderPinB != 0 {
		encA := core.GPIOPin(cfg.Pins.EncoderPinA)
		encB := core.GPIOPin(cfg.Pins.EncoderPinB)
		if encoder, err := core.NewQuadratureEncoder(encA, encB); err == nil {
			ctrl.SetEncoderSource(encoder)
		}
	}

	rx = make([]byte, 0, 256)

	for {
		func() {
			defer func() { recover() }()

			for USBAvailable() > 0 {
				b, err := USBRead()
				if err != nil {
					break
				}
				rx = append(rx, b)
			}

			for {
				f, n, err := core.Decode(rx)
				if err != nil {
					break
				}
				rx = rx[n:]
				resp := bank.Handle(f)
				USBWriteBytes(core.Encode(resp))
			}

			UpdateSystemTime()
			core.ProcessTimers()
			if ctrl.StopSwitchActive() {
				ctrl.OnStopSwitch()
			}
			ctrl.Tick(usbEventSink{})
		}()

		time.Sleep(500 * time.Microsecond)
	}
}

// currentToCS converts a target RMS current in milliamps to the
// TMC5240's 5-bit current-scale field, assuming the reference board's
// fixed sense-resistor value. Saturates at the field's 31 maximum.
func currentToCS(ma uint16) uint8 {
	cs := uint32(ma) * 32 / 1000
	if cs > 31 {
		cs = 31
	}
	return uint8(cs)
}

// usbEventSink pushes unsolicited register updates (move/home events,
// sampled inputs) to the host as OpEvent frames.
type usbEventSink struct{}

func (usbEventSink) NotifyU8(addr uint16, value uint8) {
	USBWriteBytes(core.Encode(core.Frame{Op: core.OpEvent, Addr: addr, Type: core.TypeU8, Payload: core.EncodeU8(value)}))
}

func (usbEventSink) NotifyI16(addr uint16, value int16) {
	USBWriteBytes(core.Encode(core.Frame{Op: core.OpEvent, Addr: addr, Type: core.TypeI16, Payload: core.EncodeI16(value)}))
}
