// Package config loads the single-axis motion and pin-assignment
// settings a FastStepper build needs outside of a firmware rebuild:
// velocity/acceleration/jerk limits and the GPIO/SPI/I2C bindings for
// the motor, brake, and switches.
package config

import "encoding/json"

// PinConfig names the hardware bindings for one axis. Pin fields hold
// logical GPIO numbers. Only the analog and encoder pins treat zero as
// "not wired"; the other pins are always configured, so zero there
// means GPIO 0.
type PinConfig struct {
	StepPin       uint32 `json:"step_pin"`
	DirPin        uint32 `json:"dir_pin"`
	EnablePin     uint32 `json:"enable_pin"`
	BrakePin      uint32 `json:"brake_pin,omitempty"`
	StopSwitchPin uint32 `json:"stop_switch_pin"`
	HomeSwitchPin uint32 `json:"home_switch_pin"`

	// AnalogPin and EncoderPinA/B are optional: left at zero, the
	// corresponding REG_ANALOG_INPUT/REG_ENCODER forwarding stays
	// disabled (see core/events.go's Tick).
	AnalogPin   uint32 `json:"analog_pin,omitempty"`
	EncoderPinA uint32 `json:"encoder_pin_a,omitempty"`
	EncoderPinB uint32 `json:"encoder_pin_b,omitempty"`
}

// MotionConfig mirrors the host-writable velocity profile registers
// (addr 42-50), used as the firmware's defaults at boot.
type MotionConfig struct {
	MinVelocity      float64 `json:"min_velocity"`
	MaxVelocity      float64 `json:"max_velocity"`
	Acceleration     float64 `json:"acceleration"`
	Deceleration     float64 `json:"deceleration"`
	AccelerationJerk float64 `json:"acceleration_jerk"`
	DecelerationJerk float64 `json:"deceleration_jerk"`
	HomeVelocity     float64 `json:"home_velocity"`
}

// DriverConfig carries the TMC5240 run/hold current settings applied at
// boot (see core/driverconfig.go).
type DriverConfig struct {
	RunCurrentMA  uint16 `json:"run_current_ma"`
	HoldCurrentMA uint16 `json:"hold_current_ma"`
}

// AxisConfig is the full configuration for the single axis this
// firmware drives.
type AxisConfig struct {
	Pins   PinConfig    `json:"pins"`
	Motion MotionConfig `json:"motion"`
	Driver DriverConfig `json:"driver"`
}

// Load parses JSON configuration data and fills in defaults for any
// zero-valued field.
func Load(data []byte) (*AxisConfig, error) {
	var cfg AxisConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AxisConfig) {
	if cfg.Motion.MinVelocity == 0 {
		cfg.Motion.MinVelocity = 16
	}
	if cfg.Motion.MaxVelocity == 0 {
		cfg.Motion.MaxVelocity = 4000
	}
	if cfg.Motion.Acceleration == 0 {
		cfg.Motion.Acceleration = 20000
	}
	if cfg.Motion.Deceleration == 0 {
		cfg.Motion.Deceleration = -20000
	}
	if cfg.Motion.AccelerationJerk == 0 {
		cfg.Motion.AccelerationJerk = 400000
	}
	if cfg.Motion.DecelerationJerk == 0 {
		cfg.Motion.DecelerationJerk = -400000
	}
	if cfg.Motion.HomeVelocity == 0 {
		cfg.Motion.HomeVelocity = 500
	}
	if cfg.Driver.RunCurrentMA == 0 {
		cfg.Driver.RunCurrentMA = 800
	}
	if cfg.Driver.HoldCurrentMA == 0 {
		cfg.Driver.HoldCurrentMA = 400
	}
}

// Default returns the reference board's pin map and motion defaults,
// for callers that have no JSON file to load; targets/rp2040/main.go
// boots from it.
func Default() *AxisConfig {
	cfg := &AxisConfig{
		Pins: PinConfig{
			StepPin:       2,
			DirPin:        3,
			EnablePin:     4,
			BrakePin:      5,
			StopSwitchPin: 6,
			HomeSwitchPin: 7,
		},
	}
	applyDefaults(cfg)
	return cfg
}
