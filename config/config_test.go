package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load([]byte(`{"pins":{"step_pin":10,"dir_pin":11,"enable_pin":12,"stop_switch_pin":13,"home_switch_pin":14}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pins.StepPin != 10 {
		t.Errorf("StepPin = %d, want 10", cfg.Pins.StepPin)
	}
	if cfg.Motion.MaxVelocity != 4000 {
		t.Errorf("MaxVelocity default = %v, want 4000", cfg.Motion.MaxVelocity)
	}
	if cfg.Driver.RunCurrentMA != 800 {
		t.Errorf("RunCurrentMA default = %v, want 800", cfg.Driver.RunCurrentMA)
	}
}

func TestLoadPreservesExplicitValues(t *testing.T) {
	cfg, err := Load([]byte(`{"motion":{"max_velocity":9000,"min_velocity":100}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Motion.MaxVelocity != 9000 {
		t.Errorf("MaxVelocity = %v, want 9000 (explicit value overridden by default)", cfg.Motion.MaxVelocity)
	}
	if cfg.Motion.MinVelocity != 100 {
		t.Errorf("MinVelocity = %v, want 100", cfg.Motion.MinVelocity)
	}
	// Fields left unset still pick up defaults alongside the explicit ones.
	if cfg.Motion.Acceleration != 20000 {
		t.Errorf("Acceleration default = %v, want 20000", cfg.Motion.Acceleration)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	if _, err := Load([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadLeavesOptionalAnalogAndEncoderPinsUnset(t *testing.T) {
	cfg, err := Load([]byte(`{"pins":{"step_pin":10,"dir_pin":11,"enable_pin":12,"stop_switch_pin":13,"home_switch_pin":14}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pins.AnalogPin != 0 || cfg.Pins.EncoderPinA != 0 || cfg.Pins.EncoderPinB != 0 {
		t.Errorf("optional pins should default to 0 when absent, got analog=%d encA=%d encB=%d",
			cfg.Pins.AnalogPin, cfg.Pins.EncoderPinA, cfg.Pins.EncoderPinB)
	}
}

func TestLoadPreservesExplicitAnalogAndEncoderPins(t *testing.T) {
	cfg, err := Load([]byte(`{"pins":{"step_pin":10,"dir_pin":11,"enable_pin":12,"stop_switch_pin":13,"home_switch_pin":14,"analog_pin":26,"encoder_pin_a":27,"encoder_pin_b":28}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pins.AnalogPin != 26 || cfg.Pins.EncoderPinA != 27 || cfg.Pins.EncoderPinB != 28 {
		t.Errorf("explicit optional pins not preserved, got analog=%d encA=%d encB=%d",
			cfg.Pins.AnalogPin, cfg.Pins.EncoderPinA, cfg.Pins.EncoderPinB)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Pins.StepPin == 0 {
		t.Error("Default() left StepPin unset")
	}
	if cfg.Motion.MaxVelocity <= cfg.Motion.MinVelocity {
		t.Error("Default() motion limits are not ordered min < max")
	}
}
