//go:build tinygo

// External stepper-driver configuration (C10): a thin SPI client for a
// TMC5240-class driver IC, scoped to current setting and StealthChop
// configuration. The driver's own ramp generator (RAMPMODE, XTARGET,
// VACTUAL) is never touched - motion comes exclusively from this
// package's step/direction pulses, with the external driver used only
// as a silent, current-limited power stage.
package core

// DriverConfig holds the subset of TMC5240 configuration this package
// manages: run/hold current and StealthChop PWM tuning.
type DriverConfig struct {
	Bus SPIBusID

	RunCurrent   uint8 // 0-31
	HoldCurrent  uint8 // 0-31
	HoldDelay    uint8 // 0-15
	ChopConf     uint32
	PWMConf      uint32
}

// DefaultDriverConfig returns the reference current/StealthChop
// settings, suitable as a starting point for tuning.
func DefaultDriverConfig(bus SPIBusID) DriverConfig {
	return DriverConfig{
		Bus:         bus,
		RunCurrent:  TMC5240_IRUN_DEFAULT,
		HoldCurrent: TMC5240_IHOLD_DEFAULT,
		HoldDelay:   TMC5240_IHOLDDELAY_DEFAULT,
		ChopConf:    TMC5240_CHOPCONF_DEFAULT,
		PWMConf:     TMC5240_PWMCONF_DEFAULT,
	}
}

// ConfigureTMC5240 writes run/hold current and the chopper/StealthChop
// registers to the driver over SPI. It never writes RAMPMODE, XTARGET,
// VACTUAL or any other register that would let the external IC generate
// its own motion profile.
func ConfigureTMC5240(busHandle interface{}, cfg DriverConfig) error {
	ihold := uint32(cfg.HoldCurrent) | uint32(cfg.RunCurrent)<<8 | uint32(cfg.HoldDelay)<<16
	if err := tmc5240Write(busHandle, TMC5240_IHOLD_IRUN, ihold); err != nil {
		return err
	}
	if err := tmc5240Write(busHandle, TMC5240_CHOPCONF, cfg.ChopConf); err != nil {
		return err
	}
	if err := tmc5240Write(busHandle, TMC5240_PWMCONF, cfg.PWMConf); err != nil {
		return err
	}
	gconf := uint32(TMC5240_GCONF_EN_PWM_MODE)
	return tmc5240Write(busHandle, TMC5240_GCONF, gconf)
}

func tmc5240Write(busHandle interface{}, addr uint8, value uint32) error {
	tx := []byte{
		addr | TMC5240_WRITE_BIT,
		byte(value >> 24),
		byte(value >> 16),
		byte(value >> 8),
		byte(value),
	}
	rx := make([]byte, len(tx))
	return MustSPI().Transfer(busHandle, tx, rx)
}
