package main

import "github.com/harp-tech/device.faststepper/core"

type regDef struct {
	addr uint16
	typ  uint8
}

// namedRegisters lets the interactive loop refer to registers by the
// same names SPEC_FULL.md's table uses instead of bare addresses.
var namedRegisters = map[string]regDef{
	"control":           {core.RegControl, core.TypeU16},
	"encoder":           {core.RegEncoder, core.TypeI16},
	"analog_input":      {core.RegAnalogInput, core.TypeI16},
	"stop_switch":       {core.RegStopSwitch, core.TypeU8},
	"motor_brake":       {core.RegMotorBrake, core.TypeU8},
	"moving":            {core.RegMoving, core.TypeU8},
	"stop_movement":     {core.RegStopMovement, core.TypeU8},
	"direct_velocity":   {core.RegDirectVelocity, core.TypeI32},
	"move_to":           {core.RegMoveTo, core.TypeI32},
	"move_to_events":    {core.RegMoveToEvents, core.TypeU8},
	"min_velocity":      {core.RegMinVelocity, core.TypeU16},
	"max_velocity":      {core.RegMaxVelocity, core.TypeU16},
	"acceleration":      {core.RegAcceleration, core.TypeI32},
	"deceleration":      {core.RegDeceleration, core.TypeI32},
	"acceleration_jerk": {core.RegAccelerationJerk, core.TypeI32},
	"deceleration_jerk": {core.RegDecelerationJerk, core.TypeI32},
	"home_steps":        {core.RegHomeSteps, core.TypeI32},
	"home_steps_events": {core.RegHomeStepsEvents, core.TypeU8},
	"home_velocity":     {core.RegHomeVelocity, core.TypeU32},
	"home_switch":       {core.RegHomeSwitch, core.TypeU8},
}
