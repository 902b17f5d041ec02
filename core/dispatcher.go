package core

// This file implements C5, the command dispatcher: register-write
// validation and staging for the main loop. All of it runs with the
// caller's stack (the main loop, addressing the register bank on the
// host's behalf) and never from an interrupt context.

// ParametricMove carries the seven fields of a REG_MOVE_TO_PARAMETRIC
// transaction (addr 0xF0), applied as a single composite write.
type ParametricMove struct {
	Target      int32
	MinVelocity float64
	MaxVelocity float64
	Accel       float64
	Decel       float64
	AccelJerk   float64
	DecelJerk   float64
}

// WriteControl applies a REG_CONTROL write. Each feature pair (motor,
// analog input, quadrature encoder, homing) is resolved independently:
// the enable clause is evaluated first, the disable clause second, so a
// write asserting both bits for the same feature disables it.
func (c *Controller) WriteControl(v uint16) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if v&ControlEnableMotor != 0 {
		c.motorEnabled = true
		if c.enablePin != nil {
			c.enablePin.Set(true)
		}
	}
	if v&ControlDisableMotor != 0 {
		c.motorEnabled = false
		if c.enablePin != nil {
			c.enablePin.Set(false)
		}
	}

	if v&ControlEnableAnalogIn != 0 {
		c.analogInEnabled = true
	}
	if v&ControlDisableAnalogIn != 0 {
		c.analogInEnabled = false
	}

	if v&ControlEnableQuadEncoder != 0 {
		c.quadEncoderEnabled = true
	}
	if v&ControlDisableQuadEncoder != 0 {
		c.quadEncoderEnabled = false
	}
	if v&ControlResetQuadEncoder != 0 {
		if r, ok := c.encoderSource.(ResettableEncoder); ok {
			r.Reset()
		}
	}

	if v&ControlEnableHoming != 0 {
		c.homeEnabled = true
	}
	if v&ControlDisableHoming != 0 {
		c.homeEnabled = false
	}
}

// WriteMoveTo stages a REG_MOVE_TO write (a move to an absolute target
// position at the currently configured velocity/acceleration/jerk
// profile). Preconditions are evaluated in a fixed order, matching the
// order the original firmware checks them in; the first failing
// precondition raises its event bit and aborts the write.
func (c *Controller) WriteMoveTo(target int32) {
	if !c.MotorEnabled() {
		c.raiseMoveToEvent(MoveToEventMotorDisabled)
		return
	}
	if c.Status() == StatusHoming {
		c.raiseMoveToEvent(MoveToEventCurrentlyHoming)
		return
	}
	if c.HomeEnabled() && !c.HomePerformed() {
		c.raiseMoveToEvent(MoveToEventHomingMissing)
		return
	}
	if !c.validPosition(target) {
		c.raiseMoveToEvent(MoveToEventInvalidPosition)
		return
	}
	if c.VMax() < c.VMin() {
		c.raiseMoveToEvent(MoveToEventInvalidParameters)
		return
	}
	if target == c.PosCurrent() {
		c.raiseMoveToEvent(MoveToEventSuccessful)
		return
	}

	c.beginMove(target)
	c.raiseMoveToEvent(MoveToEventSuccessful)
}

// validPosition reports whether target is reachable given the current
// homing configuration: with homing enabled, the home switch marks
// position 0 as the travel limit, so a negative target is unreachable.
func (c *Controller) validPosition(target int32) bool {
	if c.HomeEnabled() && target < 0 {
		return false
	}
	return true
}

// WriteMoveToParametric applies a composite move transaction. Each of
// the six motion-parameter fields is validated and stored independently
// of the others as a side effect (clamped where the register has a
// hardware range, accepted unconditionally otherwise); only the
// decision to start the move is gated on all six succeeding together,
// matching the non-short-circuiting accumulation the original firmware
// used for this transaction.
func (c *Controller) WriteMoveToParametric(m ParametricMove) {
	okMin := c.setVMin(m.MinVelocity)
	okMax := c.setVMax(m.MaxVelocity)
	c.setAAccel(m.Accel)
	c.setADecel(m.Decel)
	c.setJAccel(m.AccelJerk)
	c.setJDecel(m.DecelJerk)

	if !(okMin && okMax) {
		c.raiseMoveToEvent(MoveToEventInvalidParameters)
		return
	}

	c.WriteMoveTo(m.Target)
}

// WriteDirectVelocity applies a REG_DIRECT_VELOCITY write: an open-loop
// constant-velocity jog at the given signed period (microseconds; sign
// carries direction, 0 stops; a nonzero magnitude below PeriodMin is
// ignored). It bypasses the trapezoidal profile entirely, matching the
// original firmware's direct-drive mode.
func (c *Controller) WriteDirectVelocity(periodUS int32) {
	if periodUS != 0 && periodUS > -int32(PeriodMin) && periodUS < int32(PeriodMin) {
		return
	}

	state := disableInterrupts()
	c.directVelocityPeriod = periodUS
	restoreInterrupts(state)

	if periodUS == 0 {
		c.stopMotor()
		return
	}

	period := periodUS
	if period < 0 {
		period = -period
	}

	state = disableInterrupts()
	c.periodCurrent = clampPeriod(uint32(period))
	c.status = StatusConstantVelocity
	c.running = true
	if periodUS < 0 {
		c.vCurrent = -1000000 / float64(period)
	} else {
		c.vCurrent = 1000000 / float64(period)
	}
	restoreInterrupts(state)

	c.armPulseTimer()
}

// WriteStopMovement immediately halts the motor, raising MOVE_TO_ABORTED
// if a move or parametric move was in progress.
func (c *Controller) WriteStopMovement() {
	wasRunning := c.Running()
	homing := c.Status() == StatusHoming
	c.stopMotor()
	if !wasRunning {
		return
	}
	if homing {
		c.raiseHomeStepsEvent(HomeStepsEventFailed)
		return
	}
	c.raiseMoveToEvent(MoveToEventAborted)
}

// WriteHomeSteps stages a home request. A write while the motor is
// already running is silently accepted and otherwise ignored, matching
// the original firmware: a homing run must start from a stopped motor.
func (c *Controller) WriteHomeSteps(maxDistance int32) {
	if c.Running() {
		return
	}
	if !c.MotorEnabled() {
		c.raiseHomeStepsEvent(HomeStepsEventMotorDisabled)
		return
	}
	if !c.HomeEnabled() {
		c.raiseHomeStepsEvent(HomeStepsEventDisabled)
		return
	}
	if c.HomeSwitchActive() {
		c.raiseHomeStepsEvent(HomeStepsEventAlreadyHome)
		return
	}

	state := disableInterrupts()
	c.homingMaxDistance = maxDistance
	restoreInterrupts(state)

	c.beginHome()
}

// --- parameter setters used by WriteMoveToParametric and the
// individual REG_MIN_VELOCITY/.../REG_DECELERATION_JERK writes. ---

func (c *Controller) setVMin(v float64) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	ok := v >= VHardwareMin && v <= VHardwareMax
	if v < VHardwareMin {
		v = VHardwareMin
	}
	if v > VHardwareMax {
		v = VHardwareMax
	}
	c.vMin = v
	return ok
}

func (c *Controller) setVMax(v float64) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	ok := v >= VHardwareMin && v <= VHardwareMax
	if v < VHardwareMin {
		v = VHardwareMin
	}
	if v > VHardwareMax {
		v = VHardwareMax
	}
	c.vMax = v
	return ok
}

func (c *Controller) setAAccel(v float64) {
	state := disableInterrupts()
	c.aAccel = v
	restoreInterrupts(state)
}

func (c *Controller) setADecel(v float64) {
	state := disableInterrupts()
	c.aDecel = v
	restoreInterrupts(state)
}

func (c *Controller) setJAccel(v float64) {
	state := disableInterrupts()
	c.jAccel = v
	restoreInterrupts(state)
}

func (c *Controller) setJDecel(v float64) {
	state := disableInterrupts()
	c.jDecel = v
	restoreInterrupts(state)
}

func (c *Controller) setVHome(v float64) {
	state := disableInterrupts()
	c.vHome = v
	restoreInterrupts(state)
}

// WriteMinVelocity/WriteMaxVelocity apply the standalone register
// writes (outside of a parametric transaction). Out-of-range values are
// clamped and stored, but the write is still reported rejected.
func (c *Controller) WriteMinVelocity(v uint16) bool { return c.setVMin(float64(v)) }
func (c *Controller) WriteMaxVelocity(v uint16) bool { return c.setVMax(float64(v)) }

// WriteAcceleration/WriteDeceleration/WriteAccelerationJerk/WriteDecelerationJerk
// are accepted unconditionally; the original firmware applies no range
// check to these fields.
func (c *Controller) WriteAcceleration(v int32)     { c.setAAccel(float64(v)) }
func (c *Controller) WriteDeceleration(v int32)     { c.setADecel(float64(v)) }
func (c *Controller) WriteAccelerationJerk(v int32) { c.setJAccel(float64(v)) }
func (c *Controller) WriteDecelerationJerk(v int32) { c.setJDecel(float64(v)) }

func clampPeriod(p uint32) uint32 {
	if p < PeriodMin {
		return PeriodMin
	}
	if p > PeriodMax {
		return PeriodMax
	}
	return p
}
