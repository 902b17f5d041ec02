package core

// This file implements C6, the safety supervisor: the stop-switch and
// home-switch handling that runs across the switch ISR and the main
// loop. Both switches are wired active-low in the original hardware;
// SwitchReader implementations are expected to already correct for
// that, so Read() true always means "triggered" here.

// OnStopSwitch is the emergency-stop switch ISR. It is expected to be
// wired directly to a GPIO interrupt on platforms that support edge
// interrupts; on platforms without one, the main loop polls
// StopSwitchActive() once per tick and calls this directly instead.
// It stops a running motor and de-energizes the driver enable line.
func (c *Controller) OnStopSwitch() {
	if !c.Running() {
		return
	}

	state := disableInterrupts()
	c.requestStoppedEvent = true
	c.motorEnabled = false
	restoreInterrupts(state)

	c.stopMotor()
	if c.enablePin != nil {
		c.enablePin.Set(false)
	}
}

// PollHomeSwitch debounces the home switch and is called once per
// 500us main-loop tick, the same cadence Integrate runs at. The ISR
// side of the original firmware latched an edge-triggered counter; here
// the counter is advanced entirely from the polling loop since Go's
// SwitchReader abstraction has no separate edge-interrupt path.
//
// The counter is armed to 1 the instant an active edge is accepted
// (homing enabled, not already armed, switch currently active) and is
// only advanced on ticks where the switch reads idle again -
// debouncing the release, not the trip - resetting to 0 once it reaches
// endstopHoldoffTicks, i.e. after endstopHoldoffTicks-1 idle ticks
// (about 10ms at 500us). Active ticks in between pause the count but do
// not restart it.
func (c *Controller) PollHomeSwitch() {
	active := c.HomeSwitchActive()

	state := disableInterrupts()
	defer restoreInterrupts(state)

	if c.endstopDebounceCounter == 0 {
		if c.homeEnabled && active {
			c.endstopDebounceCounter = 1
			c.onHomeSwitchTriggered()
		}
		return
	}

	if !active {
		c.endstopDebounceCounter++
		if c.endstopDebounceCounter >= endstopHoldoffTicks {
			c.endstopDebounceCounter = 0
		}
	}
}

// EmergencyShutdown halts the motor and de-energizes the driver enable
// line. It is the handler TryShutdown invokes once a fault (currently
// only "pulse timer fell too far behind") is detected, registered via
// SetShutdownHandler since the scheduler runs outside any Controller
// method call.
func (c *Controller) EmergencyShutdown() {
	c.stopMotor()
	if c.enablePin != nil {
		c.enablePin.Set(false)
	}
	state := disableInterrupts()
	c.motorEnabled = false
	restoreInterrupts(state)
}

// onHomeSwitchTriggered is called with interrupts already disabled, the
// instant a home-switch edge is accepted. If a homing run is active it
// completes the move in place; otherwise the switch has tripped
// unexpectedly during normal operation, which still re-zeroes the
// position (the switch is a known physical reference regardless of why
// it fired) and aborts whatever move was in progress.
func (c *Controller) onHomeSwitchTriggered() {
	RecordTiming(EvtHomeTrigger, 0, GetTime(), uint32(c.posCurrent), 0)

	if c.status != StatusHoming {
		wasRunning := c.running
		c.running = false
		c.status = StatusStopped
		c.vCurrent = 0
		c.aCurrent = 0
		c.jCurrent = 0
		c.periodCurrent = 0
		c.posCurrent = 0
		c.homePerformed = true
		c.homeStepEvents |= HomeStepsEventUnexpected
		if wasRunning {
			c.moveToEvents |= MoveToEventAborted
		}
		return
	}

	c.posCurrent = 0
	c.posTarget = 0
	c.running = false
	c.status = StatusStopped
	c.vCurrent = 0
	c.aCurrent = 0
	c.jCurrent = 0
	c.periodCurrent = 0
	c.homePerformed = true
	c.homeStepEvents |= HomeStepsEventSuccessful
}
