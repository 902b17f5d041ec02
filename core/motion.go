package core

import "math"

// The step direction is not stored: onPulseTimer derives it on every
// pulse from posTarget/posCurrent (or, for a direct-velocity jog, from
// the sign of directVelocityPeriod), read with interrupts disabled.
//
// This file implements C1-C4 of the motion engine: the collapsed
// pulse-ISR (onPulseTimer), the 500us integrator (Integrate), the state
// machine transition rules, and the move/home/stop entry points the
// command dispatcher (core/dispatcher.go) calls into.

// onPulseTimer is the pulse generator. On real hardware this plays the
// role the original firmware split across two ISRs: an overflow ISR that
// latched the next period and a compare-match ISR that emitted the pulse.
// Here a single rescheduled Timer reads periodCurrent fresh on every
// firing, which is equivalent as long as periodCurrent is only ever
// updated under the same critical section this handler reads it in.
func (c *Controller) onPulseTimer(t *Timer) uint8 {
	state := disableInterrupts()
	period := c.periodCurrent
	running := c.running
	dir := c.posTarget > c.posCurrent
	if c.directVelocityPeriod != 0 {
		dir = c.directVelocityPeriod > 0
	}
	restoreInterrupts(state)

	if !running || period == 0 {
		return SF_DONE
	}

	if c.pulse != nil {
		c.pulse.SetDirection(!dir)
		c.pulse.Step()
	}
	totalPulseCount++
	RecordTiming(EvtPulse, 0, GetTime(), uint32(c.posCurrent), period)

	state = disableInterrupts()
	if dir {
		c.posCurrent++
	} else {
		c.posCurrent--
	}
	reached := c.directVelocityPeriod == 0 && c.posCurrent == c.posTarget
	homing := c.status == StatusHoming
	restoreInterrupts(state)

	if reached {
		RecordTiming(EvtMoveFinish, 0, GetTime(), uint32(c.posCurrent), 0)
		if homing {
			// homingMaxDistance was exhausted without the switch tripping.
			c.finishMove(HomeStepsEventFailed)
		} else {
			c.finishMove(MoveToEventSuccessful)
		}
		return SF_DONE
	}

	t.WakeTime += TimerFromUS(period)
	return SF_RESCHEDULE
}

// Integrate runs the jerk-limited velocity profile one 500us tick. It is
// called from the main loop at a fixed cadence; it is the only writer of
// vCurrent/aCurrent/jCurrent/status/periodCurrent outside of move/home/stop
// start-up.
func (c *Controller) Integrate() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if c.status == StatusStopped {
		return
	}
	if c.directVelocityPeriod != 0 {
		// A direct-velocity jog keeps the period WriteDirectVelocity set.
		return
	}

	distToTarget := math.Abs(float64(c.posTarget - c.posCurrent))

	switch c.status {
	case StatusAccelerating, StatusConstantVelocity:
		c.jCurrent = c.jAccel
		c.aCurrent += c.jCurrent * integratorDeltaSeconds
		if c.aCurrent > c.aAccel {
			c.aCurrent = c.aAccel
		}
		c.vCurrent += c.aCurrent * integratorDeltaSeconds
		if c.vCurrent > c.vMax {
			c.vCurrent = c.vMax
			c.aCurrent = 0
			c.status = StatusConstantVelocity
		}

		d, ok := brakingDistance(c.vCurrent, c.vMin, c.aDecel, c.jDecel)
		if ok {
			c.brakingDistance = uint32(d)
			if d >= distToTarget {
				c.status = StatusDecelerating
				c.aCurrent = c.aDecel
				c.jCurrent = c.jDecel
			}
		} else {
			c.brakingNoSolutionCount++
		}

	case StatusDecelerating:
		c.jCurrent = c.jDecel
		c.aCurrent += c.jCurrent * integratorDeltaSeconds
		if c.aCurrent < c.aDecel {
			c.aCurrent = c.aDecel
		}
		c.vCurrent += c.aCurrent * integratorDeltaSeconds
		if d, ok := brakingDistance(c.vCurrent, c.vMin, c.aDecel, c.jDecel); ok && d > distToTarget && c.vCurrent > 0 {
			// Over-braked: the remaining distance is shorter than the
			// braking distance. Damp vCurrent harder, same ratio as the
			// original firmware used.
			c.vCurrent *= 1 - (c.vMin/c.vCurrent)*(c.vMin/c.vCurrent)/overBrakeDampingDivisor
		}
		if c.vCurrent < c.vMin {
			c.vCurrent = c.vMin
		}

	case StatusHoming:
		c.vCurrent = c.vHome
		c.aCurrent = 0
		c.jCurrent = 0
	}

	if c.vCurrent <= 0 {
		c.vCurrent = c.vMin
	}

	c.periodCurrent = periodFromVelocity(c.vCurrent)
}

// periodFromVelocity converts a velocity in steps/s to a step period in
// microseconds, clamped to the hardware-representable range.
func periodFromVelocity(v float64) uint32 {
	periodUS := uint32(1000000 / v)
	if periodUS < PeriodMin {
		periodUS = PeriodMin
	}
	if periodUS > PeriodMax {
		periodUS = PeriodMax
	}
	return periodUS
}

// beginMove arms the pulse generator and puts the controller into
// Accelerating for a move towards target. Callers (core/dispatcher.go)
// are responsible for all precondition checks; beginMove assumes the
// move has already been validated. periodCurrent is seeded from vCurrent
// before arming: leaving it at whatever onPulseTimer last saw (0 on a
// fresh controller) would make the very first pulse firing observe
// period == 0 and terminate the move before Integrate ever runs.
func (c *Controller) beginMove(target int32) {
	state := disableInterrupts()
	c.posTarget = target
	c.status = StatusAccelerating
	c.aCurrent = c.aAccel
	c.jCurrent = c.jAccel
	c.directVelocityPeriod = 0
	if c.vCurrent < c.vMin {
		c.vCurrent = c.vMin
	}
	c.periodCurrent = periodFromVelocity(c.vCurrent)
	c.running = true
	restoreInterrupts(state)

	RecordTiming(EvtMoveStart, 0, GetTime(), uint32(target), 0)
	c.armPulseTimer()
}

// beginHome arms the pulse generator at the fixed homing velocity,
// moving towards negative infinity (the home switch end) until the
// switch trips or homingMaxDistance is exhausted.
func (c *Controller) beginHome() {
	state := disableInterrupts()
	c.status = StatusHoming
	c.posTarget = c.posCurrent - c.homingMaxDistance
	c.vCurrent = c.vHome
	c.aCurrent = 0
	c.jCurrent = 0
	c.directVelocityPeriod = 0
	c.periodCurrent = periodFromVelocity(c.vCurrent)
	c.running = true
	restoreInterrupts(state)

	c.armPulseTimer()
}

func (c *Controller) armPulseTimer() {
	c.pulseTimer.WakeTime = GetTime() + TimerFromUS(c.periodCurrent)
	ScheduleTimer(&c.pulseTimer)
}

// stopMotor halts motion immediately: clears running, resets the
// dynamic state, and leaves posCurrent where it stands. It is driven
// both by an explicit STOP_MOVEMENT write and by the emergency-stop
// switch handler (core/safety.go).
func (c *Controller) stopMotor() {
	state := disableInterrupts()
	c.running = false
	c.status = StatusStopped
	c.vCurrent = 0
	c.aCurrent = 0
	c.jCurrent = 0
	c.periodCurrent = 0
	restoreInterrupts(state)
}

// finishMove is called from the pulse ISR when the target position has
// been reached. Aborts (WriteStopMovement, the switch handlers) stop the
// motor and raise their events without going through it.
func (c *Controller) finishMove(event uint8) {
	homing := c.Status() == StatusHoming
	c.stopMotor()

	if homing {
		state := disableInterrupts()
		c.homePerformed = event == MoveToEventSuccessful || event == HomeStepsEventSuccessful
		restoreInterrupts(state)
		if event == MoveToEventSuccessful {
			c.raiseHomeStepsEvent(HomeStepsEventSuccessful)
		} else {
			c.raiseHomeStepsEvent(HomeStepsEventFailed)
		}
		return
	}

	c.raiseMoveToEvent(event)
}
