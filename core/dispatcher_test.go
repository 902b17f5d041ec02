package core

import "testing"

func newDispatcherTestController() (*Controller, *fakeStepperBackend) {
	resetSchedulerState()
	pulse := &fakeStepperBackend{}
	c := NewController(ControllerConfig{
		Pulse:  pulse,
		VMin:   16,
		VMax:   4000,
		AAccel: 20000,
		ADecel: -20000,
		JAccel: 400000,
		JDecel: -400000,
		VHome:  500,
	})
	return c, pulse
}

func TestWriteMoveToRejectsWhenMotorDisabled(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteMoveTo(100)

	if v := c.DrainMoveToEvents(); v != MoveToEventMotorDisabled {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventMotorDisabled", v)
	}
	if c.Running() {
		t.Fatal("move should not have started with the motor disabled")
	}
}

func TestWriteMoveToSucceedsWhenMotorEnabled(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)
	c.WriteMoveTo(100)

	if v := c.DrainMoveToEvents(); v != MoveToEventSuccessful {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventSuccessful", v)
	}
	if !c.Running() {
		t.Fatal("expected move to have started")
	}
}

func TestWriteMoveToRejectsWhileHoming(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor | ControlEnableHoming)
	c.homingMaxDistance = 100
	c.beginHome()

	c.WriteMoveTo(5)
	if v := c.DrainMoveToEvents(); v != MoveToEventCurrentlyHoming {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventCurrentlyHoming", v)
	}
}

func TestWriteMoveToRejectsNegativeTargetWhenHomingEnabled(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor | ControlEnableHoming)
	c.homePerformed = true

	c.WriteMoveTo(-5)
	if v := c.DrainMoveToEvents(); v != MoveToEventInvalidPosition {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventInvalidPosition", v)
	}
	if c.Running() {
		t.Fatal("move should not have started for a negative target with homing enabled")
	}
}

func TestWriteMoveToAllowsNegativeTargetWhenHomingDisabled(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)

	c.WriteMoveTo(-5)
	if v := c.DrainMoveToEvents(); v != MoveToEventSuccessful {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventSuccessful", v)
	}
}

func TestWriteMoveToRejectsWhenMaxVelocityBelowMin(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)
	c.setVMin(2000)
	c.setVMax(1000)

	c.WriteMoveTo(100)
	if v := c.DrainMoveToEvents(); v != MoveToEventInvalidParameters {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventInvalidParameters", v)
	}
	if c.Running() {
		t.Fatal("move should not have started with v_max < v_min")
	}
}

func TestWriteMoveToRejectsWhenHomingRequiredButNotPerformed(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor | ControlEnableHoming)

	c.WriteMoveTo(5)
	if v := c.DrainMoveToEvents(); v != MoveToEventHomingMissing {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventHomingMissing", v)
	}
}

func TestWriteHomeStepsRejectsWhenMotorDisabled(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableHoming)
	c.WriteHomeSteps(100)

	if v := c.DrainHomeStepsEvents(); v != HomeStepsEventMotorDisabled {
		t.Fatalf("DrainHomeStepsEvents() = %#x, want HomeStepsEventMotorDisabled", v)
	}
}

func TestWriteHomeStepsRejectsWhenHomingDisabled(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)
	c.WriteHomeSteps(100)

	if v := c.DrainHomeStepsEvents(); v != HomeStepsEventDisabled {
		t.Fatalf("DrainHomeStepsEvents() = %#x, want HomeStepsEventDisabled", v)
	}
}

func TestWriteHomeStepsRejectsWhenAlreadyAtHomeSwitch(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.homeSwitch = &fakeSwitch{active: true}
	c.WriteControl(ControlEnableMotor | ControlEnableHoming)

	c.WriteHomeSteps(100)
	if v := c.DrainHomeStepsEvents(); v != HomeStepsEventAlreadyHome {
		t.Fatalf("DrainHomeStepsEvents() = %#x, want HomeStepsEventAlreadyHome", v)
	}
}

func TestWriteHomeStepsStartsHomingRun(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor | ControlEnableHoming)

	c.WriteHomeSteps(100)
	if c.Status() != StatusHoming {
		t.Fatalf("Status() = %v, want StatusHoming", c.Status())
	}
	if !c.Running() {
		t.Fatal("expected homing run to be marked running")
	}
}

func TestSetVMinClampsButReportsRejected(t *testing.T) {
	c, _ := newDispatcherTestController()

	ok := c.setVMin(VHardwareMax + 1000)
	if ok {
		t.Fatal("setVMin should report rejected for an out-of-range value")
	}
	if c.VMin() != VHardwareMax {
		t.Fatalf("VMin() = %v, want clamped to %v", c.VMin(), VHardwareMax)
	}

	ok = c.setVMin(VHardwareMin - 1)
	if ok {
		t.Fatal("setVMin should report rejected for a below-range value")
	}
	if c.VMin() != VHardwareMin {
		t.Fatalf("VMin() = %v, want clamped to %v", c.VMin(), VHardwareMin)
	}
}

func TestWriteMoveToParametricAppliesAllFieldsEvenOnRejection(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)

	c.WriteMoveToParametric(ParametricMove{
		Target:      42,
		MinVelocity: VHardwareMax + 500, // rejected, but still clamped+stored
		MaxVelocity: 2000,
		Accel:       5000,
		Decel:       -5000,
		AccelJerk:   1000,
		DecelJerk:   -1000,
	})

	if c.VMin() != VHardwareMax {
		t.Fatalf("VMin() = %v, want clamped to %v despite rejection", c.VMin(), VHardwareMax)
	}
	if c.AAccel() != 5000 {
		t.Fatalf("AAccel() = %v, want 5000", c.AAccel())
	}
	if v := c.DrainMoveToEvents(); v != MoveToEventInvalidParameters {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventInvalidParameters", v)
	}
	if c.Running() {
		t.Fatal("move should not have started when a velocity field was rejected")
	}
}

func TestWriteMoveToParametricStartsMoveWhenAllFieldsValid(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)

	c.WriteMoveToParametric(ParametricMove{
		Target:      42,
		MinVelocity: 16,
		MaxVelocity: 2000,
		Accel:       5000,
		Decel:       -5000,
		AccelJerk:   1000,
		DecelJerk:   -1000,
	})

	if !c.Running() {
		t.Fatal("expected move to have started")
	}
	if v := c.DrainMoveToEvents(); v != MoveToEventSuccessful {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventSuccessful", v)
	}
}

func TestWriteDirectVelocityZeroStopsMotor(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)
	c.WriteDirectVelocity(500)
	if !c.Running() {
		t.Fatal("expected direct-velocity jog to start running")
	}

	c.WriteDirectVelocity(0)
	if c.Running() {
		t.Fatal("expected direct-velocity 0 to stop the motor")
	}
}

func TestWriteStopMovementRaisesAbortedWhenRunning(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteControl(ControlEnableMotor)
	c.WriteMoveTo(1000)
	c.DrainMoveToEvents()

	c.WriteStopMovement()
	if v := c.DrainMoveToEvents(); v != MoveToEventAborted {
		t.Fatalf("DrainMoveToEvents() = %#x, want MoveToEventAborted", v)
	}
}

func TestWriteStopMovementNoEventWhenAlreadyStopped(t *testing.T) {
	c, _ := newDispatcherTestController()
	c.WriteStopMovement()
	if v := c.DrainMoveToEvents(); v != 0 {
		t.Fatalf("DrainMoveToEvents() = %#x, want 0 (no move was running)", v)
	}
}
