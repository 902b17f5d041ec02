// Package core hosts the FastStepper motion control engine together with
// the hardware abstraction layer it runs against. The motion controller
// (Controller) is the single owning value for the hot state shared across
// the pulse ISR, the switch ISRs and the main loop, replacing the scattered
// file-scope globals of the original firmware with one struct whose
// multi-word fields are written under a critical section.
package core

// MotionStatus is the motion state machine's tag.
type MotionStatus uint8

const (
	StatusStopped MotionStatus = iota
	StatusAccelerating
	StatusConstantVelocity
	StatusDecelerating
	StatusHoming
)

func (s MotionStatus) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusAccelerating:
		return "Accelerating"
	case StatusConstantVelocity:
		return "ConstantVelocity"
	case StatusDecelerating:
		return "Decelerating"
	case StatusHoming:
		return "Homing"
	default:
		return "Unknown"
	}
}

// Hardware bounds for velocity and step period, matching the register
// bank's clamp-but-reject semantics for MIN/MAX_VELOCITY.
const (
	VHardwareMin float64 = 16
	VHardwareMax float64 = 20000

	// PeriodMin/PeriodMax bound period_current, expressed in microseconds
	// (the same unit DIRECT_VELOCITY uses for its signed period value).
	PeriodMin uint32 = 50      // corresponds to VHardwareMax
	PeriodMax uint32 = 1000000 // 1s/step; VHardwareMin itself is 62500us

	// integratorDeltaSeconds is the fixed cadence C2 runs at.
	integratorDeltaSeconds = 0.0005

	// endstopHoldoffTicks is the number of 500us debounce ticks (10ms) a
	// home-switch active edge holds off further re-triggers for.
	endstopHoldoffTicks = 20
)

// Controller owns all motion dynamic state described in the data model: it
// is read by the pulse ISR and the switch ISRs, and mutated primarily by
// the 500us integrator and the command dispatcher running on the main
// loop. Multi-word fields (posTarget, periodCurrent, the event bitmasks)
// are only ever touched with interrupts disabled around the access, the
// same discipline scheduler.go already uses; on the host
// build this degrades to a no-op (see interrupt_go.go), since there is no
// real interrupt controller to race against.
type Controller struct {
	// Motion parameters (host-configurable)
	vMin, vMax     float64
	aAccel, aDecel float64
	jAccel, jDecel float64
	vHome          float64

	// Motion dynamic state
	posCurrent      int32
	posTarget       int32
	vCurrent        float64
	aCurrent        float64
	jCurrent        float64
	periodCurrent   uint32
	brakingDistance uint32
	status          MotionStatus
	running         bool

	// Control flags
	homeEnabled            bool
	homePerformed          bool
	homingMaxDistance      int32
	endstopDebounceCounter int

	// Feature flags mirrored from the CONTROL register
	motorEnabled       bool
	analogInEnabled    bool
	quadEncoderEnabled bool

	// Event staging, drained by C7
	homeStepEvents uint8
	moveToEvents   uint8

	// Diagnostics
	brakingNoSolutionCount uint32

	// Direct-velocity bookkeeping (addr 39) kept only for register reads.
	directVelocityPeriod int32

	// Brake output value (addr 36), 0-255.
	brakeValue uint8

	// Hardware backends
	pulse      StepperBackend
	enablePin  *MotorEnablePin
	brake      BrakeDriver
	stopSwitch SwitchReader
	homeSwitch SwitchReader
	pulseTimer Timer

	// request_stopped_event, single-writer(ISR)/single-reader(C7)
	requestStoppedEvent bool

	// Optional input forwarding backends, polled by C7.
	analogSource  AnalogSource
	encoderSource EncoderSource

	// Last values sampled by C7, also exposed for direct register reads.
	lastAnalog  int16
	lastEncoder int16
}

// SwitchReader reports the debounced, polarity-corrected state of a
// digital safety/home switch: true means "active" (triggered), regardless
// of whether the underlying wiring is active-high or active-low.
type SwitchReader interface {
	Read() bool
}

// BrakeDriver abstracts the brake output, whether it is a plain digital
// clamp or a PWM-driven proportional brake (see core/brake.go).
type BrakeDriver interface {
	SetValue(v uint8) error
}

// ControllerConfig supplies the hardware bindings and default parameters
// for a new Controller.
type ControllerConfig struct {
	Pulse      StepperBackend
	EnablePin  *MotorEnablePin
	Brake      BrakeDriver
	StopSwitch SwitchReader
	HomeSwitch SwitchReader

	VMin, VMax     float64
	AAccel, ADecel float64
	JAccel, JDecel float64
	VHome          float64
}

// NewController builds a Controller in the Stopped state.
func NewController(cfg ControllerConfig) *Controller {
	c := &Controller{
		pulse:      cfg.Pulse,
		enablePin:  cfg.EnablePin,
		brake:      cfg.Brake,
		stopSwitch: cfg.StopSwitch,
		homeSwitch: cfg.HomeSwitch,

		vMin:   cfg.VMin,
		vMax:   cfg.VMax,
		aAccel: cfg.AAccel,
		aDecel: cfg.ADecel,
		jAccel: cfg.JAccel,
		jDecel: cfg.JDecel,
		vHome:  cfg.VHome,

		status: StatusStopped,
	}
	c.pulseTimer.Handler = c.onPulseTimer
	return c
}

// --- accessors used by the register bank (core/registers.go) ---

func (c *Controller) ControlShadow() uint16 {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	var v uint16
	if c.motorEnabled {
		v |= ControlEnableMotor
	} else {
		v |= ControlDisableMotor
	}
	if c.analogInEnabled {
		v |= ControlEnableAnalogIn
	} else {
		v |= ControlDisableAnalogIn
	}
	if c.quadEncoderEnabled {
		v |= ControlEnableQuadEncoder
	} else {
		v |= ControlDisableQuadEncoder
	}
	if c.homeEnabled {
		v |= ControlEnableHoming
	} else {
		v |= ControlDisableHoming
	}
	return v
}

func (c *Controller) VMin() float64   { return c.vMin }
func (c *Controller) VMax() float64   { return c.vMax }
func (c *Controller) AAccel() float64 { return c.aAccel }
func (c *Controller) ADecel() float64 { return c.aDecel }
func (c *Controller) JAccel() float64 { return c.jAccel }
func (c *Controller) JDecel() float64 { return c.jDecel }
func (c *Controller) VHome() float64  { return c.vHome }

func (c *Controller) PosTargetValue() int32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return c.posTarget
}

func (c *Controller) PosCurrent() int32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return c.posCurrent
}

func (c *Controller) Status() MotionStatus {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return c.status
}

func (c *Controller) Running() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return c.running
}

func (c *Controller) HomeSteps() int32 { return c.homingMaxDistance }

func (c *Controller) DirectVelocityPeriod() int32 { return c.directVelocityPeriod }

func (c *Controller) BrakeValue() uint8 { return c.brakeValue }

func (c *Controller) StopSwitchActive() bool {
	if c.stopSwitch == nil {
		return false
	}
	return c.stopSwitch.Read()
}

func (c *Controller) HomeSwitchActive() bool {
	if c.homeSwitch == nil {
		return false
	}
	return c.homeSwitch.Read()
}

func (c *Controller) HomeEnabled() bool   { return c.homeEnabled }
func (c *Controller) HomePerformed() bool { return c.homePerformed }
func (c *Controller) MotorEnabled() bool  { return c.motorEnabled }

// DrainMoveToEvents returns and clears the staged MOVE_TO_EVENTS bitmask.
func (c *Controller) DrainMoveToEvents() uint8 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	v := c.moveToEvents
	c.moveToEvents = 0
	return v
}

// DrainHomeStepsEvents returns and clears the staged HOME_STEPS_EVENTS bitmask.
func (c *Controller) DrainHomeStepsEvents() uint8 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	v := c.homeStepEvents
	c.homeStepEvents = 0
	return v
}

func (c *Controller) raiseMoveToEvent(bit uint8) {
	state := disableInterrupts()
	c.moveToEvents |= bit
	restoreInterrupts(state)
}

func (c *Controller) raiseHomeStepsEvent(bit uint8) {
	state := disableInterrupts()
	c.homeStepEvents |= bit
	restoreInterrupts(state)
}

// SetBrakeValue drives the brake output (addr 36) and records the value
// for register reads. With no brake configured it is a no-op success,
// matching a target build with the brake feature wired out.
func (c *Controller) SetBrakeValue(v uint8) error {
	state := disableInterrupts()
	c.brakeValue = v
	restoreInterrupts(state)

	if c.brake == nil {
		return nil
	}
	return c.brake.SetValue(v)
}
