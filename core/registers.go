// Register bank definitions for the FastStepper device.
//
// Addresses, types and bitmasks below mirror the host-visible register table:
// a fixed, statically addressed bank with no dynamic command dictionary.
package core

// Register addresses. The bank occupies the fixed range [RegMin, RegMax].
const (
	RegControl          = 32 // U16 bitmask: enable/disable motor, analog, encoder, homing
	RegEncoder          = 33 // I16: latest quadrature encoder count
	RegAnalogInput       = 34 // I16: latest ADC sample
	RegStopSwitch        = 35 // U8: 1 = stop asserted
	RegMotorBrake        = 36 // U8: brake output state/duty
	RegMoving            = 37 // U8: 1 while running
	RegStopMovement      = 38 // U8: write to stop immediately
	RegDirectVelocity    = 39 // I32: signed step period (us); sign = direction; 0 = stop
	RegMoveTo            = 40 // I32: signed target position
	RegMoveToEvents      = 41 // U8: see MoveToEvent bits
	RegMinVelocity       = 42 // U16: steps/s
	RegMaxVelocity       = 43 // U16: steps/s
	RegAcceleration      = 44 // I32: steps/s^2
	RegDeceleration      = 45 // I32: steps/s^2
	RegAccelerationJerk  = 46 // I32: steps/s^3
	RegDecelerationJerk  = 47 // I32: steps/s^3
	RegHomeSteps         = 48 // I32: max homing distance
	RegHomeStepsEvents   = 49 // U8: see HomeStepsEvent bits
	RegHomeVelocity      = 50 // U32: steps/s
	RegHomeSwitch        = 51 // U8: 1 = at home

	RegMin = RegControl
	RegMax = RegHomeSwitch

	// RegMoveToParametric is not part of the contiguous bank: it is a
	// composite write of 7 I32 fields (target, v_min, v_max, a, d, j_a, j_d)
	// applied through RegisterBank.WriteMoveToParametric. Handle does not
	// route frames addressed to it; they get an OpError reply.
	RegMoveToParametric = 0xF0
)

// CONTROL register bits.
const (
	ControlEnableMotor        uint16 = 1 << 0
	ControlDisableMotor       uint16 = 1 << 1
	ControlEnableAnalogIn     uint16 = 1 << 2
	ControlDisableAnalogIn    uint16 = 1 << 3
	ControlEnableQuadEncoder  uint16 = 1 << 4
	ControlDisableQuadEncoder uint16 = 1 << 5
	ControlResetQuadEncoder   uint16 = 1 << 6
	ControlEnableHoming       uint16 = 1 << 7
	ControlDisableHoming      uint16 = 1 << 8
)

// MOVE_TO_EVENTS bits.
const (
	MoveToEventSuccessful        uint8 = 1 << 0
	MoveToEventAborted           uint8 = 1 << 1
	MoveToEventInvalidPosition   uint8 = 1 << 2
	MoveToEventHomingMissing     uint8 = 1 << 3
	MoveToEventCurrentlyHoming   uint8 = 1 << 4
	MoveToEventMotorDisabled     uint8 = 1 << 5
	MoveToEventInvalidParameters uint8 = 1 << 6
)

// HOME_STEPS_EVENTS bits.
const (
	HomeStepsEventSuccessful   uint8 = 1 << 0
	HomeStepsEventFailed       uint8 = 1 << 1
	HomeStepsEventAlreadyHome  uint8 = 1 << 2
	HomeStepsEventUnexpected   uint8 = 1 << 3
	HomeStepsEventDisabled     uint8 = 1 << 4
	HomeStepsEventMotorDisabled uint8 = 1 << 5
)

// RegisterBank exposes the fixed HARP register table over an addressed,
// typed interface. It is deliberately not a dynamic command dictionary:
// every address in [RegMin, RegMax] exists from construction.
type RegisterBank struct {
	ctrl *Controller
}

// NewRegisterBank binds a register bank to a motion controller.
func NewRegisterBank(ctrl *Controller) *RegisterBank {
	return &RegisterBank{ctrl: ctrl}
}

// ReadU16 reads a U16 register (CONTROL, MIN_VELOCITY, MAX_VELOCITY).
func (b *RegisterBank) ReadU16(addr uint16) (uint16, bool) {
	switch addr {
	case RegControl:
		return b.ctrl.ControlShadow(), true
	case RegMinVelocity:
		return uint16(b.ctrl.VMin()), true
	case RegMaxVelocity:
		return uint16(b.ctrl.VMax()), true
	}
	return 0, false
}

// ReadI32 reads an I32 register.
func (b *RegisterBank) ReadI32(addr uint16) (int32, bool) {
	switch addr {
	case RegDirectVelocity:
		return b.ctrl.DirectVelocityPeriod(), true
	case RegMoveTo:
		return b.ctrl.PosTargetValue(), true
	case RegAcceleration:
		return int32(b.ctrl.AAccel()), true
	case RegDeceleration:
		return int32(b.ctrl.ADecel()), true
	case RegAccelerationJerk:
		return int32(b.ctrl.JAccel()), true
	case RegDecelerationJerk:
		return int32(b.ctrl.JDecel()), true
	case RegHomeSteps:
		return b.ctrl.HomeSteps(), true
	}
	return 0, false
}

// ReadI16 reads an I16 register.
func (b *RegisterBank) ReadI16(addr uint16) (int16, bool) {
	switch addr {
	case RegEncoder:
		return b.ctrl.LastEncoder(), true
	case RegAnalogInput:
		return b.ctrl.LastAnalog(), true
	}
	return 0, false
}

// ReadU32 reads a U32 register (currently only HOME_VELOCITY).
func (b *RegisterBank) ReadU32(addr uint16) (uint32, bool) {
	if addr == RegHomeVelocity {
		return uint32(b.ctrl.VHome()), true
	}
	return 0, false
}

// WriteU32 applies a U32 register write.
func (b *RegisterBank) WriteU32(addr uint16, v uint32) bool {
	if addr == RegHomeVelocity {
		b.ctrl.setVHome(float64(v))
		return true
	}
	return false
}

// ReadU8 reads a U8 register.
func (b *RegisterBank) ReadU8(addr uint16) (uint8, bool) {
	switch addr {
	case RegStopSwitch:
		return boolToU8(b.ctrl.StopSwitchActive()), true
	case RegMotorBrake:
		return b.ctrl.BrakeValue(), true
	case RegMoving:
		return boolToU8(b.ctrl.Running()), true
	case RegMoveToEvents:
		return b.ctrl.DrainMoveToEvents(), true
	case RegHomeStepsEvents:
		return b.ctrl.DrainHomeStepsEvents(), true
	case RegHomeSwitch:
		return boolToU8(b.ctrl.HomeSwitchActive()), true
	}
	return 0, false
}

// Handle applies a single decoded frame to the bank and returns the
// response frame: a read ack carrying the read value, a write ack with
// no payload, or OpError if the address/type pair is not recognized or
// the write was rejected.
func (b *RegisterBank) Handle(f Frame) Frame {
	switch f.Op {
	case OpRead:
		return b.handleRead(f.Addr, f.Type)
	case OpWrite:
		return b.handleWrite(f)
	}
	return Frame{Op: OpError, Addr: f.Addr}
}

func (b *RegisterBank) handleRead(addr uint16, typ uint8) Frame {
	switch typ {
	case TypeU8:
		if v, ok := b.ReadU8(addr); ok {
			return Frame{Op: OpReadAck, Addr: addr, Type: typ, Payload: EncodeU8(v)}
		}
	case TypeI16:
		if v, ok := b.ReadI16(addr); ok {
			return Frame{Op: OpReadAck, Addr: addr, Type: typ, Payload: EncodeI16(v)}
		}
	case TypeU16:
		if v, ok := b.ReadU16(addr); ok {
			return Frame{Op: OpReadAck, Addr: addr, Type: typ, Payload: EncodeU16(v)}
		}
	case TypeI32:
		if v, ok := b.ReadI32(addr); ok {
			return Frame{Op: OpReadAck, Addr: addr, Type: typ, Payload: EncodeI32(v)}
		}
	case TypeU32:
		if v, ok := b.ReadU32(addr); ok {
			return Frame{Op: OpReadAck, Addr: addr, Type: typ, Payload: EncodeU32(v)}
		}
	}
	return Frame{Op: OpError, Addr: addr}
}

func (b *RegisterBank) handleWrite(f Frame) Frame {
	var ok bool
	switch f.Type {
	case TypeU8:
		ok = b.WriteU8(f.Addr, DecodeU8(f.Payload))
	case TypeU16:
		ok = b.WriteU16(f.Addr, DecodeU16(f.Payload))
	case TypeI32:
		ok = b.WriteI32(f.Addr, DecodeI32(f.Payload))
	case TypeU32:
		ok = b.WriteU32(f.Addr, DecodeU32(f.Payload))
	}
	if !ok {
		return Frame{Op: OpError, Addr: f.Addr}
	}
	return Frame{Op: OpWriteAck, Addr: f.Addr, Type: f.Type}
}

func boolToU8(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// WriteU16 applies a U16 register write, returning false if addr names
// no writable U16 register or the write was rejected by validation.
func (b *RegisterBank) WriteU16(addr uint16, v uint16) bool {
	switch addr {
	case RegControl:
		b.ctrl.WriteControl(v)
		return true
	case RegMinVelocity:
		return b.ctrl.WriteMinVelocity(v)
	case RegMaxVelocity:
		return b.ctrl.WriteMaxVelocity(v)
	}
	return false
}

// WriteI32 applies an I32 register write.
func (b *RegisterBank) WriteI32(addr uint16, v int32) bool {
	switch addr {
	case RegDirectVelocity:
		b.ctrl.WriteDirectVelocity(v)
		return true
	case RegMoveTo:
		b.ctrl.WriteMoveTo(v)
		return true
	case RegAcceleration:
		b.ctrl.WriteAcceleration(v)
		return true
	case RegDeceleration:
		b.ctrl.WriteDeceleration(v)
		return true
	case RegAccelerationJerk:
		b.ctrl.WriteAccelerationJerk(v)
		return true
	case RegDecelerationJerk:
		b.ctrl.WriteDecelerationJerk(v)
		return true
	case RegHomeSteps:
		b.ctrl.WriteHomeSteps(v)
		return true
	}
	return false
}

// WriteU8 applies a U8 register write.
func (b *RegisterBank) WriteU8(addr uint16, v uint8) bool {
	switch addr {
	case RegStopMovement:
		b.ctrl.WriteStopMovement()
		return true
	case RegMotorBrake:
		return b.ctrl.SetBrakeValue(v) == nil
	}
	return false
}

// WriteMoveToParametric applies the composite 0xF0 transaction.
func (b *RegisterBank) WriteMoveToParametric(m ParametricMove) {
	b.ctrl.WriteMoveToParametric(m)
}
