package core

// This file implements C7, the event bus adapter binding the motion
// engine to the host-visible register bank on the main loop's cadence.
// EventSink is whatever transport (HARP serial framing, a test harness)
// owns actually notifying the host of an updated register.

// EventSink receives register-change notifications the main loop
// produces on its own, as opposed to ones raised synchronously from a
// register write.
type EventSink interface {
	NotifyU8(addr uint16, value uint8)
	NotifyI16(addr uint16, value int16)
}

// Tick runs one 500us main-loop iteration: it polls the safety
// switches, advances the velocity profile, and forwards any events or
// sampled inputs staged since the last tick to sink. Order matters -
// the switch poll must run before Integrate so a same-tick home trigger
// is reflected in the state Integrate consumes.
func (c *Controller) Tick(sink EventSink) {
	c.PollHomeSwitch()
	c.Integrate()

	if events := c.DrainHomeStepsEvents(); events != 0 {
		sink.NotifyU8(RegHomeStepsEvents, events)
	}
	if events := c.DrainMoveToEvents(); events != 0 {
		sink.NotifyU8(RegMoveToEvents, events)
	}

	state := disableInterrupts()
	stopped := c.requestStoppedEvent
	c.requestStoppedEvent = false
	restoreInterrupts(state)
	if stopped {
		sink.NotifyU8(RegStopSwitch, 1)
	}

	if c.analogInEnabled && c.analogSource != nil {
		v := c.analogSource.Read()
		state = disableInterrupts()
		c.lastAnalog = v
		restoreInterrupts(state)
		sink.NotifyI16(RegAnalogInput, v)
	}
	if c.quadEncoderEnabled && c.encoderSource != nil {
		v := c.encoderSource.Count()
		state = disableInterrupts()
		c.lastEncoder = v
		restoreInterrupts(state)
		sink.NotifyI16(RegEncoder, v)
	}
}

// LastAnalog returns the most recently sampled analog input value.
func (c *Controller) LastAnalog() int16 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return c.lastAnalog
}

// LastEncoder returns the most recently sampled encoder count.
func (c *Controller) LastEncoder() int16 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return c.lastEncoder
}

// AnalogSource abstracts the ADC sampling backend used for REG_ANALOG_INPUT.
type AnalogSource interface {
	Read() int16
}

// EncoderSource abstracts the quadrature decoder used for REG_ENCODER.
type EncoderSource interface {
	Count() int16
}

// ResettableEncoder is implemented by EncoderSource backends that
// support REG_CONTROL's ControlResetQuadEncoder bit.
type ResettableEncoder interface {
	Reset()
}

// SetAnalogSource binds the ADC backend used when analog input
// forwarding is enabled via REG_CONTROL.
func (c *Controller) SetAnalogSource(a AnalogSource) { c.analogSource = a }

// SetEncoderSource binds the quadrature decoder backend used when
// encoder forwarding is enabled via REG_CONTROL.
func (c *Controller) SetEncoderSource(e EncoderSource) { c.encoderSource = e }
