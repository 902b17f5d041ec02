// Quadrature encoder support (REG_ENCODER). Decoding is done in
// software from two GPIO inputs sampled on each A-channel edge, which
// is adequate at the encoder resolutions this device targets; a
// hardware quadrature counter peripheral, where available, can
// implement EncoderSource directly instead of using this type.
package core

// QuadratureEncoder implements EncoderSource over two GPIO pins polled
// once per main-loop tick. It only detects transitions it actually
// samples, so the encoder's maximum count rate is bounded by the
// controller's 500us tick.
type QuadratureEncoder struct {
	pinA, pinB GPIOPin
	lastA      bool
	count      int16
}

// NewQuadratureEncoder configures both pins as pulled-up inputs and
// returns an EncoderSource tracking their relative phase.
func NewQuadratureEncoder(pinA, pinB GPIOPin) (*QuadratureEncoder, error) {
	if err := MustGPIO().ConfigureInputPullUp(pinA); err != nil {
		return nil, err
	}
	if err := MustGPIO().ConfigureInputPullUp(pinB); err != nil {
		return nil, err
	}
	e := &QuadratureEncoder{pinA: pinA, pinB: pinB}
	e.lastA = MustGPIO().ReadPin(pinA)
	return e, nil
}

// Count polls for an A-channel edge since the last call and returns the
// running tally.
func (e *QuadratureEncoder) Count() int16 {
	a := MustGPIO().ReadPin(e.pinA)
	if a != e.lastA {
		b := MustGPIO().ReadPin(e.pinB)
		if a == b {
			e.count++
		} else {
			e.count--
		}
		e.lastA = a
	}
	return e.count
}

// Reset zeroes the running count, matching REG_CONTROL's
// ControlResetQuadEncoder bit.
func (e *QuadratureEncoder) Reset() {
	e.count = 0
}
