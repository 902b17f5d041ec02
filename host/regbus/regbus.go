// Package regbus is the host side of the FastStepper register bus: it
// frames requests with core.Encode/core.Decode, writes them to a
// serial.Port, and matches responses by polling the same port for a
// decodable frame. The wire format itself is owned by the firmware
// (core/frame.go); this package only drives it from a host process.
package regbus

import (
	"fmt"
	"time"

	"github.com/harp-tech/device.faststepper/core"
	"github.com/harp-tech/device.faststepper/host/serial"
)

// Bus talks the register protocol over an open serial.Port.
type Bus struct {
	port serial.Port
	rx   []byte
}

// Open connects to device at the given path using serial's default
// USB CDC-ACM configuration.
func Open(device string) (*Bus, error) {
	port, err := serial.Open(serial.DefaultConfig(device))
	if err != nil {
		return nil, err
	}
	return &Bus{port: port}, nil
}

// Close releases the underlying port.
func (b *Bus) Close() error {
	return b.port.Close()
}

// ReadRegister issues an OpRead for addr/typ and returns the decoded
// payload frame, or an error if the device replied OpError or the
// round trip timed out.
func (b *Bus) ReadRegister(addr uint16, typ uint8) (core.Frame, error) {
	return b.roundTrip(core.Frame{Op: core.OpRead, Addr: addr, Type: typ})
}

// WriteRegister issues an OpWrite with payload and returns the
// device's acknowledgement frame.
func (b *Bus) WriteRegister(addr uint16, typ uint8, payload []byte) (core.Frame, error) {
	return b.roundTrip(core.Frame{Op: core.OpWrite, Addr: addr, Type: typ, Payload: payload})
}

// PollEvent waits up to timeout for an unsolicited OpEvent frame,
// e.g. a MOVE_TO_EVENTS or HOME_STEPS_EVENTS notification. It returns
// ok=false on timeout without treating it as an error.
func (b *Bus) PollEvent(timeout time.Duration) (f core.Frame, ok bool, err error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		f, n, derr := core.Decode(b.rx)
		if derr == nil {
			b.rx = b.rx[n:]
			if f.Op == core.OpEvent {
				return f, true, nil
			}
			continue
		}
		if err := b.fill(); err != nil {
			return core.Frame{}, false, err
		}
	}
	return core.Frame{}, false, nil
}

func (b *Bus) roundTrip(req core.Frame) (core.Frame, error) {
	if _, err := b.port.Write(core.Encode(req)); err != nil {
		return core.Frame{}, err
	}

	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		f, n, derr := core.Decode(b.rx)
		if derr == nil {
			b.rx = b.rx[n:]
			switch f.Op {
			case core.OpReadAck, core.OpWriteAck:
				return f, nil
			case core.OpError:
				return core.Frame{}, fmt.Errorf("regbus: device rejected write to register %d", f.Addr)
			default:
				continue // unsolicited event frame interleaved with the response
			}
		}
		if err := b.fill(); err != nil {
			return core.Frame{}, err
		}
	}
	return core.Frame{}, fmt.Errorf("regbus: timed out waiting for reply from register %d", req.Addr)
}

// fill reads whatever bytes are currently available into rx, blocking
// briefly if none are ready yet.
func (b *Bus) fill() error {
	buf := make([]byte, 256)
	n, err := b.port.Read(buf)
	if n > 0 {
		b.rx = append(b.rx, buf[:n]...)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}
