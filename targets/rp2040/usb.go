//go:build rp2040 || rp2350

package main

import "machine"

// InitUSB configures USB CDC-ACM serial, the host-facing transport for
// the register-bus frames.
func InitUSB() {
	_ = machine.Serial.Configure(machine.UARTConfig{})
}

// USBAvailable returns the number of bytes buffered for reading.
func USBAvailable() int {
	return machine.Serial.Buffered()
}

// USBRead reads a single byte.
func USBRead() (byte, error) {
	return machine.Serial.ReadByte()
}

// USBWriteBytes writes data, returning the number of bytes written.
func USBWriteBytes(data []byte) (int, error) {
	return machine.Serial.Write(data)
}
