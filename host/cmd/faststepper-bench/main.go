// Command faststepper-bench is a bench tool for exercising a
// FastStepper device's register bus from a host machine over USB
// serial: read/write individual registers by name, issue moves, and
// watch for MOVE_TO_EVENTS/HOME_STEPS_EVENTS notifications.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/harp-tech/device.faststepper/core"
	"github.com/harp-tech/device.faststepper/host/regbus"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
)

func main() {
	flag.Parse()

	fmt.Println("FastStepper Bench")
	fmt.Println("=================")

	bus, err := regbus.Open(*device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer bus.Close()

	fmt.Printf("Connected to %s\n", *device)
	fmt.Println("Type 'help' for available commands, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := dispatch(bus, line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func dispatch(bus *regbus.Bus, line string) error {
	parts := strings.Fields(line)
	cmd := parts[0]

	switch cmd {
	case "quit", "exit", "q":
		os.Exit(0)

	case "help", "?":
		printHelp()

	case "read":
		if len(parts) != 2 {
			return fmt.Errorf("usage: read <register>")
		}
		return readRegister(bus, parts[1])

	case "write":
		if len(parts) != 3 {
			return fmt.Errorf("usage: write <register> <value>")
		}
		return writeRegister(bus, parts[1], parts[2])

	case "move":
		if len(parts) != 2 {
			return fmt.Errorf("usage: move <target>")
		}
		return writeRegister(bus, "move_to", parts[1])

	case "home":
		if len(parts) != 2 {
			return fmt.Errorf("usage: home <max-distance>")
		}
		return writeRegister(bus, "home_steps", parts[1])

	case "stop":
		return writeRegister(bus, "stop_movement", "1")

	case "enable":
		return writeRegister(bus, "control", fmt.Sprintf("%d", core.ControlEnableMotor))

	case "disable":
		return writeRegister(bus, "control", fmt.Sprintf("%d", core.ControlDisableMotor))

	case "watch":
		return watchEvents(bus)

	default:
		return fmt.Errorf("unknown command: %s (type 'help')", cmd)
	}
	return nil
}

func readRegister(bus *regbus.Bus, name string) error {
	def, ok := namedRegisters[name]
	if !ok {
		return fmt.Errorf("unknown register %q", name)
	}
	f, err := bus.ReadRegister(def.addr, def.typ)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", name, formatPayload(def.typ, f.Payload))
	return nil
}

func writeRegister(bus *regbus.Bus, name, valueStr string) error {
	def, ok := namedRegisters[name]
	if !ok {
		return fmt.Errorf("unknown register %q", name)
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", valueStr, err)
	}
	payload := encodePayload(def.typ, value)
	f, err := bus.WriteRegister(def.addr, def.typ, payload)
	if err != nil {
		return err
	}
	if f.Op == core.OpError {
		return fmt.Errorf("device rejected the write")
	}
	fmt.Println("ok")
	return nil
}

func watchEvents(bus *regbus.Bus) error {
	fmt.Println("watching for events, press Ctrl+C to stop")
	for {
		f, ok, err := bus.PollEvent(5 * time.Second)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		fmt.Printf("event: addr=%d value=%s\n", f.Addr, formatPayload(f.Type, f.Payload))
	}
}

func encodePayload(typ uint8, v int64) []byte {
	switch typ {
	case core.TypeU8:
		return core.EncodeU8(uint8(v))
	case core.TypeI16:
		return core.EncodeI16(int16(v))
	case core.TypeU16:
		return core.EncodeU16(uint16(v))
	case core.TypeI32:
		return core.EncodeI32(int32(v))
	case core.TypeU32:
		return core.EncodeU32(uint32(v))
	}
	return nil
}

func formatPayload(typ uint8, p []byte) string {
	switch typ {
	case core.TypeU8:
		return fmt.Sprintf("%d", core.DecodeU8(p))
	case core.TypeI16:
		return fmt.Sprintf("%d", core.DecodeI16(p))
	case core.TypeU16:
		return fmt.Sprintf("%d", core.DecodeU16(p))
	case core.TypeI32:
		return fmt.Sprintf("%d", core.DecodeI32(p))
	case core.TypeU32:
		return fmt.Sprintf("%d", core.DecodeU32(p))
	}
	return fmt.Sprintf("% x", p)
}

func printHelp() {
	fmt.Println(`
Available commands:
  read <register>          read a named register
  write <register> <value> write a named register
  move <target>            write move_to with target position
  home <max-distance>      write home_steps to start a homing run
  stop                     write stop_movement
  enable                   enable the motor (CONTROL bit)
  disable                  disable the motor (CONTROL bit)
  watch                    print unsolicited event frames as they arrive
  help                     show this message
  quit                     exit

Registers: control, encoder, analog_input, stop_switch, motor_brake,
moving, stop_movement, direct_velocity, move_to, move_to_events,
min_velocity, max_velocity, acceleration, deceleration,
acceleration_jerk, deceleration_jerk, home_steps, home_steps_events,
home_velocity, home_switch`)
}
