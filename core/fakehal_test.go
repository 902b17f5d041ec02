package core

// fakeGPIODriver is an in-memory GPIODriver for tests: it tracks pin
// levels and configuration without touching real hardware.
type fakeGPIODriver struct {
	levels map[GPIOPin]bool
}

func newFakeGPIODriver() *fakeGPIODriver {
	return &fakeGPIODriver{levels: make(map[GPIOPin]bool)}
}

func (f *fakeGPIODriver) ConfigureOutput(pin GPIOPin) error         { return nil }
func (f *fakeGPIODriver) ConfigureInputPullUp(pin GPIOPin) error    { return nil }
func (f *fakeGPIODriver) ConfigureInputPullDown(pin GPIOPin) error  { return nil }
func (f *fakeGPIODriver) SetPin(pin GPIOPin, value bool) error {
	f.levels[pin] = value
	return nil
}
func (f *fakeGPIODriver) GetPin(pin GPIOPin) (bool, error) { return f.levels[pin], nil }
func (f *fakeGPIODriver) ReadPin(pin GPIOPin) bool         { return f.levels[pin] }

func init() {
	SetGPIODriver(newFakeGPIODriver())
}

// fakeSwitch is a SwitchReader whose state tests can flip directly.
type fakeSwitch struct {
	active bool
}

func (s *fakeSwitch) Read() bool { return s.active }

// fakeStepperBackend records Step/SetDirection calls without driving
// any real pulse hardware.
type fakeStepperBackend struct {
	steps      int
	lastDir    bool
	dirHistory []bool
}

func (f *fakeStepperBackend) Init(stepPin, dirPin uint8, invertStep, invertDir bool) error {
	return nil
}
func (f *fakeStepperBackend) Step() { f.steps++ }
func (f *fakeStepperBackend) SetDirection(dir bool) {
	f.lastDir = dir
	f.dirHistory = append(f.dirHistory, dir)
}
func (f *fakeStepperBackend) Stop()            {}
func (f *fakeStepperBackend) GetName() string  { return "fake" }

// fakeEventSink records NotifyU8/NotifyI16 calls for assertions.
type fakeEventSink struct {
	u8  map[uint16]uint8
	i16 map[uint16]int16
}

func newFakeEventSink() *fakeEventSink {
	return &fakeEventSink{u8: make(map[uint16]uint8), i16: make(map[uint16]int16)}
}

func (s *fakeEventSink) NotifyU8(addr uint16, value uint8)  { s.u8[addr] = value }
func (s *fakeEventSink) NotifyI16(addr uint16, value int16) { s.i16[addr] = value }

// resetSchedulerState clears the package-level timer/shutdown globals
// between tests, since ScheduleTimer/TryShutdown are not scoped to a
// single Controller.
func resetSchedulerState() {
	timerList = nil
	currentTime = 0
	timerPastErrors = 0
	shutdownHandler = nil
	shutdownReason = ""
	isShutdown = false
	systemTicks = 0
	ClearTimingRing()
	totalPulseCount = 0
}
