package hal

import (
	"fmt"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

type virtualPin struct {
	mu    sync.Mutex
	name  string
	caps  GPIOCaps
	mode  GPIOMode
	pull  GPIOPull
	level bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{
		name: name,
		caps: caps,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
	}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

// Configure sets the pin direction and pull. An input with a pull resistor
// idles at the pulled level until something drives it.
func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var need GPIOCaps
	switch mode {
	case GPIOModeInput:
		need = GPIOCapInput
	case GPIOModeOutput:
		need = GPIOCapOutput
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode %d", p.name, mode)
	}
	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		need |= GPIOCapPullUp
	case GPIOPullDown:
		need |= GPIOCapPullDown
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull %d", p.name, pull)
	}
	if missing := need &^ p.caps; missing != 0 {
		return fmt.Errorf("gpio: pin %s: unsupported caps %04b", p.name, missing)
	}

	p.mode = mode
	p.pull = pull
	if mode == GPIOModeInput && pull != GPIOPullNone {
		p.level = pull == GPIOPullUp
	}
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeInput && p.mode != GPIOModeOutput {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	return p.level, nil
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

// drive sets the level seen on an input pin, standing in for the outside world.
func (p *virtualPin) drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

type pinLED struct {
	mu    sync.Mutex
	pin   GPIOPin
	log   Logger
	level bool
}

// NewPinLED adapts an output-capable pin to the LED interface.
//
// If log is non-nil every level change is logged at debug level.
func NewPinLED(pin GPIOPin, log Logger) (LED, error) {
	if pin == nil {
		return nil, fmt.Errorf("gpio: led: nil pin")
	}
	if err := pin.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		return nil, fmt.Errorf("gpio: led: %w", err)
	}
	return &pinLED{pin: pin, log: log}, nil
}

func (l *pinLED) High() { l.set(true) }
func (l *pinLED) Low()  { l.set(false) }

func (l *pinLED) Toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLocked(!l.level)
}

func (l *pinLED) set(level bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLocked(level)
}

func (l *pinLED) setLocked(level bool) {
	if err := l.pin.Write(level); err != nil {
		if l.log != nil {
			l.log.WriteLineString(err.Error())
		}
		return
	}
	l.level = level
	if level {
		LogDebug(l.log, "led: HIGH")
	} else {
		LogDebug(l.log, "led: LOW")
	}
}
