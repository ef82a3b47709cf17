//go:build !tinygo

package hal

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Host LCD geometry matches the 320x240 ILI9341 panel on the board.
const (
	hostWidth  = 320
	hostHeight = 240
)

// SerialConfig selects the actuator link used on the host.
//
// An empty Port runs the in-process loopback actuator instead of a real port.
type SerialConfig struct {
	Port     string
	BaudRate int
	AckDelay time.Duration
}

// DefaultSerialConfig returns the loopback link with a short acknowledgment delay.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{BaudRate: 9600, AckDelay: 750 * time.Millisecond}
}

type hostHAL struct {
	logger *hostLogger
	led    LED
	fb     *framebuffer
	in     *hostInput
	serial Serial
}

// New returns a host HAL implementation with the loopback actuator.
func New() HAL {
	h, err := NewWithConfig(DefaultSerialConfig())
	if err != nil {
		// The loopback link cannot fail to open.
		panic(err)
	}
	return h
}

// NewWithConfig returns a host HAL whose actuator link is described by cfg.
func NewWithConfig(cfg SerialConfig) (HAL, error) {
	return newHostHAL(cfg)
}

func newHostHAL(cfg SerialConfig) (*hostHAL, error) {
	logger := &hostLogger{zl: log.Logger}

	led, err := NewPinLED(newVirtualPin("LED", GPIOCapOutput), logger)
	if err != nil {
		return nil, err
	}

	button := newVirtualPin("MIDDLE", GPIOCapInput|GPIOCapPullUp)
	if err := button.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		return nil, err
	}

	var serial Serial
	if cfg.Port == "" {
		serial = NewLoopbackSerial(nil, cfg.AckDelay)
	} else {
		ps, err := openPortSerial(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("host: %w", err)
		}
		serial = ps
	}

	return &hostHAL{
		logger: logger,
		led:    led,
		fb:     newFramebuffer(hostWidth, hostHeight),
		in:     &hostInput{button: button},
		serial: serial,
	}, nil
}

func (h *hostHAL) Logger() Logger  { return h.logger }
func (h *hostHAL) LED() LED        { return h.led }
func (h *hostHAL) Display() Canvas { return h.fb }
func (h *hostHAL) Input() Input    { return h.in }
func (h *hostHAL) Serial() Serial  { return h.serial }

// hostLogger writes device lines at Info and chatter at Debug.
type hostLogger struct {
	zl zerolog.Logger
}

func (l *hostLogger) DebugLineString(s string) {
	l.zl.Debug().Msg(s)
}

func (l *hostLogger) WriteLineString(s string) {
	l.zl.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.zl.Info().Msg(string(b))
}

// hostInput is fed by the keyboard (window mode) or the input script (headless mode).
type hostInput struct {
	steps  atomic.Int64
	button *virtualPin
}

func (in *hostInput) EncoderDelta() int {
	return int(in.steps.Swap(0))
}

// MiddlePressed reads the active-low button pin.
func (in *hostInput) MiddlePressed() bool {
	level, err := in.button.Read()
	return err == nil && !level
}

func (in *hostInput) turn(steps int) {
	in.steps.Add(int64(steps))
}

func (in *hostInput) press(down bool) {
	in.button.drive(!down)
}
