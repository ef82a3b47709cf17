package hal

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// DebugLogger is implemented by loggers that keep routine chatter apart from
// the lines an operator cares about.
type DebugLogger interface {
	DebugLineString(s string)
}

// LogDebug writes s as a debug line. Loggers without a debug level get it as
// a normal line.
func LogDebug(l Logger, s string) {
	if l == nil {
		return
	}
	if d, ok := l.(DebugLogger); ok {
		d.DebugLineString(s)
		return
	}
	l.WriteLineString(s)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
	Toggle()
}

// ErrNotImplemented is returned by devices a target does not have.
var ErrNotImplemented = errors.New("not implemented")

// Canvas is the LCD drawing surface: a TinyGo Displayer that can also fill rectangles.
//
// The ILI9341 driver satisfies it directly; host builds use an RGB565 framebuffer.
type Canvas interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Input is the already-decoded front panel: a rotary encoder and its middle button.
type Input interface {
	// EncoderDelta returns the encoder steps counted since the previous call.
	EncoderDelta() int
	// MiddlePressed reports whether the middle button is currently held.
	MiddlePressed() bool
}

// Serial is the byte link to the remote actuator controller.
type Serial interface {
	WriteByte(b byte) error
	// Receive installs the callback invoked for every inbound byte.
	//
	// fn runs in interrupt or goroutine context and must return promptly.
	Receive(fn func(b byte))
	Close() error
}

// HAL provides the only contact point between the panel and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Canvas
	Input() Input
	Serial() Serial
}
