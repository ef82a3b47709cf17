//go:build tinygo && !baremetal

package hal

import "time"

// tinyGoHostHAL backs `tinygo run` on linux/wasm, where there is no MCU pin
// mapping. The actuator is the in-process loopback and the front panel never moves.
type tinyGoHostHAL struct {
	logger printLogger
	led    LED
	fb     *framebuffer
	serial *LoopbackSerial
}

// New returns a HAL for TinyGo builds that have no board: an in-memory
// display, an idle front panel and a loopback actuator.
func New() HAL {
	var l printLogger
	led, err := NewPinLED(newVirtualPin("LED", GPIOCapOutput), l)
	if err != nil {
		panic(err)
	}
	return &tinyGoHostHAL{
		logger: l,
		led:    led,
		fb:     newFramebuffer(320, 240),
		serial: NewLoopbackSerial(nil, 750*time.Millisecond),
	}
}

func (h *tinyGoHostHAL) Logger() Logger  { return h.logger }
func (h *tinyGoHostHAL) LED() LED        { return h.led }
func (h *tinyGoHostHAL) Display() Canvas { return h.fb }
func (h *tinyGoHostHAL) Input() Input    { return idleInput{} }
func (h *tinyGoHostHAL) Serial() Serial  { return h.serial }

type idleInput struct{}

func (idleInput) EncoderDelta() int   { return 0 }
func (idleInput) MiddlePressed() bool { return false }

type printLogger struct{}

func (printLogger) WriteLineString(s string) { println(s) }
func (printLogger) WriteLineBytes(b []byte)  { println(string(b)) }
