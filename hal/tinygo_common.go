//go:build tinygo && baremetal

package hal

import (
	"machine"
	"sync"
	"time"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type machineLED struct {
	pin machine.Pin
}

func (l *machineLED) High()   { l.pin.High() }
func (l *machineLED) Low()    { l.pin.Low() }
func (l *machineLED) Toggle() { l.pin.Set(!l.pin.Get()) }

// uartSerial drains the UART receive ring (filled by the UART interrupt) and hands
// each byte to the receive callback.
type uartSerial struct {
	uart *machine.UART

	mu     sync.Mutex
	fn     func(b byte)
	closed bool
}

func newUARTSerial(uart *machine.UART) *uartSerial {
	s := &uartSerial{uart: uart}
	go s.rxLoop()
	return s
}

func (s *uartSerial) WriteByte(b byte) error {
	if s.uart == nil {
		return ErrNotImplemented
	}
	return s.uart.WriteByte(b)
}

func (s *uartSerial) Receive(fn func(b byte)) {
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
}

func (s *uartSerial) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *uartSerial) rxLoop() {
	for {
		s.mu.Lock()
		fn, closed := s.fn, s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		if s.uart.Buffered() == 0 {
			time.Sleep(1 * time.Millisecond)
			continue
		}
		b, err := s.uart.ReadByte()
		if err != nil || fn == nil {
			continue
		}
		fn(b)
	}
}
