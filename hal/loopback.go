package hal

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var errSerialClosed = errors.New("serial: closed")

// LoopbackSerial stands in for the remote actuator: every written byte is echoed
// back as its acknowledgment after a fixed delay.
type LoopbackSerial struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	delay  time.Duration
	fn     func(b byte)
	sent   []byte
	closed bool
}

// NewLoopbackSerial returns an echoing link. A nil clock uses the real clock.
func NewLoopbackSerial(clock clockwork.Clock, ackDelay time.Duration) *LoopbackSerial {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ackDelay < 0 {
		ackDelay = 0
	}
	return &LoopbackSerial{clock: clock, delay: ackDelay}
}

// WriteByte records b and echoes it back after the configured delay.
func (s *LoopbackSerial) WriteByte(b byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errSerialClosed
	}
	s.sent = append(s.sent, b)
	s.mu.Unlock()

	s.clock.AfterFunc(s.delay, func() { s.Inject(b) })
	return nil
}

// Receive installs the callback for echoed and injected bytes.
func (s *LoopbackSerial) Receive(fn func(b byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
}

// Inject delivers b to the receive callback as if it arrived on the wire.
func (s *LoopbackSerial) Inject(b byte) {
	s.mu.Lock()
	fn := s.fn
	closed := s.closed
	s.mu.Unlock()
	if closed || fn == nil {
		return
	}
	fn(b)
}

// Sent returns a copy of every byte written so far.
func (s *LoopbackSerial) Sent() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.sent))
	copy(out, s.sent)
	return out
}

// Close stops further writes and deliveries.
func (s *LoopbackSerial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
