package kernel

import (
	"runtime"
	"sync/atomic"
	"time"
)

// System is the meeting point between event producers and the main loop.
//
// Producers (encoder poller, button interrupt, serial receive loop) call the Post
// methods, which only enqueue and return. The main loop is the single consumer.
type System struct {
	mbox    Mailbox
	shared  Shared
	dropped atomic.Uint32
	ticks   atomic.Uint64
}

// NewSystem creates a kernel instance.
func NewSystem() *System {
	return &System{}
}

// StartTick starts a 1ms ticker that increments the kernel tick counter.
func (s *System) StartTick() {
	go func() {
		t := time.NewTicker(1 * time.Millisecond)
		defer t.Stop()
		for range t.C {
			s.ticks.Add(1)
		}
	}()
}

// WaitTick yields until the tick counter moves past after and returns the new value.
func (s *System) WaitTick(after uint64) uint64 {
	for {
		if now := s.ticks.Load(); now != after {
			return now
		}
		runtime.Gosched()
	}
}

// Shared returns the device state shared across contexts.
func (s *System) Shared() *Shared {
	return &s.shared
}

// PostEncoder queues a debounced encoder delta. Zero deltas are not queued.
func (s *System) PostEncoder(delta int) bool {
	if delta == 0 {
		return true
	}
	return s.post(Event{Kind: EventEncoder, Value: int32(delta)})
}

// PostPress queues a middle-button commit event.
func (s *System) PostPress() bool {
	return s.post(Event{Kind: EventPress})
}

// PostByte queues a byte received on the actuator link.
func (s *System) PostByte(b byte) bool {
	return s.post(Event{Kind: EventByte, Value: int32(b)})
}

func (s *System) post(ev Event) bool {
	if s.mbox.TrySend(ev) {
		return true
	}
	s.dropped.Add(1)
	return false
}

// Next returns the oldest queued event, if any. Only the main loop may call it.
func (s *System) Next() (Event, bool) {
	return s.mbox.TryRecv()
}

// TakeDropped returns the number of events dropped since the last call and resets it.
func (s *System) TakeDropped() uint32 {
	return s.dropped.Swap(0)
}
