package kernel

import "sync/atomic"

// EventKind identifies which producer posted an Event.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventEncoder
	EventPress
	EventByte
)

// String returns the lower-case kind name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventEncoder:
		return "encoder"
	case EventPress:
		return "press"
	case EventByte:
		return "byte"
	default:
		return "unknown"
	}
}

// Event is a fixed-size record posted by an event producer.
//
// Value carries the encoder delta for EventEncoder and the received byte for EventByte.
type Event struct {
	Kind  EventKind
	Value int32
}

// mailboxSlots must be a power of two.
const mailboxSlots = 16

type slot struct {
	// seq is relative to the slot's round: round+0 means free, round+1 means full.
	seq atomic.Uint32
	ev  Event
}

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It never allocates and never blocks, so producers may run in interrupt context.
// The zero value is an empty mailbox.
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [mailboxSlots]slot
}

// TrySend enqueues an event, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(ev Event) bool {
	for {
		pos := mb.head.Load()
		s := &mb.slots[pos%mailboxSlots]
		round := pos &^ (mailboxSlots - 1)

		diff := int32(s.seq.Load() - round)
		switch {
		case diff == 0:
			if mb.head.CompareAndSwap(pos, pos+1) {
				s.ev = ev
				s.seq.Store(round + 1)
				return true
			}
		case diff < 0:
			return false
		}
		// Another producer claimed pos first; reload.
	}
}

// TryRecv dequeues one event, returning false if empty.
//
// Only one goroutine may receive.
func (mb *Mailbox) TryRecv() (Event, bool) {
	pos := mb.tail.Load()
	s := &mb.slots[pos%mailboxSlots]
	round := pos &^ (mailboxSlots - 1)
	if s.seq.Load() != round+1 {
		return Event{}, false
	}
	ev := s.ev
	s.seq.Store(round + mailboxSlots)
	mb.tail.Store(pos + 1)
	return ev, true
}

// Len reports the number of queued events.
func (mb *Mailbox) Len() int {
	return int(mb.head.Load() - mb.tail.Load())
}
