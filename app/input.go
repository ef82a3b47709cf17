package app

import (
	"time"

	"github.com/jonboulle/clockwork"

	"fortuna/hal"
	"fortuna/kernel"
)

// inputPoller turns raw front panel state into kernel events.
//
// Encoder counts are accumulated and released at most once per debounce
// window. A count that cannot be posted stays pending. The middle button
// produces one press per released to pressed edge.
type inputPoller struct {
	in       hal.Input
	k        *kernel.System
	clock    clockwork.Clock
	debounce time.Duration

	pending  int
	released time.Time
	held     bool
}

func newInputPoller(in hal.Input, k *kernel.System, clock clockwork.Clock, debounce time.Duration) *inputPoller {
	return &inputPoller{in: in, k: k, clock: clock, debounce: debounce}
}

func (p *inputPoller) poll() {
	if p.in == nil {
		return
	}

	p.pending += p.in.EncoderDelta()
	if p.pending != 0 {
		now := p.clock.Now()
		if p.released.IsZero() || now.Sub(p.released) >= p.debounce {
			if p.k.PostEncoder(p.pending) {
				p.pending = 0
				p.released = now
			}
		}
	}

	pressed := p.in.MiddlePressed()
	if pressed && !p.held {
		p.k.PostPress()
	}
	p.held = pressed
}
