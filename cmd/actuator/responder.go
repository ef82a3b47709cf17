package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"fortuna/home/link"
)

// responder answers command bytes read from port.
type responder struct {
	port  io.ReadWriter
	clock clockwork.Clock
	delay time.Duration
	log   zerolog.Logger

	mu      sync.Mutex
	stopped bool
}

func newResponder(port io.ReadWriter, clock clockwork.Clock, delay time.Duration, log zerolog.Logger) *responder {
	return &responder{port: port, clock: clock, delay: delay, log: log}
}

// serve reads until ctx is done or the port fails. A read returning no bytes
// is treated as a timeout. Acknowledgments that come due after serve returns
// are dropped.
func (r *responder) serve(ctx context.Context) error {
	defer func() {
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()
	}()

	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.port.Read(buf)
		for _, b := range buf[:n] {
			r.handle(b)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
	}
}

func (r *responder) handle(b byte) {
	route, ok := link.RouteFor(b)
	if !ok {
		r.log.Debug().Hex("byte", []byte{b}).Msg("ignoring unknown command")
		return
	}
	r.log.Info().Int("selection", route.Selection).Msg("command received")
	r.clock.AfterFunc(r.delay, func() { r.ack(route) })
}

func (r *responder) ack(route link.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if _, err := r.port.Write([]byte{route.Ack}); err != nil {
		r.log.Error().Err(err).Int("selection", route.Selection).Msg("failed to send ack")
		return
	}
	r.log.Info().Int("selection", route.Selection).Msg("ack sent")
}
