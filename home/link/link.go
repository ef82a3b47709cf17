// Package link is the one-byte request/response channel to the remote
// actuator controller.
//
// There is no framing, checksum or timeout. A lost acknowledgment is never
// noticed and an unknown one is ignored.
package link

import (
	"errors"
	"fmt"
	"strconv"

	"fortuna/hal"
	"fortuna/home/surface"
)

// ErrUnknownCommand is returned by Send for a byte outside the route table.
var ErrUnknownCommand = errors.New("link: unknown command")

// Status line position shared by the "Request Received" and
// "Request Completed" views.
const (
	StatusX = 100
	StatusY = 200
)

// Hider is told when the completion view takes over the screen.
type Hider interface {
	Hide()
}

// Channel sends commands on a hal.Serial and renders acknowledgments.
type Channel struct {
	serial hal.Serial
	surf   surface.Surface
	view   Hider
	log    hal.Logger
}

// NewChannel returns a channel. view and log may be nil.
func NewChannel(serial hal.Serial, surf surface.Surface, view Hider, log hal.Logger) *Channel {
	return &Channel{serial: serial, surf: surf, view: view, log: log}
}

// Send writes a single command byte.
func (c *Channel) Send(cmd byte) error {
	if !isCommand(cmd) {
		return fmt.Errorf("%w: 0x%02x", ErrUnknownCommand, cmd)
	}
	if err := c.serial.WriteByte(cmd); err != nil {
		return fmt.Errorf("link: send %q: %w", cmd, err)
	}
	return nil
}

// OnByteReceived shows the completion message for a known acknowledgment and
// reports whether b was one.
func (c *Channel) OnByteReceived(b byte) bool {
	r, ok := AckFor(b)
	if !ok {
		hal.LogDebug(c.log, "link: ignored byte 0x"+strconv.FormatUint(uint64(b), 16))
		return false
	}
	if c.view != nil {
		c.view.Hide()
	}
	c.surf.Clear()
	c.surf.DrawText(CompletedText(r.Selection), StatusX, StatusY)
	if c.log != nil {
		c.log.WriteLineString("link: request " + strconv.Itoa(r.Selection) + " completed")
	}
	return true
}

// CompletedText is the status line shown for an acknowledged selection.
func CompletedText(sel int) string {
	return "Request Completed: " + strconv.Itoa(sel)
}
