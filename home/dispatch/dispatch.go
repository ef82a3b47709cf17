// Package dispatch turns a committed menu selection into one command byte and
// runs the feedback around it: LED blink, "Request Received", menu restore and
// the settle delay before the next commit is accepted.
package dispatch

import (
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"fortuna/hal"
	"fortuna/home/link"
	"fortuna/home/surface"
	"fortuna/kernel"
)

// ReceivedText is shown while a commit is being dispatched.
const ReceivedText = "Request Received"

// Config holds the commit feedback timings.
type Config struct {
	BlinkCount int
	BlinkOn    time.Duration
	BlinkOff   time.Duration
	// ReceivedHold is measured from the moment the commit is accepted.
	ReceivedHold time.Duration
	Settle       time.Duration
}

// DefaultConfig returns the panel's stock timings.
func DefaultConfig() Config {
	return Config{
		BlinkCount:   1,
		BlinkOn:      50 * time.Millisecond,
		BlinkOff:     50 * time.Millisecond,
		ReceivedHold: 500 * time.Millisecond,
		Settle:       200 * time.Millisecond,
	}
}

// State is the externally visible controller state.
type State uint8

const (
	Idle State = iota
	AwaitingDispatch
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingDispatch:
		return "awaiting-dispatch"
	default:
		return "unknown"
	}
}

// Sender writes a command byte to the actuator.
type Sender interface {
	Send(cmd byte) error
}

// Receiver renders an acknowledgment byte.
type Receiver interface {
	OnByteReceived(b byte) bool
}

// View is the menu as seen by the controller.
type View interface {
	Selection() int
	EraseHighlight()
	Suspend()
	Show()
}

// Deps are the collaborators of a Controller. Receiver and Logger may be nil.
type Deps struct {
	Clock    clockwork.Clock
	Shared   *kernel.Shared
	View     View
	Surface  surface.Surface
	LED      hal.LED
	Sender   Sender
	Receiver Receiver
	Logger   hal.Logger
}

type phase uint8

const (
	phaseIdle phase = iota
	phaseBlinkOn
	phaseBlinkOff
	phaseHold
	phaseSettle
)

// Controller is the commit state machine. It is not re-entrant and must only
// be used from the main loop.
type Controller struct {
	cfg Config
	d   Deps

	phase    phase
	cmd      byte
	blinks   int
	accepted time.Time
	deadline time.Time

	ack        byte
	ackPending bool
}

// New returns an idle controller. A nil Clock means the real clock.
func New(cfg Config, d Deps) *Controller {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if cfg.BlinkCount < 0 {
		cfg.BlinkCount = 0
	}
	return &Controller{cfg: cfg, d: d}
}

// State reports whether a commit cycle is running.
func (c *Controller) State() State {
	if c.phase == phaseIdle {
		return Idle
	}
	return AwaitingDispatch
}

// OnCommitEvent starts a commit cycle for the current selection. It returns
// false, doing nothing, while a previous cycle still holds the guard.
func (c *Controller) OnCommitEvent() bool {
	if !c.d.Shared.TryAcquireGuard() {
		hal.LogDebug(c.d.Logger, "dispatch: commit ignored, busy")
		return false
	}

	sel := c.d.View.Selection()
	cmd, ok := link.CommandFor(sel)
	if !ok {
		c.d.Shared.ReleaseGuard()
		c.logLine("dispatch: no route for selection " + strconv.Itoa(sel))
		return false
	}
	c.cmd = cmd
	c.logLine("dispatch: accepted selection " + strconv.Itoa(sel))

	c.ackPending = false
	c.d.View.EraseHighlight()
	c.d.View.Suspend()
	c.d.Surface.Clear()
	c.d.Surface.DrawText(ReceivedText, link.StatusX, link.StatusY)

	now := c.d.Clock.Now()
	c.accepted = now
	c.blinks = 0
	if c.cfg.BlinkCount == 0 {
		c.deadline = now
		c.phase = phaseBlinkOff
		return true
	}
	c.d.LED.High()
	c.phase = phaseBlinkOn
	c.deadline = now.Add(c.cfg.BlinkOn)
	return true
}

// Poll advances the cycle through every phase whose deadline has passed.
func (c *Controller) Poll() {
	for c.phase != phaseIdle {
		if c.d.Clock.Now().Before(c.deadline) {
			return
		}
		switch c.phase {
		case phaseBlinkOn:
			c.d.LED.Low()
			c.blinks++
			c.phase = phaseBlinkOff
			c.deadline = c.deadline.Add(c.cfg.BlinkOff)
		case phaseBlinkOff:
			if c.blinks < c.cfg.BlinkCount {
				c.d.LED.High()
				c.phase = phaseBlinkOn
				c.deadline = c.deadline.Add(c.cfg.BlinkOn)
				continue
			}
			c.send()
			c.phase = phaseHold
			c.deadline = c.accepted.Add(c.cfg.ReceivedHold)
		case phaseHold:
			c.d.View.Show()
			c.phase = phaseSettle
			c.deadline = c.deadline.Add(c.cfg.Settle)
			if c.ackPending {
				c.ackPending = false
				if c.d.Receiver != nil {
					c.d.Receiver.OnByteReceived(c.ack)
				}
			}
		case phaseSettle:
			c.d.Shared.ReleaseGuard()
			c.phase = phaseIdle
			c.logLine("dispatch: ready")
		}
	}
}

// DeferAck holds a known acknowledgment that arrives while "Request
// Received" still owns the screen and reports whether b was held. The held
// byte goes to the Receiver right after the menu is restored.
func (c *Controller) DeferAck(b byte) bool {
	switch c.phase {
	case phaseBlinkOn, phaseBlinkOff, phaseHold:
	default:
		return false
	}
	if _, ok := link.AckFor(b); !ok {
		return false
	}
	c.ack = b
	c.ackPending = true
	hal.LogDebug(c.d.Logger, "dispatch: holding ack '"+string(rune(b))+"'")
	return true
}

func (c *Controller) send() {
	if err := c.d.Sender.Send(c.cmd); err != nil {
		c.logLine("dispatch: " + err.Error())
		return
	}
	c.logLine("dispatch: sent command '" + string(rune(c.cmd)) + "'")
}

func (c *Controller) logLine(s string) {
	if c.d.Logger != nil {
		c.d.Logger.WriteLineString(s)
	}
}
