package app

import (
	"fmt"
	"strconv"

	"github.com/jonboulle/clockwork"

	"fortuna/hal"
	"fortuna/home/dispatch"
	"fortuna/home/link"
	"fortuna/home/menu"
	"fortuna/home/surface"
	"fortuna/internal/buildinfo"
	"fortuna/kernel"
)

// System is the wired panel: event plumbing, menu, dispatch and link.
type System struct {
	k     *kernel.System
	log   hal.Logger
	clock clockwork.Clock

	screen surface.Surface
	menu   *menu.Menu
	link   *link.Channel
	ctl    *dispatch.Controller
	input  *inputPoller
}

// New initializes the panel with the default config and returns its step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// NewWithConfig initializes the panel and returns its step function. The
// returned step recovers panics and reports them on the panic screen.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	installPanicHandler(h)
	return kernel.Protect(s.Step)
}

// Run starts the panel and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

// RunWithConfig starts the panel with cfg and steps it once per kernel tick.
// It never returns. After a panic the panic screen stays up and the loop halts.
func RunWithConfig(h hal.HAL, cfg Config) {
	s := newSystem(h, cfg)
	installPanicHandler(h)
	step := kernel.Protect(s.Step)

	s.k.StartTick()
	var tick uint64
	for {
		if err := step(); err != nil {
			if kernel.InPanicMode() {
				select {}
			}
			if l := h.Logger(); l != nil {
				l.WriteLineString("app: " + err.Error())
			}
		}
		tick = s.k.WaitTick(tick)
	}
}

func newSystem(h hal.HAL, cfg Config) *System {
	return buildSystem(h, cfg, surface.NewScreen(h.Display()))
}

func buildSystem(h hal.HAL, cfg Config, screen surface.Surface) *System {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	k := kernel.NewSystem()
	m := menu.New(k.Shared(), screen)
	ch := link.NewChannel(h.Serial(), screen, m, h.Logger())

	s := &System{
		k:      k,
		log:    h.Logger(),
		clock:  clock,
		screen: screen,
		menu:   m,
		link:   ch,
		ctl: dispatch.New(cfg.Dispatch, dispatch.Deps{
			Clock:    clock,
			Shared:   k.Shared(),
			View:     m,
			Surface:  screen,
			LED:      h.LED(),
			Sender:   ch,
			Receiver: ch,
			Logger:   h.Logger(),
		}),
		input: newInputPoller(h.Input(), k, clock, cfg.Debounce),
	}

	h.Serial().Receive(func(b byte) { k.PostByte(b) })

	s.logLine("FortunaHome " + buildinfo.Line())
	m.Show()
	if err := screen.Flush(); err != nil {
		s.logLine("app: " + err.Error())
	}
	return s
}

// Step runs one main loop iteration: poll the front panel, handle every
// queued event, advance the dispatch cycle and flush the screen.
func (s *System) Step() error {
	s.input.poll()
	for {
		ev, ok := s.k.Next()
		if !ok {
			break
		}
		s.handle(ev)
	}
	s.ctl.Poll()

	if n := s.k.TakeDropped(); n > 0 {
		s.logLine("app: dropped " + strconv.FormatUint(uint64(n), 10) + " events")
	}
	if err := s.screen.Flush(); err != nil {
		return fmt.Errorf("app: flush: %w", err)
	}
	return nil
}

func (s *System) handle(ev kernel.Event) {
	switch ev.Kind {
	case kernel.EventEncoder:
		s.menu.OnEncoderEdge(int(ev.Value))
	case kernel.EventPress:
		s.ctl.OnCommitEvent()
	case kernel.EventByte:
		if b := byte(ev.Value); !s.ctl.DeferAck(b) {
			s.link.OnByteReceived(b)
		}
	}
}

func (s *System) logLine(line string) {
	if s.log != nil {
		s.log.WriteLineString(line)
	}
}
