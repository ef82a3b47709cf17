//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Inputs is a script of front panel actions run one per tick, for example
	// "+2 press 1s -1 press". "+N"/"-N" turn the encoder, "press" clicks the
	// middle button, and a duration waits.
	Inputs string
	Serial SerialConfig
}

// RunHeadless runs the panel without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	script, err := parseInputScript(cfg.Inputs, d)
	if err != nil {
		return err
	}

	h, err := newHostHAL(cfg.Serial)
	if err != nil {
		return err
	}
	defer h.serial.Close()

	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			script.step(h.in)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

type scriptOp uint8

const (
	opTurn scriptOp = iota + 1
	opPress
	opWait
)

type scriptStep struct {
	op    scriptOp
	steps int
	ticks int
}

type inputScript struct {
	steps    []scriptStep
	pos      int
	waiting  int
	released bool
}

func parseInputScript(s string, tick time.Duration) (*inputScript, error) {
	script := &inputScript{released: true}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	for _, f := range fields {
		switch {
		case f == "press":
			script.steps = append(script.steps, scriptStep{op: opPress})
		case strings.HasPrefix(f, "+") || strings.HasPrefix(f, "-"):
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("inputs: bad encoder step %q", f)
			}
			script.steps = append(script.steps, scriptStep{op: opTurn, steps: n})
		default:
			d, err := time.ParseDuration(f)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("inputs: unknown action %q", f)
			}
			ticks := int(d / tick)
			if ticks < 1 {
				ticks = 1
			}
			script.steps = append(script.steps, scriptStep{op: opWait, ticks: ticks})
		}
	}
	return script, nil
}

// step performs at most one action. A press holds the button for exactly one tick.
func (s *inputScript) step(in *hostInput) {
	if !s.released {
		in.press(false)
		s.released = true
		return
	}
	if s.waiting > 0 {
		s.waiting--
		return
	}
	if s.pos >= len(s.steps) {
		return
	}
	st := s.steps[s.pos]
	s.pos++
	switch st.op {
	case opTurn:
		in.turn(st.steps)
	case opPress:
		in.press(true)
		s.released = false
	case opWait:
		s.waiting = st.ticks - 1
	}
}

func (s *inputScript) done() bool {
	return s.pos >= len(s.steps) && s.waiting == 0 && s.released
}
