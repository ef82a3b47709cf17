// Package surfacetest provides a recording surface.Surface for tests.
package surfacetest

import (
	"fmt"
	"image/color"
	"sync"

	"fortuna/home/surface"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  string // "clear", "text", "fill" or "flush"
	Text  string
	X, Y  int16
	Rect  surface.Rect
	Color color.RGBA
}

func (o Op) String() string {
	switch o.Kind {
	case "text":
		return fmt.Sprintf("text(%q,%d,%d)", o.Text, o.X, o.Y)
	case "fill":
		return fmt.Sprintf("fill(%+v,%v)", o.Rect, o.Color)
	default:
		return o.Kind
	}
}

// Recorder records every call and tracks the text currently on screen.
type Recorder struct {
	mu     sync.Mutex
	ops    []Op
	screen map[[2]int16]string
}

var _ surface.Surface = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{screen: make(map[[2]int16]string)}
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: "clear"})
	r.screen = make(map[[2]int16]string)
}

func (r *Recorder) DrawText(text string, x, y int16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: "text", Text: text, X: x, Y: y})
	r.screen[[2]int16{x, y}] = text
}

func (r *Recorder) FillRect(rect surface.Rect, c color.RGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: "fill", Rect: rect, Color: c})
}

func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: "flush"})
	return nil
}

// Ops returns the calls recorded since the last Reset.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Fills returns only the recorded FillRect calls.
func (r *Recorder) Fills() []Op {
	var out []Op
	for _, op := range r.Ops() {
		if op.Kind == "fill" {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps the screen contents.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

// TextAt returns the text drawn at (x, y) since the last clear.
func (r *Recorder) TextAt(x, y int16) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.screen[[2]int16{x, y}]
	return s, ok
}

// Texts returns every string on screen since the last clear.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.screen))
	for _, s := range r.screen {
		out = append(out, s)
	}
	return out
}
