// Package surface is the panel's drawing seam: text, filled rectangles and a
// full-screen clear on a 320x240 LCD.
package surface

import (
	"image/color"

	"fortuna/hal"
	"fortuna/home/fonts/font6x8"

	"tinygo.org/x/tinyfont"
)

// Panel colors. The highlight is the red bar under the selected entry.
var (
	Background = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Foreground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Highlight  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Rect is an inclusive pixel rectangle.
type Rect struct {
	Top, Bottom, Left, Right int16
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool { return r.Right < r.Left || r.Bottom < r.Top }

// Width is the column count of r, both edges included.
func (r Rect) Width() int16 {
	if r.Empty() {
		return 0
	}
	return r.Right - r.Left + 1
}

// Height is the row count of r.
func (r Rect) Height() int16 {
	if r.Empty() {
		return 0
	}
	return r.Bottom - r.Top + 1
}

// Surface is what the panel logic draws on.
type Surface interface {
	Clear()
	// DrawText renders text with its first glyph cell's top-left corner at (x, y).
	DrawText(text string, x, y int16)
	FillRect(r Rect, c color.RGBA)
	Flush() error
}

// Screen renders onto a hal.Canvas with the 6x8 panel font.
type Screen struct {
	canvas hal.Canvas
	font   tinyfont.Fonter
	err    error
}

var _ Surface = (*Screen)(nil)

// NewScreen returns a Screen drawing on canvas.
func NewScreen(canvas hal.Canvas) *Screen {
	return &Screen{canvas: canvas, font: font6x8.Font}
}

// Clear fills the whole canvas with Background.
func (s *Screen) Clear() {
	w, h := s.canvas.Size()
	s.fill(0, 0, w, h, Background)
}

// DrawText paints the text cells in Background, then the glyphs in Foreground.
func (s *Screen) DrawText(text string, x, y int16) {
	if text == "" {
		return
	}
	s.fill(x, y, int16(len(text))*font6x8.Width, font6x8.Height, Background)
	tinyfont.WriteLine(s.canvas, s.font, x, y+font6x8.Baseline, text, Foreground)
}

// FillRect fills the inclusive rectangle r. An empty r draws nothing.
func (s *Screen) FillRect(r Rect, c color.RGBA) {
	if r.Empty() {
		return
	}
	s.fill(r.Left, r.Top, r.Width(), r.Height(), c)
}

// Flush pushes the frame to the panel and reports the first drawing error
// since the previous flush.
func (s *Screen) Flush() error {
	err := s.err
	s.err = nil
	if derr := s.canvas.Display(); err == nil {
		err = derr
	}
	return err
}

func (s *Screen) fill(x, y, w, h int16, c color.RGBA) {
	if err := s.canvas.FillRectangle(x, y, w, h, c); err != nil && s.err == nil {
		s.err = err
	}
}
