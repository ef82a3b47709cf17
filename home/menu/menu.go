// Package menu is the main menu and its selection state machine.
package menu

import (
	"fortuna/home/surface"
	"fortuna/kernel"
)

// Menu owns the highlight and the main menu view. It is driven from the main
// loop only; the selection itself lives in kernel.Shared.
type Menu struct {
	shared *kernel.Shared
	surf   surface.Surface

	// touched is false until the first encoder input. No highlight is shown before that.
	touched bool
	visible bool
	// suspended is set while the commit feedback owns the screen.
	suspended bool

	painted bool
	drawn   surface.Rect
}

// New returns a menu at the power-on selection. It draws nothing until Show.
func New(shared *kernel.Shared, surf surface.Surface) *Menu {
	shared.StoreSelection(First)
	return &Menu{shared: shared, surf: surf}
}

// Selection returns the current selection.
func (m *Menu) Selection() int { return Clamp(m.shared.Selection()) }

// Visible reports whether the menu currently owns the screen.
func (m *Menu) Visible() bool { return m.visible }

// OnEncoderEdge moves the selection by delta, clamped to [First, Last].
func (m *Menu) OnEncoderEdge(delta int) {
	m.SetSelection(m.Selection() + delta)
}

// SetSelection moves the selection to abs, clamped to [First, Last].
//
// While suspended only the state changes; the highlight is painted when the
// menu is shown again. If another view owns the screen the menu is restored
// first. Once the menu is back on screen every edge repaints, even while the
// commit guard is still held.
func (m *Menu) SetSelection(abs int) {
	sel := Clamp(abs)
	prev := m.Selection()
	first := !m.touched
	m.touched = true
	m.shared.StoreSelection(sel)

	if m.suspended {
		return
	}
	if !m.visible {
		m.Show()
		return
	}
	if sel == prev && m.painted && !first {
		return
	}
	m.EraseHighlight()
	m.paint(sel)
}

// Show clears the screen and draws the title, every label and, once there
// has been input, the highlight.
func (m *Menu) Show() {
	m.surf.Clear()
	m.surf.DrawText(Title, TitleX, TitleY)
	for _, e := range entries {
		m.surf.DrawText(e.Label, LabelX, e.ScreenY)
	}
	m.visible = true
	m.suspended = false
	m.painted = false
	if m.touched {
		m.paint(m.Selection())
	}
}

// Hide records that another view now owns the screen.
func (m *Menu) Hide() {
	m.visible = false
	m.painted = false
}

// Suspend hands the screen to the commit feedback. Until Show, edges only
// move the selection.
func (m *Menu) Suspend() {
	m.Hide()
	m.suspended = true
}

// EraseHighlight paints the current highlight in the background color.
func (m *Menu) EraseHighlight() {
	if !m.painted {
		return
	}
	m.surf.FillRect(m.drawn, surface.Background)
	m.painted = false
}

func (m *Menu) paint(sel int) {
	e := EntryFor(sel)
	r := HighlightFor(sel)
	m.surf.FillRect(r, surface.Highlight)
	m.surf.DrawText(e.Label, LabelX, e.ScreenY)
	m.drawn = r
	m.painted = true
}
