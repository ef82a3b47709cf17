package menu

import (
	"fortuna/home/fonts/font6x8"
	"fortuna/home/surface"
)

// Entry is one line of the main menu.
type Entry struct {
	Index   int
	Label   string
	ScreenY int16
}

const (
	First = 1
	Last  = 6

	Title  = "FortunaHome"
	TitleX = 120
	TitleY = 20

	LabelX = 60
)

var entries = [Last]Entry{
	{Index: 1, Label: "1. Toggle main living room lights", ScreenY: 75},
	{Index: 2, Label: "2. Toggle living room lampshade", ScreenY: 90},
	{Index: 3, Label: "3. Toggle outside light", ScreenY: 105},
	{Index: 4, Label: "4. Toggle bedroom led lights", ScreenY: 120},
	{Index: 5, Label: "5. Return total daily energy usage", ScreenY: 135},
	{Index: 6, Label: "6. Options", ScreenY: 150},
}

// Entries returns the menu table in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// EntryFor returns the entry for sel after clamping it into range.
func EntryFor(sel int) Entry {
	return entries[Clamp(sel)-First]
}

// Clamp limits sel to [First, Last]. The menu never wraps.
func Clamp(sel int) int {
	if sel < First {
		return First
	}
	if sel > Last {
		return Last
	}
	return sel
}

// HighlightFor returns the underline drawn beneath the label of sel.
func HighlightFor(sel int) surface.Rect {
	e := EntryFor(sel)
	top := e.ScreenY + font6x8.Height + 1
	return surface.Rect{
		Top:    top,
		Bottom: top + 1,
		Left:   LabelX,
		Right:  LabelX + int16(len(e.Label))*font6x8.Width,
	}
}
