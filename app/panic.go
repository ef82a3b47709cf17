package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"fortuna/hal"
	"fortuna/home/fonts/font6x8"
	"fortuna/kernel"

	"tinygo.org/x/tinyfont"
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		drawPanic(disp, lines)
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"FortunaHome Panic:",
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func drawPanic(disp hal.Canvas, lines []string) {
	maxW, maxH := disp.Size()
	_ = disp.FillRectangle(0, 0, maxW, maxH, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	cols := maxW / font6x8.Width
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+font6x8.Height > maxH {
				_ = disp.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(disp, 0, y, chunk, fg)
			y += font6x8.Height
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = disp.Display()
}

func drawTextLine(disp hal.Canvas, x0, y0 int16, s string, fg color.RGBA) {
	drawX := x0
	for _, r := range s {
		tinyfont.DrawChar(disp, font6x8.Font, drawX, y0+font6x8.Baseline, r, fg)
		drawX += font6x8.Width
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
