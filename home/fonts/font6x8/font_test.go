package font6x8

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

type pixelSet struct {
	set map[[2]int16]bool
}

func (p *pixelSet) Size() (int16, int16) { return 320, 240 }

func (p *pixelSet) SetPixel(x, y int16, _ color.RGBA) {
	if p.set == nil {
		p.set = make(map[[2]int16]bool)
	}
	p.set[[2]int16{x, y}] = true
}

func (p *pixelSet) Display() error { return nil }

func TestGlyphInfo(t *testing.T) {
	info := Font.GetGlyph('A').Info()
	if info.XAdvance != Width || info.Width != Width || info.Height != Height {
		t.Fatalf("info = %+v", info)
	}
	if got := Font.GetYAdvance(); got != Height {
		t.Fatalf("y advance = %d, want %d", got, Height)
	}
}

func TestGlyphTableCoversASCII(t *testing.T) {
	if got, want := len(glyphData), (0x7f-0x20)*Height; got != want {
		t.Fatalf("glyphData len = %d, want %d", got, want)
	}
}

func TestLineWidth(t *testing.T) {
	label := "3. Toggle outside light"
	_, w := tinyfont.LineWidth(Font, label)
	if int(w) != len(label)*Width {
		t.Fatalf("LineWidth = %d, want %d", w, len(label)*Width)
	}
}

func TestDrawStaysInCell(t *testing.T) {
	for r := rune(0x20); r <= 0x7e; r++ {
		var p pixelSet
		tinyfont.DrawChar(&p, Font, 10, 20+Baseline, r, color.RGBA{A: 255})
		for px := range p.set {
			if px[0] < 10 || px[0] >= 10+Width || px[1] < 20 || px[1] >= 20+Height {
				t.Fatalf("%q drew outside its cell at %v", r, px)
			}
		}
	}
}

func TestUnknownRuneFallsBack(t *testing.T) {
	var a, q pixelSet
	tinyfont.DrawChar(&a, Font, 0, Baseline, 'ж', color.RGBA{A: 255})
	tinyfont.DrawChar(&q, Font, 0, Baseline, '?', color.RGBA{A: 255})
	if len(a.set) == 0 || len(a.set) != len(q.set) {
		t.Fatalf("fallback drew %d pixels, '?' drew %d", len(a.set), len(q.set))
	}
}
