//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"

	"fortuna/internal/buildinfo"
)

const windowScale = 2

// RunWindow opens a desktop window showing the LCD, with the keyboard standing in
// for the front panel. It blocks until the window closes or a step fails.
func RunWindow(newApp func(HAL) func() error, cfg SerialConfig) error {
	h, err := newHostHAL(cfg)
	if err != nil {
		return err
	}
	defer h.serial.Close()

	p := &panelWindow{
		h:    h,
		kbd:  newHostKeyboard(h.in),
		step: newApp(h),
		rgba: make([]byte, h.fb.width*h.fb.height*4),
	}
	ebiten.SetWindowTitle("FortunaHome (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*windowScale, h.fb.height*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(p)
}

// panelWindow implements ebiten.Game: Update runs one panel step, Draw blits the LCD.
type panelWindow struct {
	h    *hostHAL
	kbd  *hostKeyboard
	step func() error

	rgba []byte
	lcd  *ebiten.Image
}

func (p *panelWindow) Update() error {
	p.kbd.poll()
	if p.step == nil {
		return nil
	}
	return p.step()
}

func (p *panelWindow) Draw(screen *ebiten.Image) {
	if p.lcd == nil {
		p.lcd = ebiten.NewImage(p.h.fb.width, p.h.fb.height)
	}
	p.h.fb.expandRGBA(p.rgba)
	p.lcd.WritePixels(p.rgba)
	screen.DrawImage(p.lcd, nil)
}

func (p *panelWindow) Layout(int, int) (int, int) {
	return p.h.fb.width, p.h.fb.height
}
