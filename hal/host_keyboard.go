//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard maps keys onto the front panel: arrows turn the encoder one step,
// Enter or Space hold the middle button.
type hostKeyboard struct {
	in *hostInput
}

func newHostKeyboard(in *hostInput) *hostKeyboard {
	return &hostKeyboard{in: in}
}

func (k *hostKeyboard) poll() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		k.in.turn(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		k.in.turn(+1)
	}

	// Wheel ticks behave like encoder detents.
	if _, dy := ebiten.Wheel(); dy > 0 {
		k.in.turn(-1)
	} else if dy < 0 {
		k.in.turn(+1)
	}

	k.in.press(ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeySpace))
}
