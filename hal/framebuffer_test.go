package hal

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferFillRectangleClips(t *testing.T) {
	fb := newFramebuffer(10, 8)
	red := color.RGBA{R: 0xFF, A: 0xFF}

	require.NoError(t, fb.FillRectangle(8, 6, 5, 5, red))

	r, _, _ := fb.pixelAt(9, 7)
	assert.Equal(t, uint8(0xFF), r)
	r, _, _ = fb.pixelAt(7, 7)
	assert.Equal(t, uint8(0), r)
	r, _, _ = fb.pixelAt(9, 5)
	assert.Equal(t, uint8(0), r)
}

func TestFramebufferSetPixelOutOfRange(t *testing.T) {
	fb := newFramebuffer(4, 4)
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	fb.SetPixel(-1, 0, white)
	fb.SetPixel(4, 4, white)
	fb.SetPixel(1, 2, white)

	r, g, b := fb.pixelAt(1, 2)
	assert.Equal(t, [3]uint8{0xFF, 0xFF, 0xFF}, [3]uint8{r, g, b})

	rgba := make([]byte, 4*4*4)
	fb.expandRGBA(rgba)
	lit := 0
	for i := 0; i < len(rgba); i += 4 {
		assert.Equal(t, uint8(0xFF), rgba[i+3])
		if rgba[i] != 0 || rgba[i+1] != 0 || rgba[i+2] != 0 {
			lit++
		}
	}
	assert.Equal(t, 1, lit)
}

func TestFramebufferCountsPresents(t *testing.T) {
	fb := newFramebuffer(2, 2)
	require.NoError(t, fb.Display())
	require.NoError(t, fb.Display())
	assert.Equal(t, uint64(2), fb.presentedFrames())
}

func TestFramebufferSize(t *testing.T) {
	x, y := NewFramebufferCanvas(320, 240).Size()
	assert.Equal(t, int16(320), x)
	assert.Equal(t, int16(240), y)
}

func TestRGB565(t *testing.T) {
	assert.Equal(t, uint16(0xF800), rgb565(color.RGBA{R: 0xFF, A: 0xFF}))
	assert.Equal(t, uint16(0xFFFF), rgb565(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}))

	r, g, b := rgb888From565(0xFFFF)
	assert.Equal(t, [3]uint8{0xFF, 0xFF, 0xFF}, [3]uint8{r, g, b})
	r, g, b = rgb888From565(0x07E0)
	assert.Equal(t, [3]uint8{0, 0xFF, 0}, [3]uint8{r, g, b})
}
