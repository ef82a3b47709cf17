package hal

import (
	"image/color"
	"sync"
)

// framebuffer is an in-memory RGB565 (little-endian) LCD used where no panel is wired.
type framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte

	presented uint64
}

func newFramebuffer(width, height int) *framebuffer {
	stride := width * 2
	return &framebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

// NewFramebufferCanvas returns a standalone RGB565 framebuffer canvas.
func NewFramebufferCanvas(width, height int) Canvas {
	return newFramebuffer(width, height)
}

func (f *framebuffer) Size() (x, y int16) {
	return int16(f.width), int16(f.height)
}

func (f *framebuffer) SetPixel(x, y int16, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= f.width || iy < 0 || iy >= f.height {
		return
	}
	pixel := rgb565(c)
	off := iy*f.stride + ix*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
}

func (f *framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	x0 := clampInt(int(x), 0, f.width)
	y0 := clampInt(int(y), 0, f.height)
	x1 := clampInt(int(x)+int(width), 0, f.width)
	y1 := clampInt(int(y)+int(height), 0, f.height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for py := y0; py < y1; py++ {
		row := py * f.stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			f.buf[off] = lo
			f.buf[off+1] = hi
		}
	}
	return nil
}

// Display marks the frame as presented. The pixels are already in memory.
func (f *framebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presented++
	return nil
}

// presentedFrames returns how many times Display has been called.
func (f *framebuffer) presentedFrames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presented
}

// expandRGBA writes the frame as 8-bit RGBA into dst, which must hold
// width*height*4 bytes.
func (f *framebuffer) expandRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, j := 0, 0; i+1 < len(f.buf) && j+3 < len(dst); i, j = i+2, j+4 {
		dst[j], dst[j+1], dst[j+2] = rgb888From565(uint16(f.buf[i]) | uint16(f.buf[i+1])<<8)
		dst[j+3] = 0xFF
	}
}

func (f *framebuffer) pixelAt(x, y int) (r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0
	}
	off := y*f.stride + x*2
	return rgb888From565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rgb565 packs c into the panel's 16-bit pixel format.
func rgb565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8((p >> 11 & 0x1F) * 255 / 31)
	g = uint8((p >> 5 & 0x3F) * 255 / 63)
	b = uint8((p & 0x1F) * 255 / 31)
	return r, g, b
}
