package texture

import (
	"errors"
	"fmt"
	"image/color"

	"falkenstein/internal/mathutil"
)

// ErrTextureSize is returned for a side length that is not a power of two.
var ErrTextureSize = errors.New("texture size must be a power of two")

// Atlas holds square RGB bitmaps addressed row-major, three bytes per texel.
type Atlas struct {
	size     int
	textures [][]uint8
}

// NewAtlas creates an atlas of count blank textures with the given side length.
func NewAtlas(size, count int) (*Atlas, error) {
	if !mathutil.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrTextureSize, size)
	}
	a := &Atlas{size: size, textures: make([][]uint8, count)}
	for i := range a.textures {
		a.textures[i] = make([]uint8, size*size*3)
	}
	return a, nil
}

// Size returns the side length T of every texture.
func (a *Atlas) Size() int { return a.size }

// Len returns the number of textures.
func (a *Atlas) Len() int { return len(a.textures) }

// MustGet returns the raw RGB bytes of a texture. An unknown id is an
// asset/map mismatch and panics.
func (a *Atlas) MustGet(id int) []uint8 {
	if id < 0 || id >= len(a.textures) {
		panic(fmt.Sprintf("texture: id %d out of range [0,%d)", id, len(a.textures)))
	}
	return a.textures[id]
}

// Set writes one texel.
func (a *Atlas) Set(id, x, y int, r, g, b uint8) {
	pix := a.MustGet(id)
	i := (y*a.size + x) * 3
	pix[i], pix[i+1], pix[i+2] = r, g, b
}

// Raw returns a stored texel without special-colour handling.
func (a *Atlas) Raw(id, texel int) (r, g, b int) {
	pix := a.MustGet(id)
	i := texel * 3
	return int(pix[i]), int(pix[i+1]), int(pix[i+2])
}

// Texel returns a stored texel as an opaque colour. The marker is not
// interpreted; plane textures are drawn as stored.
func (a *Atlas) Texel(id, texel int) color.RGBA {
	r, g, b := a.Raw(id, texel)
	return RGB(r, g, b)
}

// Sample maps a texel to a displayable colour. The colour is divided by
// darken and halved again when dark is set. A magenta texel yields ok=false
// (caller skips the pixel) except for Candle and ColorLine, which animate
// from nowMs instead.
func (a *Atlas) Sample(id, texel int, dark bool, darken float64, nowMs int64) (c color.RGBA, ok bool) {
	r, g, b := a.Raw(id, texel)
	if r == 255 && g == 0 && b == 255 {
		switch id {
		case Candle:
			tick := nowMs / 10
			r = 255 - int(tick&15)
			g = 220 - int(tick&31)
			b = 49
		case ColorLine:
			r = int((255 - nowMs/10) & 255)
			g, b = 0, 0
		default:
			return color.RGBA{}, false
		}
	}
	r = int(float64(r) / darken)
	g = int(float64(g) / darken)
	b = int(float64(b) / darken)
	if dark {
		r, g, b = r/2, g/2, b/2
	}
	return RGB(r, g, b), true
}

// RGB packs channel values into an opaque colour. Values are truncated to
// eight bits the way a ubyte colour call would.
func RGB(r, g, b int) color.RGBA {
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// Darken divides every channel of c by darken.
func Darken(c color.RGBA, darken float64) color.RGBA {
	return RGB(int(float64(c.R)/darken), int(float64(c.G)/darken), int(float64(c.B)/darken))
}
