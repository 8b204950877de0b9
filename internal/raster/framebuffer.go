// Package raster holds the pure-Go sinks the renderer draws into.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Framebuffer is a Sink backed by an RGBA image at logical resolution.
// Draw calls outside the image are clipped.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer creates a black framebuffer of w x h logical pixels.
func NewFramebuffer(w, h int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(w, h)
	return fb
}

// Resize reallocates the image when the size changed.
func (fb *Framebuffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if fb.img != nil && fb.img.Rect.Dx() == w && fb.img.Rect.Dy() == h {
		return
	}
	fb.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Width returns the logical width.
func (fb *Framebuffer) Width() int { return fb.img.Rect.Dx() }

// Height returns the logical height.
func (fb *Framebuffer) Height() int { return fb.img.Rect.Dy() }

// Clear paints every pixel with c.
func (fb *Framebuffer) Clear(c color.RGBA) {
	fb.Fill(0, 0, fb.Width(), fb.Height(), c)
}

// Point sets one pixel.
func (fb *Framebuffer) Point(x, y int, c color.RGBA) {
	if !image.Pt(x, y).In(fb.img.Rect) {
		return
	}
	i := fb.img.PixOffset(x, y)
	p := fb.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Fill paints the half-open rectangle [x0,x1) x [y0,y1).
func (fb *Framebuffer) Fill(x0, y0, x1, y1 int, c color.RGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(fb.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := fb.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			fb.img.Pix[i], fb.img.Pix[i+1], fb.img.Pix[i+2], fb.img.Pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
}

// At returns the pixel at (x, y).
func (fb *Framebuffer) At(x, y int) color.RGBA { return fb.img.RGBAAt(x, y) }

// Image returns the backing image. It is reused across frames.
func (fb *Framebuffer) Image() *image.RGBA { return fb.img }

// Pix returns the raw RGBA bytes, row-major.
func (fb *Framebuffer) Pix() []byte { return fb.img.Pix }

// Scaled returns a copy where each logical pixel is a scale x scale block.
func (fb *Framebuffer) Scaled(scale int) *image.RGBA {
	scale = max(1, scale)
	w, h := fb.Width(), fb.Height()
	out := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), fb.img, fb.img.Bounds(), draw.Src, nil)
	return out
}

// Rounded returns a copy where each logical pixel is a disc of diameter
// scale on bg, the way the window draws round pixels.
func (fb *Framebuffer) Rounded(scale int, bg color.RGBA) *image.RGBA {
	scale = max(1, scale)
	w, h := fb.Width(), fb.Height()
	out := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	disc := discMask(scale)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale)
			draw.DrawMask(out, cell, image.NewUniform(fb.img.RGBAAt(x, y)), image.Point{}, disc, image.Point{}, draw.Over)
		}
	}
	return out
}

// discMask is an opaque disc inscribed in a size x size square. A texel is
// inside when its centre is.
func discMask(size int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r {
				m.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return m
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
