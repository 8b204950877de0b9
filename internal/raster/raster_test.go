package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestFramebufferClipping(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Point(-1, 0, red)
	fb.Point(4, 1, red)
	fb.Fill(-5, -5, 1, 10, red)

	for y := 0; y < 2; y++ {
		if got := fb.At(0, y); got != red {
			t.Errorf("At(0,%d) = %v, want red", y, got)
		}
		if got := fb.At(1, y); got != (color.RGBA{}) {
			t.Errorf("At(1,%d) = %v, want untouched", y, got)
		}
	}
}

func TestFramebufferResizeKeepsImage(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	img := fb.Image()
	fb.Resize(3, 3)
	if fb.Image() != img {
		t.Fatal("same size resize reallocated")
	}
	fb.Resize(5, 2)
	if fb.Width() != 5 || fb.Height() != 2 {
		t.Fatalf("size = %dx%d, want 5x2", fb.Width(), fb.Height())
	}
}

func TestFramebufferEncodePNG(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Point(1, 0, red)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, fb.Scaled(3)); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("bounds = %v, want 6x3", b)
	}
	r, _, _, _ := img.At(5, 2).RGBA()
	if r>>8 != 255 {
		t.Errorf("scaled pixel red = %d, want 255", r>>8)
	}
}

func TestRecorder(t *testing.T) {
	var a, b Recorder
	for _, r := range []*Recorder{&a, &b} {
		r.Fill(0, 0, 2, 2, red)
		r.Point(3, 1, red)
	}
	if !a.Equal(&b) {
		t.Fatal("identical sequences not equal")
	}
	if got := len(a.InColumn(1)); got != 1 {
		t.Errorf("InColumn(1) = %d ops, want 1", got)
	}
	if got := len(a.InColumn(3)); got != 1 {
		t.Errorf("InColumn(3) = %d ops, want 1", got)
	}
	b.Point(0, 0, red)
	if a.Equal(&b) {
		t.Error("different lengths reported equal")
	}
	b.Reset()
	if len(b.Ops) != 0 {
		t.Error("Reset kept ops")
	}
}

func TestFramebufferRounded(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Point(0, 0, red)
	fb.Point(1, 0, red)
	bg := color.RGBA{A: 255}

	img := fb.Rounded(4, bg)
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("bounds = %v, want 8x4", b)
	}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, bg},
		{3, 3, bg},
		{4, 0, bg},
		{2, 2, red},
		{1, 1, red},
		{6, 1, red},
		{2, 0, red},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
