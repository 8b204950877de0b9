package game

import (
	"fmt"
	"io"

	"falkenstein/internal/raster"
	"falkenstein/internal/raycast"
	"falkenstein/internal/texture"
	"falkenstein/internal/world"
)

// Snapshot describes a single headless frame.
type Snapshot struct {
	Width, Height int // physical size
	PixelSize     int
	Pose          world.Pose
	ElapsedMs     int64
	Options       raycast.Options
}

// RenderSnapshot renders one frame of level without a window and writes it
// as PNG at physical resolution. Round pixels are drawn as discs when the
// pixel size is above 1, as in the window.
func RenderSnapshot(w io.Writer, atlas *texture.Atlas, level *world.Level, s Snapshot) (raycast.Result, error) {
	vp := raycast.NewViewport(s.Width, s.Height, s.PixelSize)
	if vp.Empty() {
		return raycast.Result{}, fmt.Errorf("snapshot size %dx%d too small for pixel size %d", s.Width, s.Height, s.PixelSize)
	}

	wld := world.New(level)
	r := raycast.NewRenderer(atlas)
	r.SetCollectionHandler(wld)

	fb := raster.NewFramebuffer(vp.Width, vp.Height)
	fb.Clear(clearColor)
	cam := raycast.NewCamera(s.Pose.X, s.Pose.Y, s.Pose.Angle)
	res := r.Render(fb, vp, s.Options, raycast.Scene{
		Grid:      &wld.Grid,
		Sprites:   wld.Sprites,
		Camera:    cam,
		ElapsedMs: s.ElapsedMs,
	})

	img := fb.Scaled(vp.PixelSize)
	if s.Options.RoundPixels && vp.PixelSize > 1 {
		img = fb.Rounded(vp.PixelSize, clearColor)
	}
	if err := raster.EncodePNG(w, img); err != nil {
		return res, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return res, nil
}
