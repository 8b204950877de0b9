package game

import (
	"fmt"
	"image/color"

	"falkenstein/internal/raster"
	"falkenstein/internal/raycast"
	"falkenstein/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	clearColor = color.RGBA{R: 26, G: 26, B: 26, A: 255}

	minimapWall   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	minimapFloor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	minimapViewer = color.RGBA{B: 255, A: 255}
)

const (
	minimapCell       = 8 // pixels per map cell
	minimapViewerSize = 4 // viewer box size
)

// FrameRenderer uploads the logical framebuffer to the screen.
type FrameRenderer struct {
	fb  *raster.Framebuffer
	img *ebiten.Image // logical resolution, reused while the size holds
}

// NewFrameRenderer creates an empty frame renderer.
func NewFrameRenderer() *FrameRenderer {
	return &FrameRenderer{fb: raster.NewFramebuffer(0, 0)}
}

// Sink returns the framebuffer sized for vp, cleared.
func (fr *FrameRenderer) Sink(vp raycast.Viewport) raycast.Sink {
	fr.fb.Resize(vp.Width, vp.Height)
	fr.fb.Clear(clearColor)
	return fr.fb
}

// Present draws the framebuffer scaled by the pixel size. Round pixels are
// drawn as one filled circle per logical pixel.
func (fr *FrameRenderer) Present(screen *ebiten.Image, vp raycast.Viewport, round bool) {
	if vp.Empty() {
		return
	}
	screen.Fill(clearColor)

	ps := float32(vp.PixelSize)
	if round && vp.PixelSize > 1 {
		r := ps / 2
		for y := 0; y < vp.Height; y++ {
			for x := 0; x < vp.Width; x++ {
				vector.DrawFilledCircle(screen, float32(x)*ps+r, float32(y)*ps+r, r, fr.fb.At(x, y), true)
			}
		}
		return
	}

	if fr.img == nil || fr.img.Bounds().Dx() != vp.Width || fr.img.Bounds().Dy() != vp.Height {
		if fr.img != nil {
			fr.img.Deallocate()
		}
		fr.img = ebiten.NewImage(vp.Width, vp.Height)
	}
	fr.img.WritePixels(fr.fb.Pix())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(vp.PixelSize), float64(vp.PixelSize))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(fr.img, op)
}

// drawMinimap draws the wall grid and the viewer in the top left corner.
func drawMinimap(screen *ebiten.Image, grid *world.Grid, cam *raycast.Camera) {
	for y := 0; y < world.MapHeight; y++ {
		for x := 0; x < world.MapWidth; x++ {
			c := minimapFloor
			if grid.Solid(x, y) {
				c = minimapWall
			}
			vector.DrawFilledRect(screen, float32(x*minimapCell+1), float32(y*minimapCell+1),
				minimapCell-2, minimapCell-2, c, false)
		}
	}

	vx, vy := float32(cam.X*minimapCell), float32(cam.Y*minimapCell)
	vector.DrawFilledRect(screen, vx-minimapViewerSize/2, vy-minimapViewerSize/2,
		minimapViewerSize, minimapViewerSize, minimapViewer, false)
	dx, dy := cam.Dir()
	vector.StrokeLine(screen, vx, vy, vx+float32(dx)*minimapViewerSize*4, vy+float32(dy)*minimapViewerSize*4,
		1, minimapViewer, false)
}

// drawDebugLine prints frame rate and render state below the minimap.
func (g *Game) drawDebugLine(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS %.0f  %s/%s  px %d  sprites %d  collected %d/%d",
		ebiten.ActualFPS(), g.opts.Strategy, g.opts.BackgroundMode.Resolve(g.opts.Strategy),
		g.pixelSize, g.lastResult.SpritesDrawn, g.world.CollectedCount(), len(g.world.Sprites))
	ebitenutil.DebugPrintAt(screen, msg, 2, world.MapHeight*minimapCell+2)
}
