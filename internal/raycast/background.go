package raycast

import (
	"image/color"

	"falkenstein/internal/texture"
	"falkenstein/internal/world"

	"golang.org/x/image/colornames"
)

// flatFloor is drawn over the lower half when the background is disabled.
var flatFloor = texture.RGB(102, 102, 102)

// skyDriftMs is the time the sky needs to drift by one texel.
const skyDriftMs = 100

// skyOffsets are the texel column offsets of the infinite planes. Both follow
// the heading; only the sky also drifts with time.
type skyOffsets struct {
	ground int
	sky    int
}

func newSkyOffsets(angle float64, elapsedMs int64, T int) skyOffsets {
	viewer := int(6 * SkyScale * float64(T) * angle / 360)
	drift := int(elapsedMs / skyDriftMs)
	return skyOffsets{
		ground: (viewer / SkyScale) % T,
		sky:    (drift + viewer/SkyScale) % T,
	}
}

// plane is one half of the background: a per-cell layer and the infinite
// plane shown where the layer is empty or the point is off the map.
type plane struct {
	cells       *world.Layer
	cellOff     color.RGBA // mapped cell with background textures off
	infinite    int        // atlas id of the infinite plane
	infiniteOff color.RGBA // infinite plane with textures off
	offset      int        // texel column offset of the infinite plane
}

func (f *frame) floorPlane() plane {
	return plane{
		cells:       &f.grid.Floor,
		cellOff:     colornames.Magenta,
		infinite:    texture.Ground,
		infiniteOff: colornames.Cyan,
		offset:      f.sky.ground,
	}
}

func (f *frame) roofPlane() plane {
	return plane{
		cells:       &f.grid.Roof,
		cellOff:     colornames.Yellow,
		infinite:    texture.Sky,
		infiniteOff: colornames.Blue,
		offset:      f.sky.sky,
	}
}

// planePixel draws exactly one of the two categories of p at (x, y): the
// mapped cell texture, or the infinite plane.
func (f *frame) planePixel(p *plane, x, y int, inMap bool, cellX, cellY, texel int, darken float64, skyRow, skyCol int) {
	if inMap {
		if id, ok := texture.CellID(p.cells[cellY][cellX]); ok {
			if f.opts.Textures && f.opts.BackgroundTexture {
				f.sink.Point(x, y, texture.Darken(f.atlas.Texel(id, texel), darken))
			} else {
				f.sink.Point(x, y, texture.Darken(p.cellOff, darken))
			}
			return
		}
	}
	if f.opts.Textures {
		T := f.texSize
		c := f.atlas.Texel(p.infinite, skyRow*T+(p.offset+skyCol)%T)
		f.sink.Point(x, y, texture.Darken(c, darken))
		return
	}
	f.sink.Point(x, y, texture.Darken(p.infiniteOff, darken))
}

// drawFlatFloor covers the lower half with grey.
func (f *frame) drawFlatFloor() {
	W, H, halfH := f.vp.Width, f.vp.Height, f.halfH
	if !f.opts.RoundPixels {
		f.sink.Fill(0, halfH, W, H, flatFloor)
		return
	}
	for x := 0; x < W; x++ {
		for y := halfH; y < H; y++ {
			f.sink.Point(x, y, flatFloor)
		}
	}
}

// drawRowsBackground casts whole rows of the floor and roof planes, working
// outward from the horizon. Row y below the horizon and its mirror above it
// share one world position.
func (f *frame) drawRowsBackground() {
	W, halfH, T := f.vp.Width, f.halfH, f.texSize
	ps := f.vp.PixelSize
	dirX, dirY := f.cam.Dir()
	planeX, planeY := f.cam.Plane()

	rayDirX0, rayDirY0 := dirX-planeX, dirY-planeY
	rayDirX1, rayDirY1 := dirX+planeX, dirY+planeY

	floor, roof := f.floorPlane(), f.roofPlane()
	skyStep := f.vp.skyStepX()

	for y := 0; y < halfH; y++ {
		rowDistance := float64(halfH) / float64(y+1)
		stepX := rowDistance * (rayDirX1 - rayDirX0) / float64(W)
		stepY := rowDistance * (rayDirY1 - rayDirY0) / float64(W)
		floorX := f.cam.X + rowDistance*rayDirX0
		floorY := f.cam.Y + rowDistance*rayDirY0

		darken := 1 + 100/float64((y+1)*ps)
		skyRow := (ps * y / SkyScale) % T
		skyDelta := 0.0

		for x := 0; x < W; x++ {
			cellX, cellY := int(floorX), int(floorY)
			tx := int(float64(T)*(floorX-float64(cellX))) & (T - 1)
			ty := int(float64(T)*(floorY-float64(cellY))) & (T - 1)
			inMap := world.InMap(cellX, cellY)
			skyDelta += skyStep

			f.planePixel(&floor, x, halfH+y, inMap, cellX, cellY, ty*T+tx, darken, skyRow, int(skyDelta))
			f.planePixel(&roof, x, halfH-1-y, inMap, cellX, cellY, ty*T+tx, darken, skyRow, int(skyDelta))

			floorX += stepX
			floorY += stepY
		}
	}
}

// drawColumnBackground casts the rows of column x below the wall and mirrors
// them above it.
func (f *frame) drawColumnBackground(x int, h *ColumnHit) {
	H, halfH, T := f.vp.Height, f.halfH, f.texSize
	ps := f.vp.PixelSize
	tf := float64(T)

	fish := h.fishCos
	if fish == 0 {
		fish = 0.00001
	}
	reach := float64(halfH - 5)
	skyCol := int(float64(x) * f.vp.skyStepX())
	floor, roof := f.floorPlane(), f.roofPlane()

	for y := h.Top + h.Height; y < H; y++ {
		dy := float64(max(1, y-halfH))
		texX := f.cam.X*tf + tf*h.rayCos*reach/(dy*fish)
		texY := f.cam.Y*tf + h.raySin*reach*tf/dy/fish
		darken := 1 + 100/(dy*fish*float64(ps))

		cellX, cellY := int(texX/tf), int(texY/tf)
		inMap := world.InMap(cellX, cellY)
		texel := (int(texY)&(T-1))*T + (int(texX) & (T - 1))
		skyRow := (ps * y / SkyScale) % T

		f.planePixel(&floor, x, y, inMap, cellX, cellY, texel, darken, skyRow, skyCol)
		f.planePixel(&roof, x, H-1-y, inMap, cellX, cellY, texel, darken, skyRow, skyCol)
	}
}

// behindWall draws the infinite plane seen through a transparent wall texel.
func (f *frame) behindWall(x, y int, h *ColumnHit) {
	T, halfH := f.texSize, f.halfH
	fish := h.fishCos
	if fish == 0 {
		fish = 0.00001
	}
	id, offset, rows := texture.Ground, f.sky.ground, y-halfH
	if y < halfH {
		id, offset, rows = texture.Sky, f.sky.sky, halfH-y
	}
	darken := 1 + 100/(float64(max(1, rows))*fish*float64(f.vp.PixelSize))
	skyRow := (f.vp.PixelSize * y / SkyScale) % T
	skyCol := (offset + int(float64(x)*f.vp.skyStepX())) % T
	f.sink.Point(x, y, texture.Darken(f.atlas.Texel(id, skyRow*T+skyCol), darken))
}
