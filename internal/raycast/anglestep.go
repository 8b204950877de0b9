package raycast

import (
	"math"

	"falkenstein/internal/mathutil"
	"falkenstein/internal/world"
)

const (
	// axisEpsilon skips a crossing sequence for rays nearly parallel to it.
	axisEpsilon = 0.001
	// tieEpsilon is the distance difference below which the two crossing
	// candidates are considered equal.
	tieEpsilon = 0.01
	// gridNudge moves a crossing on a grid line into the cell behind it.
	gridNudge = 0.0001
)

// crossing is the result of walking one family of grid lines.
type crossing struct {
	x, y     float64
	distance float64
	offMap   bool
}

// walkCrossings advances from (x, y) by (dx, dy) until the point leaves the
// map or lands in a solid cell. Map membership truncates toward zero.
func walkCrossings(g *world.Grid, x, y, dx, dy, cos, sin, vx, vy float64) crossing {
	for {
		if !world.InMapF(x, y) {
			return crossing{x: x, y: y, distance: cos*(x-vx) + sin*(y-vy), offMap: true}
		}
		if g.Solid(int(x), int(y)) {
			return crossing{x: x, y: y, distance: cos*(x-vx) + sin*(y-vy)}
		}
		x += dx
		y += dy
	}
}

// castAngle casts one column by absolute ray angle. Vertical and horizontal
// grid line crossings are walked separately and the nearer one wins. On a
// near tie the side of the previous column is reused, which is why this
// caster must run columns in order.
func castAngle(f *frame, x int, lastSide *Side) ColumnHit {
	cam := f.cam
	W, H := f.vp.Width, f.vp.Height
	vx, vy := cam.X, cam.Y

	angleStep := float64(H) / ReferenceFOV
	angle := mathutil.WrapDegrees(cam.Angle - float64((W-1)/2-x)/angleStep)

	rad := mathutil.Radians(angle)
	sin, cos := math.Sin(rad), math.Cos(rad)
	tan := math.Tan(rad)
	fishCos := math.Cos(mathutil.Radians(cam.Angle - angle))

	h := ColumnHit{
		Distance: FarDistance,
		Top:      f.halfH,
		rayCos:   cos,
		raySin:   sin,
		fishCos:  fishCos,
	}

	vert := crossing{distance: FarDistance, offMap: true}
	switch {
	case cos > axisEpsilon:
		cx := float64(int(vx) + 1)
		vert = walkCrossings(f.grid, cx, vy-(vx-cx)*tan, 1, tan, cos, sin, vx, vy)
	case cos < -axisEpsilon:
		cx := float64(int(vx)) - gridNudge
		vert = walkCrossings(f.grid, cx, vy-(vx-cx)*tan, -1, -tan, cos, sin, vx, vy)
	}

	if tan == 0 {
		tan = axisEpsilon
	}
	horiz := crossing{distance: FarDistance, offMap: true}
	switch {
	case sin < -axisEpsilon:
		cy := float64(int(vy)) - gridNudge
		horiz = walkCrossings(f.grid, vx-(vy-cy)/tan, cy, -1/tan, -1, cos, sin, vx, vy)
	case sin > axisEpsilon:
		cy := float64(int(vy) + 1)
		horiz = walkCrossings(f.grid, vx-(vy-cy)/tan, cy, 1/tan, 1, cos, sin, vx, vy)
	}

	var side Side
	var final crossing
	switch {
	case horiz.distance < vert.distance-tieEpsilon:
		side, final = SideUpDown, horiz
	case vert.distance < horiz.distance-tieEpsilon:
		side, final = SideLeftRight, vert
	default:
		side, final = *lastSide, vert
		if vert.offMap && !horiz.offMap {
			final.x, final.y = horiz.x, horiz.y
			final.offMap = false
		}
	}

	if final.offMap {
		*lastSide = SideUnknown
		return h
	}
	*lastSide = side

	dist := final.distance * fishCos
	if dist <= 0 {
		dist = gridNudge
	}

	h.Hit = true
	h.Distance = dist
	h.Side = side
	h.CellX, h.CellY = int(final.x), int(final.y)
	h.Texture = f.grid.Wall[h.CellY][h.CellX]

	T := f.texSize
	var texX int
	if side == SideUpDown {
		texX = wrapTexel(int(final.x*float64(T)), T)
		if angle > 180 {
			texX = T - 1 - texX
		}
	} else {
		texX = wrapTexel(int(final.y*float64(T)), T)
		if angle < 90 || angle > 270 {
			texX = T - 1 - texX
		}
	}
	h.TexU = float64(texX) / float64(T)
	h.texColumn = T - texX - 1

	height := int(float64(H) / dist)
	if height&1 == 1 {
		height++
	}
	if height < 2 {
		return h
	}

	h.texStep = float64(T) / float64(height-1)
	if height > H {
		h.texStart = float64(height-H) / 2 * h.texStep
		height = H
	}
	h.Top = f.halfH - height/2
	h.Height = height
	return h
}

// wrapTexel folds v into [0, size).
func wrapTexel(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
