package raycast

import (
	"math"

	"falkenstein/internal/world"
)

// castDDA steps through grid cells along one ray. The ray is interpolated
// between the leftmost and rightmost view rays, and the distance is measured
// perpendicular to the camera plane, so no cosine correction is needed.
func castDDA(f *frame, x int, _ *Side) ColumnHit {
	cam := f.cam
	dirX, dirY := cam.Dir()
	planeX, planeY := cam.Plane()

	cameraX := 2*float64(x)/float64(f.vp.Width) - 1
	rayDirX := dirX + planeX*cameraX
	rayDirY := dirY + planeY*cameraX

	rayLen := math.Hypot(rayDirX, rayDirY)
	h := ColumnHit{
		Distance: FarDistance,
		Top:      f.halfH,
		rayCos:   rayDirX / rayLen,
		raySin:   rayDirY / rayLen,
		fishCos:  1 / rayLen,
	}

	mapX, mapY := int(cam.X), int(cam.Y)

	deltaDistX, deltaDistY := 1e30, 1e30
	if rayDirX != 0 {
		deltaDistX = math.Abs(1 / rayDirX)
	}
	if rayDirY != 0 {
		deltaDistY = math.Abs(1 / rayDirY)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDirX < 0 {
		stepX = -1
		sideDistX = (cam.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1 - cam.X) * deltaDistX
	}
	if rayDirY < 0 {
		stepY = -1
		sideDistY = (cam.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1 - cam.Y) * deltaDistY
	}

	var side Side
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = SideLeftRight
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = SideUpDown
		}
		if !world.InMap(mapX, mapY) {
			return h
		}
		if f.grid.Wall[mapY][mapX] > 0 {
			break
		}
	}

	perp := sideDistY - deltaDistY
	if side == SideLeftRight {
		perp = sideDistX - deltaDistX
	}
	if perp == 0 {
		perp = 0.0001
	}

	h.Hit = true
	h.Distance = perp
	h.Side = side
	h.CellX, h.CellY = mapX, mapY
	h.Texture = f.grid.Wall[mapY][mapX]

	T := f.texSize
	var wallX float64
	if side == SideLeftRight {
		wallX = cam.Y + perp*rayDirY
	} else {
		wallX = cam.X + perp*rayDirX
	}
	wallX -= math.Floor(wallX)

	texX := int(wallX * float64(T))
	if (side == SideLeftRight && rayDirX > 0) || (side == SideUpDown && rayDirY < 0) {
		texX = T - texX - 1
	}
	h.TexU = float64(texX) / float64(T)
	h.texColumn = T - texX - 1

	lineHeight := int(float64(f.vp.Height) / perp)
	if lineHeight&1 == 1 {
		lineHeight++
	}
	if lineHeight < 2 {
		return h
	}

	drawStart := max(0, f.halfH-lineHeight/2)
	drawEnd := min(f.vp.Height, f.halfH+lineHeight/2)
	h.Top = drawStart
	h.Height = drawEnd - drawStart
	h.texStep = float64(T) / float64(lineHeight-1)
	h.texStart = float64(drawStart-f.halfH+lineHeight/2) * h.texStep
	return h
}
