package raycast

import (
	"sort"

	"falkenstein/internal/world"
)

// maxSpriteSize caps the projected size of a sprite almost on the camera
// plane.
const maxSpriteSize = 1 << 20

// SpriteOrder returns sprite indexes sorted farthest first by squared
// distance from (x, y). Equal distances keep index order.
func SpriteOrder(x, y float64, sprites []world.Sprite, order []int) []int {
	order = order[:0]
	dist := make([]float64, len(sprites))
	for i := range sprites {
		dx, dy := x-sprites[i].X, y-sprites[i].Y
		dist[i] = dx*dx + dy*dy
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist[order[a]] > dist[order[b]]
	})
	return order
}

// spriteProjection is a sprite in camera space and on screen.
type spriteProjection struct {
	depth   float64 // camera-space depth, > 0
	screenX int
	size    int
}

// project transforms a sprite with the inverse of the [plane dir] matrix.
// ok is false for sprites on or behind the camera plane.
func (f *frame) project(s *world.Sprite) (p spriteProjection, ok bool) {
	dirX, dirY := f.cam.Dir()
	planeX, planeY := f.cam.Plane()
	sx, sy := s.X-f.cam.X, s.Y-f.cam.Y

	invDet := 1 / (planeX*dirY - dirX*planeY)
	tx := invDet * (dirY*sx - dirX*sy)
	ty := invDet * (-planeY*sx + planeX*sy)
	if ty <= 0 {
		return p, false
	}

	size := float64(f.vp.Height) / ty
	if size > maxSpriteSize {
		size = maxSpriteSize
	}
	p = spriteProjection{
		depth:   ty,
		screenX: int(float64(f.vp.Width/2) * (1 + tx/ty)),
		size:    int(size),
	}
	return p, p.size > 0
}

// drawSprites draws sprites in the given order and returns the indexes of
// collectible sprites whose cell the camera occupies. Those are not drawn.
// A column of a sprite is drawn only where the sprite is nearer than the
// wall in the depth buffer.
func (f *frame) drawSprites(sprites []world.Sprite, order []int) (collected []int, drawn int) {
	camCellX, camCellY := int(f.cam.X), int(f.cam.Y)
	W, H, T := f.vp.Width, f.vp.Height, f.texSize

	for _, i := range order {
		s := &sprites[i]
		if s.Collected {
			continue
		}
		if s.Kind.Has(world.Collectible) {
			if cx, cy := s.Cell(); cx == camCellX && cy == camCellY {
				collected = append(collected, i)
				continue
			}
		}

		p, ok := f.project(s)
		if !ok {
			continue
		}

		startY := max(0, H/2-p.size/2)
		endY := min(H-1, H/2+p.size/2)
		left := p.screenX - p.size/2
		startX := max(0, left)
		endX := min(W-1, p.screenX+p.size/2)

		visible := false
		for stripe := startX; stripe < endX; stripe++ {
			if p.depth >= f.depth[stripe] {
				continue
			}
			visible = true
			texX := min(T-1, 256*(stripe-left)*T/p.size/256)
			for y := startY; y < endY; y++ {
				d := y*256 - H*128 + p.size*128
				texY := min(T-1, max(0, d*T/p.size/256))
				if c, ok := f.atlas.Sample(s.Texture, texY*T+texX, false, 1, f.elapsed); ok {
					f.sink.Point(stripe, y, c)
				}
			}
		}
		if visible {
			drawn++
		}
	}
	return collected, drawn
}
