package world

import "falkenstein/internal/texture"

// SpriteKind is a set of capability flags.
type SpriteKind int

const (
	Collectible SpriteKind = 1 << iota // hidden once the camera reaches its cell
	WallOpener                         // clears OpenX/OpenY when collected
)

// Has reports whether all flags in f are set.
func (k SpriteKind) Has(f SpriteKind) bool { return k&f == f }

// Sprite is a billboard placed in the world. Texture is a 0-based atlas id.
type Sprite struct {
	X, Y      float64
	Texture   int
	Kind      SpriteKind
	Collected bool
	OpenX     int
	OpenY     int
}

// Cell returns the map cell the sprite stands in.
func (s *Sprite) Cell() (int, int) { return int(s.X), int(s.Y) }

// Pose is a camera position and heading in degrees.
type Pose struct {
	X, Y  float64
	Angle float64
}

// Cell is an integer map coordinate.
type Cell struct {
	X, Y int
}

// Level is the immutable description a World is reset from.
type Level struct {
	Name    string
	Grid    Grid
	Sprites []Sprite
	Start   Pose
	Exit    Cell
}

// World is the mutable level state. The renderer reads Grid and Sprites; the
// only mutation during play is SpriteCollected.
type World struct {
	Grid    Grid
	Sprites []Sprite

	// OnWallOpened is called after a wall-opener clears its target cell.
	OnWallOpened func(x, y int)

	level *Level
}

// New creates a world reset to level.
func New(level *Level) *World {
	w := &World{level: level}
	w.Reset()
	return w
}

// Level returns the level the world resets to.
func (w *World) Level() *Level { return w.level }

// Start returns the level's start pose.
func (w *World) Start() Pose { return w.level.Start }

// Reset restores grids and sprite flags from the level.
func (w *World) Reset() {
	w.Grid = w.level.Grid
	w.Sprites = make([]Sprite, len(w.level.Sprites))
	copy(w.Sprites, w.level.Sprites)
	for i := range w.Sprites {
		w.Sprites[i].Collected = false
	}
}

// Replace swaps in a new level and resets to it.
func (w *World) Replace(level *Level) {
	w.level = level
	w.Reset()
}

// CanEnter reports whether a camera may stand at (x, y).
func (w *World) CanEnter(x, y float64) bool {
	if x < 0 || y < 0 || !InMapF(x, y) {
		return false
	}
	return !w.Grid.Solid(int(x), int(y))
}

// AtExit reports whether (x, y) lies in the exit cell.
func (w *World) AtExit(x, y float64) bool {
	return int(x) == w.level.Exit.X && int(y) == w.level.Exit.Y && x >= 0 && y >= 0
}

// CollectedCount returns how many collectible sprites have been picked up.
func (w *World) CollectedCount() int {
	n := 0
	for i := range w.Sprites {
		if w.Sprites[i].Kind.Has(Collectible) && w.Sprites[i].Collected {
			n++
		}
	}
	return n
}

// SpriteCollected marks sprite i as collected. It returns false if the sprite
// is not collectible or was already collected, so the wall-opening effect
// fires at most once per sprite.
func (w *World) SpriteCollected(i int) bool {
	if i < 0 || i >= len(w.Sprites) {
		return false
	}
	s := &w.Sprites[i]
	if s.Collected || !s.Kind.Has(Collectible) {
		return false
	}
	s.Collected = true
	if s.Kind.Has(WallOpener) {
		w.openWall(s.OpenX, s.OpenY)
	}
	return true
}

func (w *World) openWall(x, y int) {
	if !InMap(x, y) {
		return
	}
	tint := texture.RoughWall + 1
	if y > 0 {
		w.Grid.Floor[y-1][x] = tint
	}
	if y < MapHeight-1 {
		w.Grid.Floor[y+1][x] = tint
	}
	if x > 0 {
		w.Grid.Floor[y][x-1] = tint
	}
	if x < MapWidth-1 {
		w.Grid.Floor[y][x+1] = tint
	}
	w.Grid.Wall[y][x] = 0
	if w.OnWallOpened != nil {
		w.OnWallOpened(x, y)
	}
}
