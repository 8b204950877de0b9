package world

// Map dimensions in cells.
const (
	MapWidth  = 16
	MapHeight = 16
)

// Layer is one 16x16 plane of cell values indexed [y][x]. 0 is empty, any
// positive value is a 1-based texture id.
type Layer [MapHeight][MapWidth]int

// Grid holds the three parallel planes of a level. Only the wall plane is
// solid; floor and roof are decorative.
type Grid struct {
	Wall  Layer
	Floor Layer
	Roof  Layer
}

// InMap reports whether the cell (x, y) lies inside the map.
func InMap(x, y int) bool {
	return x >= 0 && x < MapWidth && y >= 0 && y < MapHeight
}

// InMapF is InMap for a continuous position. Coordinates are truncated toward
// zero, so positions in (-1, 0) still count as row or column 0.
func InMapF(x, y float64) bool {
	return InMap(int(x), int(y))
}

// WallAt returns the wall cell value, or 0 outside the map.
func (g *Grid) WallAt(x, y int) int {
	if !InMap(x, y) {
		return 0
	}
	return g.Wall[y][x]
}

// Solid reports whether the cell blocks rays and movement.
func (g *Grid) Solid(x, y int) bool {
	return g.WallAt(x, y) > 0
}
