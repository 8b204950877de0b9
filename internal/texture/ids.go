package texture

// Texture ids are 0-based indexes into the atlas. Grid cells store id+1 so
// that 0 can mean "no texture"; sprites and the sky/ground planes reference
// ids directly.
const (
	Stone     = 0
	RoughWall = 1
	Brick     = 2
	Banner    = 3
	Flagstone = 4
	Ground    = 5 // grass plane below the horizon
	Roof      = 6
	Candle    = 7 // flickering flame where the texel is magenta
	Wood      = 8
	Door      = 9
	Gate      = 10
	Moss      = 11
	ColorLine = 12 // pulsing red line where the texel is magenta
	// 13..25 are decorative wall variants
	Sky          = 26
	WallOpener01 = 27
	WallOpener02 = 28
	WallOpener03 = 29
	Logo         = 30

	Count = 31
)

// DefaultSize is the side length of every texture in texels.
const DefaultSize = 32

// Transparent is the reserved RGB marker (magenta).
var Transparent = [3]uint8{255, 0, 255}

// CellID converts a 1-based grid cell value to an atlas id.
// ok is false for the empty cell.
func CellID(cell int) (id int, ok bool) {
	if cell <= 0 {
		return 0, false
	}
	return cell - 1, true
}
