package world

import "falkenstein/internal/texture"

var defaultGrid = Grid{
	Wall: Layer{
		{1, 1, 8, 1, 4, 1, 8, 1, 1, 13, 1, 13, 1, 13, 24, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 15, 0, 26},
		{8, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 0, 13},
		{4, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 9, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 9, 0, 0, 0, 0, 24},
		{8, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1},
		{1, 8, 10, 1, 8, 1, 8, 1, 8, 1, 8, 1, 8, 1, 8, 1},
		{8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 13},
		{1, 0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 0, 0, 9, 0, 24},
		{8, 0, 0, 0, 0, 0, 9, 9, 9, 0, 0, 0, 0, 9, 0, 13},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 0, 1},
		{11, 0, 0, 0, 0, 0, 15, 23, 19, 0, 0, 0, 0, 0, 0, 13},
		{1, 0, 0, 0, 0, 0, 21, 0, 25, 0, 9, 0, 0, 0, 0, 1},
		{8, 0, 0, 0, 0, 0, 17, 0, 22, 0, 0, 0, 0, 0, 0, 13},
		{1, 13, 1, 24, 1, 13, 1, 16, 1, 1, 13, 1, 13, 1, 13, 1},
	},
	Floor: fillLayer(5, [][2]int{{15, 1}, {2, 7}, {8, 13}}),
	Roof:  roofLayer(),
}

var defaultSprites = []Sprite{
	{X: 10.5, Y: 14.5, Texture: texture.WallOpener01, Kind: Collectible | WallOpener, OpenX: 2, OpenY: 7},
	{X: 11.5, Y: 5.5, Texture: texture.WallOpener02, Kind: Collectible | WallOpener, OpenX: 8, OpenY: 13},
	{X: 7.5, Y: 14.5, Texture: texture.WallOpener03, Kind: Collectible | WallOpener, OpenX: 15, OpenY: 1},
}

// fillLayer fills the interior (rows 1..14, columns 0..14) with v and marks
// the given cells with the rough wall texture. The outer rows and the last
// column stay empty so the sky and ground show through.
func fillLayer(v int, marks [][2]int) Layer {
	var l Layer
	for y := 1; y < MapHeight-1; y++ {
		for x := 0; x < MapWidth-1; x++ {
			l[y][x] = v
		}
	}
	for _, m := range marks {
		l[m[1]][m[0]] = texture.RoughWall + 1
	}
	return l
}

func roofLayer() Layer {
	l := fillLayer(7, [][2]int{{15, 1}, {2, 7}, {8, 13}})
	for y := 3; y <= 5; y++ {
		for x := 2; x <= 4; x++ {
			l[y][x] = 0
		}
	}
	return l
}

// DefaultLevel returns the built-in level.
func DefaultLevel() *Level {
	sprites := make([]Sprite, len(defaultSprites))
	copy(sprites, defaultSprites)
	return &Level{
		Name:    "falkenstein",
		Grid:    defaultGrid,
		Sprites: sprites,
		Start:   Pose{X: 4, Y: 13, Angle: 103},
		Exit:    Cell{X: 15, Y: 1},
	}
}
