package world

import (
	"errors"
	"fmt"
	"os"

	"falkenstein/internal/texture"

	"gopkg.in/yaml.v3"
)

// ErrBadLevel is wrapped by every level validation failure.
var ErrBadLevel = errors.New("invalid level")

// levelFile is the on-disk YAML layout of a level.
type levelFile struct {
	Name    string       `yaml:"name"`
	Start   poseFile     `yaml:"start"`
	Exit    cellFile     `yaml:"exit"`
	Wall    [][]int      `yaml:"wall"`
	Floor   [][]int      `yaml:"floor"`
	Roof    [][]int      `yaml:"roof"`
	Sprites []spriteFile `yaml:"sprites"`
}

type poseFile struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

type cellFile struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type spriteFile struct {
	X           float64   `yaml:"x"`
	Y           float64   `yaml:"y"`
	Texture     int       `yaml:"texture"`
	Collectible bool      `yaml:"collectible"`
	WallOpener  bool      `yaml:"wall_opener"`
	Open        *cellFile `yaml:"open,omitempty"`
}

// LoadLevel reads and validates a YAML level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}
	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// ParseLevel decodes and validates a YAML level.
func ParseLevel(data []byte) (*Level, error) {
	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	level := &Level{
		Name:  lf.Name,
		Start: Pose{X: lf.Start.X, Y: lf.Start.Y, Angle: lf.Start.Angle},
		Exit:  Cell{X: lf.Exit.X, Y: lf.Exit.Y},
	}

	var err error
	if level.Grid.Wall, err = toLayer("wall", lf.Wall); err != nil {
		return nil, err
	}
	if level.Grid.Floor, err = toLayer("floor", lf.Floor); err != nil {
		return nil, err
	}
	if level.Grid.Roof, err = toLayer("roof", lf.Roof); err != nil {
		return nil, err
	}

	for i, sf := range lf.Sprites {
		s := Sprite{X: sf.X, Y: sf.Y, Texture: sf.Texture}
		if sf.Collectible {
			s.Kind |= Collectible
		}
		if sf.WallOpener {
			s.Kind |= WallOpener
			if sf.Open == nil {
				return nil, fmt.Errorf("%w: sprite %d is a wall opener without an open cell", ErrBadLevel, i)
			}
			s.OpenX, s.OpenY = sf.Open.X, sf.Open.Y
		}
		level.Sprites = append(level.Sprites, s)
	}

	if err := level.Validate(); err != nil {
		return nil, err
	}
	return level, nil
}

func toLayer(name string, rows [][]int) (Layer, error) {
	var l Layer
	if len(rows) != MapHeight {
		return l, fmt.Errorf("%w: %s has %d rows, want %d", ErrBadLevel, name, len(rows), MapHeight)
	}
	for y, row := range rows {
		if len(row) != MapWidth {
			return l, fmt.Errorf("%w: %s row %d has %d cells, want %d", ErrBadLevel, name, y, len(row), MapWidth)
		}
		for x, v := range row {
			if v < 0 || v > texture.Count {
				return l, fmt.Errorf("%w: %s cell (%d,%d) has texture %d", ErrBadLevel, name, x, y, v)
			}
			l[y][x] = v
		}
	}
	return l, nil
}

// Validate checks that every texture id and coordinate of the level is usable.
func (l *Level) Validate() error {
	for i, s := range l.Sprites {
		if s.Texture < 0 || s.Texture >= texture.Count {
			return fmt.Errorf("%w: sprite %d has texture %d", ErrBadLevel, i, s.Texture)
		}
		if !InMapF(s.X, s.Y) || s.X < 0 || s.Y < 0 {
			return fmt.Errorf("%w: sprite %d at (%.2f,%.2f) is outside the map", ErrBadLevel, i, s.X, s.Y)
		}
		if s.Kind.Has(WallOpener) && !InMap(s.OpenX, s.OpenY) {
			return fmt.Errorf("%w: sprite %d opens (%d,%d) outside the map", ErrBadLevel, i, s.OpenX, s.OpenY)
		}
	}
	if l.Start.X < 0 || l.Start.Y < 0 || !InMapF(l.Start.X, l.Start.Y) {
		return fmt.Errorf("%w: start (%.2f,%.2f) is outside the map", ErrBadLevel, l.Start.X, l.Start.Y)
	}
	if l.Grid.Solid(int(l.Start.X), int(l.Start.Y)) {
		return fmt.Errorf("%w: start (%.2f,%.2f) is inside a wall", ErrBadLevel, l.Start.X, l.Start.Y)
	}
	if !InMap(l.Exit.X, l.Exit.Y) {
		return fmt.Errorf("%w: exit (%d,%d) is outside the map", ErrBadLevel, l.Exit.X, l.Exit.Y)
	}
	return nil
}

// MarshalLevel encodes a level in the layout LoadLevel reads.
func MarshalLevel(l *Level) ([]byte, error) {
	lf := levelFile{
		Name:  l.Name,
		Start: poseFile{X: l.Start.X, Y: l.Start.Y, Angle: l.Start.Angle},
		Exit:  cellFile{X: l.Exit.X, Y: l.Exit.Y},
		Wall:  fromLayer(&l.Grid.Wall),
		Floor: fromLayer(&l.Grid.Floor),
		Roof:  fromLayer(&l.Grid.Roof),
	}
	for _, s := range l.Sprites {
		sf := spriteFile{
			X:           s.X,
			Y:           s.Y,
			Texture:     s.Texture,
			Collectible: s.Kind.Has(Collectible),
			WallOpener:  s.Kind.Has(WallOpener),
		}
		if sf.WallOpener {
			sf.Open = &cellFile{X: s.OpenX, Y: s.OpenY}
		}
		lf.Sprites = append(lf.Sprites, sf)
	}
	return yaml.Marshal(&lf)
}

func fromLayer(l *Layer) [][]int {
	rows := make([][]int, MapHeight)
	for y := range rows {
		rows[y] = append([]int(nil), l[y][:]...)
	}
	return rows
}
