package raycast

import (
	"fmt"
	"strings"
)

// MaxWidth bounds the number of logical columns (and the depth buffer).
const MaxWidth = 4096

// SkyScale is the number of screen pixels per sky/ground texel.
const SkyScale = 5

// Viewport is the logical raster the renderer draws into. One logical
// pixel covers PixelSize x PixelSize physical pixels.
type Viewport struct {
	Width     int
	Height    int
	PixelSize int
}

// NewViewport derives the logical raster from a physical size. Width is
// capped at MaxWidth and height is forced even so the horizon falls between
// two rows.
func NewViewport(physWidth, physHeight, pixelSize int) Viewport {
	if pixelSize < 1 {
		pixelSize = 1
	}
	w := min(physWidth/pixelSize, MaxWidth)
	h := physHeight / pixelSize
	if h&1 == 1 {
		h--
	}
	return Viewport{Width: w, Height: h, PixelSize: pixelSize}
}

// HalfHeight returns the horizon row.
func (v Viewport) HalfHeight() int { return v.Height / 2 }

// Empty reports whether nothing can be drawn.
func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

// skyStepX is the sky/ground texel advance per column.
func (v Viewport) skyStepX() float64 { return float64(v.PixelSize) / SkyScale }

// Strategy selects the wall caster.
type Strategy int

const (
	StrategyDDA   Strategy = iota // grid stepping with perpendicular distance
	StrategyAngle                 // per-column ray angle, grid line crossings
)

func (s Strategy) String() string {
	switch s {
	case StrategyDDA:
		return "dda"
	case StrategyAngle:
		return "angle"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Next returns the other strategy.
func (s Strategy) Next() Strategy {
	if s == StrategyDDA {
		return StrategyAngle
	}
	return StrategyDDA
}

// ParseStrategy maps a config name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dda":
		return StrategyDDA, nil
	case "angle", "anglestep", "angle-step":
		return StrategyAngle, nil
	}
	return StrategyDDA, fmt.Errorf("unknown strategy %q", name)
}

// BackgroundMode selects how floor, roof, sky and ground are cast.
type BackgroundMode int

const (
	// BackgroundAuto uses rows for DDA and columns for the angle caster.
	BackgroundAuto BackgroundMode = iota
	// BackgroundRows casts whole screen rows before the walls are drawn.
	BackgroundRows
	// BackgroundColumns casts each column below and above its wall.
	BackgroundColumns
)

func (m BackgroundMode) String() string {
	switch m {
	case BackgroundAuto:
		return "auto"
	case BackgroundRows:
		return "rows"
	case BackgroundColumns:
		return "columns"
	}
	return fmt.Sprintf("BackgroundMode(%d)", int(m))
}

// ParseBackgroundMode maps a config name to a BackgroundMode.
func ParseBackgroundMode(name string) (BackgroundMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return BackgroundAuto, nil
	case "rows":
		return BackgroundRows, nil
	case "columns":
		return BackgroundColumns, nil
	}
	return BackgroundAuto, fmt.Errorf("unknown background mode %q", name)
}

// Resolve replaces BackgroundAuto with the mode matching s.
func (m BackgroundMode) Resolve(s Strategy) BackgroundMode {
	if m != BackgroundAuto {
		return m
	}
	if s == StrategyAngle {
		return BackgroundColumns
	}
	return BackgroundRows
}

// Options are the per-frame render toggles.
type Options struct {
	Textures          bool
	Background        bool
	BackgroundTexture bool
	RoundPixels       bool
	Strategy          Strategy
	BackgroundMode    BackgroundMode
}

// DefaultOptions enables everything with the DDA caster.
func DefaultOptions() Options {
	return Options{
		Textures:          true,
		Background:        true,
		BackgroundTexture: true,
		Strategy:          StrategyDDA,
		BackgroundMode:    BackgroundAuto,
	}
}
