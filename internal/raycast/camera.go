package raycast

import (
	"math"

	"falkenstein/internal/mathutil"
)

// ReferenceFOV is the horizontal field of view in degrees of a square
// viewport. Wider or narrower viewports scale it by their aspect ratio, so
// the field of view is not constant across window shapes.
const ReferenceFOV = 40.0

// FarDistance is the depth sentinel for columns without a wall. It also
// replaces the camera plane scale when the half field of view is degenerate.
const FarDistance = 100000.0

// Camera is the viewer pose plus a projection cache. X and Y are in grid
// units, Angle in degrees in [0, 360). The cache is refreshed by
// UpdateProjection whenever the angle or viewport changed.
type Camera struct {
	X, Y  float64
	Angle float64

	valid          bool
	cacheAngle     float64
	cacheW, cacheH int

	sin, cos       float64
	planeX, planeY float64
}

// NewCamera creates a camera at (x, y) looking at angle degrees.
func NewCamera(x, y, angle float64) *Camera {
	return &Camera{X: x, Y: y, Angle: mathutil.WrapDegrees(angle)}
}

// Turn rotates the camera by delta degrees.
func (c *Camera) Turn(delta float64) {
	c.Angle = mathutil.WrapDegrees(c.Angle + delta)
}

// HalfFOV returns half the horizontal field of view for a viewport.
func HalfFOV(width, height int) float64 {
	if height <= 0 {
		return 0
	}
	return ReferenceFOV / 2 * float64(width) / float64(height)
}

// UpdateProjection recomputes the direction and camera plane vectors.
func (c *Camera) UpdateProjection(width, height int) {
	if c.valid && c.cacheAngle == c.Angle && c.cacheW == width && c.cacheH == height {
		return
	}

	rad := mathutil.Radians(c.Angle)
	c.sin, c.cos = math.Sin(rad), math.Cos(rad)

	half := mathutil.Radians(HalfFOV(width, height))
	vectorLength := FarDistance
	if s := math.Sin(half); s != 0 {
		vectorLength = math.Cos(half) / s
	}

	perp := mathutil.Radians(c.Angle + 90)
	c.planeX = math.Cos(perp) / vectorLength
	c.planeY = math.Sin(perp) / vectorLength

	c.valid = true
	c.cacheAngle = c.Angle
	c.cacheW, c.cacheH = width, height
}

// Dir returns the unit view direction.
func (c *Camera) Dir() (x, y float64) { return c.cos, c.sin }

// Plane returns the camera plane vector; its length is tan(half FOV).
func (c *Camera) Plane() (x, y float64) { return c.planeX, c.planeY }

// Sin returns the sine of the heading.
func (c *Camera) Sin() float64 { return c.sin }

// Cos returns the cosine of the heading.
func (c *Camera) Cos() float64 { return c.cos }
