package raycast

import "image/color"

// Side is the orientation class of a wall face.
type Side int

const (
	SideUnknown   Side = iota
	SideLeftRight      // face on a vertical grid line
	SideUpDown         // face on a horizontal grid line, drawn at half brightness
)

// Dark reports whether the side is shaded.
func (s Side) Dark() bool { return s == SideUpDown }

// ColumnHit is the wall caster's result for one screen column.
type ColumnHit struct {
	Hit      bool
	Distance float64 // perpendicular distance, FarDistance when !Hit
	Texture  int     // 1-based wall cell value
	TexU     float64 // [0,1)
	Side     Side
	CellX    int
	CellY    int

	// Top and Height are the drawn wall extent in rows, clipped to the
	// viewport. With no hit Top is the horizon and Height is 0.
	Top    int
	Height int

	// texColumn is the texel column used for every row of the stripe.
	texColumn int
	// texStart and texStep map rows of the stripe to texel rows.
	texStart float64
	texStep  float64

	// Ray heading and fisheye factor used by the column background.
	rayCos, raySin float64
	fishCos        float64
}

// Sink receives the draw calls of a frame in logical pixel coordinates.
// Fill covers the half-open rectangle [x0,x1) x [y0,y1).
type Sink interface {
	Point(x, y int, c color.RGBA)
	Fill(x0, y0, x1, y1 int, c color.RGBA)
}

// DepthBuffer holds one wall distance per column.
type DepthBuffer []float64

// Reset resizes the buffer to width columns, all at FarDistance.
func (d *DepthBuffer) Reset(width int) {
	if cap(*d) < width {
		*d = make(DepthBuffer, width)
	}
	*d = (*d)[:width]
	for i := range *d {
		(*d)[i] = FarDistance
	}
}
