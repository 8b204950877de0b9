package raster

import (
	"fmt"
	"image/color"
)

// OpKind distinguishes recorded draw calls.
type OpKind int

const (
	OpPoint OpKind = iota
	OpFill
)

// Op is one recorded draw call. For points X1 and Y1 equal X0+1 and Y0+1.
type Op struct {
	Kind   OpKind
	X0, Y0 int
	X1, Y1 int
	Color  color.RGBA
}

func (o Op) String() string {
	if o.Kind == OpPoint {
		return fmt.Sprintf("point(%d,%d %v)", o.X0, o.Y0, o.Color)
	}
	return fmt.Sprintf("fill(%d,%d-%d,%d %v)", o.X0, o.Y0, o.X1, o.Y1, o.Color)
}

// Recorder is a Sink that keeps every call in order.
type Recorder struct {
	Ops []Op
}

// Point records a point.
func (r *Recorder) Point(x, y int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpPoint, X0: x, Y0: y, X1: x + 1, Y1: y + 1, Color: c})
}

// Fill records a rectangle.
func (r *Recorder) Fill(x0, y0, x1, y1 int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c})
}

// Reset drops all recorded calls and keeps the storage.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Equal reports whether both recorders hold the same call sequence.
func (r *Recorder) Equal(o *Recorder) bool {
	if len(r.Ops) != len(o.Ops) {
		return false
	}
	for i := range r.Ops {
		if r.Ops[i] != o.Ops[i] {
			return false
		}
	}
	return true
}

// InColumn returns the calls touching column x.
func (r *Recorder) InColumn(x int) []Op {
	var out []Op
	for _, op := range r.Ops {
		if x >= op.X0 && x < op.X1 {
			out = append(out, op)
		}
	}
	return out
}
