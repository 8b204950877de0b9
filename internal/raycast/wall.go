package raycast

import (
	"image/color"

	"falkenstein/internal/texture"
)

// wallDarken is the brightness divisor of a wall at distance d.
func wallDarken(d float64) float64 { return 1 + d/10 }

// sideColor is the untextured wall colour: red for up/down faces, green for
// left/right faces, black when the side could not be decided.
func sideColor(s Side, darken float64) color.RGBA {
	v := int(255 / darken)
	switch s {
	case SideUpDown:
		return texture.RGB(v, 0, 0)
	case SideLeftRight:
		return texture.RGB(0, v, 0)
	}
	return texture.RGB(0, 0, 0)
}

// drawWall emits the stripe of column x. Transparent texels show the
// background behind them when the column background is active.
func (f *frame) drawWall(x int, h *ColumnHit) {
	id, ok := texture.CellID(h.Texture)
	if !h.Hit || h.Height <= 0 || !ok {
		return
	}
	darken := wallDarken(h.Distance)
	if !f.opts.Textures {
		f.sink.Fill(x, h.Top, x+1, h.Top+h.Height, sideColor(h.Side, darken))
		return
	}

	T := f.texSize
	dark := h.Side.Dark()
	texPos := h.texStart
	for y := h.Top; y < h.Top+h.Height; y++ {
		texY := int(texPos) & (T - 1)
		texPos += h.texStep
		if c, ok := f.atlas.Sample(id, texY*T+h.texColumn, dark, darken, f.elapsed); ok {
			f.sink.Point(x, y, c)
			continue
		}
		if f.fallThrough {
			f.behindWall(x, y, h)
		}
	}
}
