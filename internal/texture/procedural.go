package texture

// Built-in textures used when no bitmap is found on disk. Every pattern is a
// pure function of (id, x, y) so frames stay reproducible.

// Generate builds the full built-in atlas.
func Generate(size int) (*Atlas, error) {
	a, err := NewAtlas(size, Count)
	if err != nil {
		return nil, err
	}
	for id := 0; id < Count; id++ {
		GenerateOne(a, id)
	}
	return a, nil
}

// GenerateOne paints the built-in pattern for id into a.
func GenerateOne(a *Atlas, id int) {
	n := a.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			r, g, b := pattern(id, x, y, n)
			a.Set(id, x, y, r, g, b)
		}
	}
}

func noise(id, x, y int) int {
	h := uint32(id)*374761393 + uint32(x)*668265263 + uint32(y)*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	return int((h ^ (h >> 16)) & 0xff)
}

func shade(v, n int) uint8 {
	v += n
	if v < 0 {
		return 0
	}
	if v > 254 {
		return 254
	}
	return uint8(v)
}

func stoneBlock(id, x, y, n int) (uint8, uint8, uint8) {
	q := n / 4
	mortar := y%q == 0 || (x+(y/q%2)*q/2)%(q*2) == 0
	if mortar {
		return 70, 70, 74
	}
	v := 120 + noise(id, x, y)/6
	return shade(v, 0), shade(v, -2), shade(v, 4)
}

func keyShape(x, y, n int, r, g, b uint8) (uint8, uint8, uint8) {
	cx, cy := n/2, n/3
	dx, dy := x-cx, y-cy
	rad := n / 6
	switch {
	case dx*dx+dy*dy <= rad*rad && dx*dx+dy*dy >= (rad/2)*(rad/2):
		return r, g, b
	case x >= cx-1 && x <= cx && y > cy+rad/2 && y < n-n/8:
		return r, g, b
	case y >= n-n/4 && y < n-n/8 && x > cx && x <= cx+n/6:
		return r, g, b
	}
	return Transparent[0], Transparent[1], Transparent[2]
}

func pattern(id, x, y, n int) (uint8, uint8, uint8) {
	z := noise(id, x, y)
	switch id {
	case Stone:
		return stoneBlock(id, x, y, n)
	case RoughWall:
		v := 90 + z/3
		return shade(v, 0), shade(v, 0), shade(v, -6)
	case Brick:
		q := n / 4
		if y%q == 0 || (x+(y/q%2)*q)%(q*2) == 0 {
			return 180, 170, 150
		}
		return shade(140+z/8, 0), shade(50+z/16, 0), shade(40, 0)
	case Banner:
		if x > n/4 && x < n-n/4 && y > n/8 && y < n-n/8 {
			if (x-n/2)*(x-n/2)+(y-n/2)*(y-n/2) < n*n/36 {
				return 230, 200, 40
			}
			return shade(150+z/10, 0), 20, 30
		}
		return stoneBlock(id, x, y, n)
	case Flagstone:
		q := n / 2
		if x%q == 0 || y%q == 0 {
			return 60, 55, 50
		}
		v := 110 + z/5
		return shade(v, 0), shade(v, -8), shade(v, -16)
	case Ground:
		return shade(30+z/8, 0), shade(110+z/4, 0), shade(30, z/16)
	case Roof:
		if y%(n/4) == 0 {
			return 50, 30, 20
		}
		return shade(120+z/8, 0), shade(70+z/10, 0), 40
	case Candle:
		switch {
		case x >= n/2-2 && x <= n/2+1 && y >= n/2 && y < n-n/4:
			return 235, 230, 210
		case x >= n/2-3 && x <= n/2+2 && y >= n/4 && y < n/2:
			return Transparent[0], Transparent[1], Transparent[2]
		}
		return stoneBlock(id, x, y, n)
	case Wood, Door:
		if id == Door && (x < 2 || x >= n-2 || y < 2) {
			return 40, 25, 15
		}
		v := 100 + (x*7)%23 + z/12
		return shade(v, 0), shade(v, -40), shade(v, -75)
	case Gate:
		if x%(n/4) < 2 || y%(n/2) < 2 {
			return 45, 45, 50
		}
		return Transparent[0], Transparent[1], Transparent[2]
	case Moss:
		r, g, b := stoneBlock(id, x, y, n)
		if z > 170 || y > n-n/4 && z > 90 {
			return r / 2, shade(int(g), 30), b / 2
		}
		return r, g, b
	case ColorLine:
		if y >= n/2-1 && y <= n/2 {
			return Transparent[0], Transparent[1], Transparent[2]
		}
		return stoneBlock(id, x, y, n)
	case Sky:
		v := 150 + y*60/n
		if z > 200 && y < n/2 {
			return 235, 235, 245
		}
		return shade(v/3, 0), shade(v/2+40, 0), shade(v+40, 0)
	case WallOpener01:
		return keyShape(x, y, n, 230, 200, 30)
	case WallOpener02:
		return keyShape(x, y, n, 200, 200, 210)
	case WallOpener03:
		return keyShape(x, y, n, 200, 110, 50)
	case Logo:
		q := n / 8
		switch {
		case x >= 2*q && x < 3*q && y >= q && y < n-q:
			return 220, 40, 40
		case y >= q && y < 2*q && x >= 2*q && x < n-2*q:
			return 220, 40, 40
		case y >= 4*q && y < 5*q && x >= 2*q && x < n-3*q:
			return 220, 40, 40
		}
		return Transparent[0], Transparent[1], Transparent[2]
	}
	// decorative variants tint the stone block by id
	r, g, b := stoneBlock(id, x, y, n)
	tint := (id * 37) % 60
	return shade(int(r), tint-30), shade(int(g), 20-tint/2), shade(int(b), tint/3-10)
}
