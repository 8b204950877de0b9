package raycast

import (
	"math"
	"testing"

	"falkenstein/internal/raster"
	"falkenstein/internal/texture"
	"falkenstein/internal/threading/core"
	"falkenstein/internal/threading/monitoring"
	"falkenstein/internal/world"
)

// roomGrid returns a grid with solid borders and an empty interior.
func roomGrid() *world.Grid {
	g := &world.Grid{}
	for i := 0; i < world.MapWidth; i++ {
		g.Wall[0][i] = 1
		g.Wall[world.MapHeight-1][i] = 1
		g.Wall[i][0] = 1
		g.Wall[i][world.MapWidth-1] = 1
	}
	return g
}

// blackAtlas is an atlas of fully opaque black textures.
func blackAtlas(t *testing.T) *texture.Atlas {
	t.Helper()
	a, err := texture.NewAtlas(8, texture.Count)
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func builtinAtlas(t *testing.T) *texture.Atlas {
	t.Helper()
	a, err := texture.Generate(texture.DefaultSize)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return a
}

func TestCameraProjection(t *testing.T) {
	cam := NewCamera(1, 1, 0)
	cam.UpdateProjection(100, 100)
	px, py := cam.Plane()
	if got, want := math.Hypot(px, py), math.Tan(20*math.Pi/180); math.Abs(got-want) > 1e-9 {
		t.Errorf("square plane length = %v, want %v", got, want)
	}
	if dx, dy := cam.Dir(); dx != 1 || math.Abs(dy) > 1e-12 {
		t.Errorf("Dir() = (%v, %v), want (1, 0)", dx, dy)
	}

	cam.UpdateProjection(0, 100)
	px, py = cam.Plane()
	if got := math.Hypot(px, py); math.Abs(got-1/FarDistance) > 1e-12 {
		t.Errorf("zero-width plane length = %v, want %v", got, 1/FarDistance)
	}

	cam.Turn(-90)
	if cam.Angle != 270 {
		t.Errorf("Turn(-90) angle = %v, want 270", cam.Angle)
	}
}

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name          string
		w, h, ps      int
		wantW, wantH  int
		wantPixelSize int
	}{
		{"halved", 641, 481, 2, 320, 240, 2},
		{"odd height", 100, 101, 1, 100, 100, 1},
		{"width cap", 100000, 100, 1, MaxWidth, 100, 1},
		{"zero pixel size", 10, 10, 0, 10, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(tt.w, tt.h, tt.ps)
			if vp.Width != tt.wantW || vp.Height != tt.wantH || vp.PixelSize != tt.wantPixelSize {
				t.Errorf("NewViewport = %+v, want %dx%d/%d", vp, tt.wantW, tt.wantH, tt.wantPixelSize)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	if s, err := ParseStrategy("Angle"); err != nil || s != StrategyAngle {
		t.Errorf("ParseStrategy(Angle) = %v, %v", s, err)
	}
	if _, err := ParseStrategy("bsp"); err == nil {
		t.Error("ParseStrategy(bsp) succeeded")
	}
	if StrategyDDA.Next() != StrategyAngle || StrategyAngle.Next() != StrategyDDA {
		t.Error("Next does not alternate")
	}
	if m, err := ParseBackgroundMode("columns"); err != nil || m != BackgroundColumns {
		t.Errorf("ParseBackgroundMode(columns) = %v, %v", m, err)
	}
	if _, err := ParseBackgroundMode("sideways"); err == nil {
		t.Error("ParseBackgroundMode(sideways) succeeded")
	}
	if BackgroundAuto.Resolve(StrategyDDA) != BackgroundRows || BackgroundAuto.Resolve(StrategyAngle) != BackgroundColumns {
		t.Error("auto does not follow the strategy")
	}
	if BackgroundRows.Resolve(StrategyAngle) != BackgroundRows {
		t.Error("explicit mode overridden")
	}
}

func TestEmptyRoomAllColumnsHit(t *testing.T) {
	grid := roomGrid()
	vp := Viewport{Width: 64, Height: 48, PixelSize: 1}
	r := NewRenderer(blackAtlas(t))

	for _, strategy := range []Strategy{StrategyDDA, StrategyAngle} {
		for _, angle := range []float64{0, 30, 45, 90, 135, 200, 315} {
			for _, pos := range [][2]float64{{8.5, 8.5}, {1.5, 1.5}, {14.2, 3.7}} {
				opts := DefaultOptions()
				opts.Strategy = strategy
				cam := NewCamera(pos[0], pos[1], angle)
				res := r.Render(&raster.Recorder{}, vp, opts, Scene{Grid: grid, Camera: cam})
				for x, h := range res.Columns {
					if !h.Hit {
						t.Fatalf("%v at %v angle %v: column %d missed", strategy, pos, angle, x)
					}
					if h.Distance <= 0 || h.Distance > 22 {
						t.Fatalf("%v at %v angle %v: column %d distance %v", strategy, pos, angle, x, h.Distance)
					}
					if res.Depth[x] != h.Distance {
						t.Fatalf("depth[%d] = %v, want %v", x, res.Depth[x], h.Distance)
					}
					if h.TexU < 0 || h.TexU >= 1 {
						t.Fatalf("column %d TexU %v out of range", x, h.TexU)
					}
				}
			}
		}
	}
}

func TestStrategiesAgreeOnCenterColumn(t *testing.T) {
	grid := roomGrid()
	vp := Viewport{Width: 64, Height: 48, PixelSize: 1}
	r := NewRenderer(blackAtlas(t))

	for _, angle := range []float64{0, 30, 100, 210, 300} {
		cam := NewCamera(8.5, 8.5, angle)
		opts := DefaultOptions()
		dda := r.Render(&raster.Recorder{}, vp, opts, Scene{Grid: grid, Camera: cam}).Columns[vp.Width/2].Distance

		opts.Strategy = StrategyAngle
		ang := r.Render(&raster.Recorder{}, vp, opts, Scene{Grid: grid, Camera: cam}).Columns[(vp.Width-1)/2].Distance

		if math.Abs(dda-ang) > 0.01 {
			t.Errorf("angle %v: dda %v, angle-step %v", angle, dda, ang)
		}
	}
}

func TestOpenCorridor(t *testing.T) {
	vp := Viewport{Width: 64, Height: 200, PixelSize: 1}
	r := NewRenderer(blackAtlas(t))

	open := &world.Grid{}
	for _, strategy := range []Strategy{StrategyDDA, StrategyAngle} {
		opts := DefaultOptions()
		opts.Strategy = strategy
		res := r.Render(&raster.Recorder{}, vp, opts, Scene{Grid: open, Camera: NewCamera(4.5, 13.5, 0)})
		for x, h := range res.Columns {
			if h.Hit || res.Depth[x] != FarDistance || h.Height != 0 {
				t.Fatalf("%v: column %d = %+v in an open map", strategy, x, h)
			}
		}
	}

	// A far wall closing rows 11..15 at x = 12.
	corridor := &world.Grid{}
	for y := 11; y < world.MapHeight; y++ {
		corridor.Wall[y][12] = 1
	}
	for _, strategy := range []Strategy{StrategyDDA, StrategyAngle} {
		opts := DefaultOptions()
		opts.Strategy = strategy
		center := vp.Width / 2
		if strategy == StrategyAngle {
			center = (vp.Width - 1) / 2
		}

		last := 0
		for _, x := range []float64{4.5, 5.5, 6.5, 7.5} {
			res := r.Render(&raster.Recorder{}, vp, opts, Scene{Grid: corridor, Camera: NewCamera(x, 13.5, 0)})
			h := res.Columns[center]
			if !h.Hit {
				t.Fatalf("%v at x=%v: center column missed the far wall", strategy, x)
			}
			if h.Height <= last {
				t.Fatalf("%v at x=%v: height %d not above %d", strategy, x, h.Height, last)
			}
			last = h.Height
		}
	}
}

func TestSpriteOrder(t *testing.T) {
	tests := []struct {
		name    string
		sprites []world.Sprite
		want    []int
	}{
		{
			name:    "distinct distances",
			sprites: []world.Sprite{{X: 1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}, {X: 2, Y: 0}},
			want:    []int{1, 2, 3, 0},
		},
		{
			name:    "equal distances keep index order",
			sprites: []world.Sprite{{X: -2, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: -2}, {X: 3, Y: 0}},
			want:    []int{3, 0, 1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpriteOrder(0, 0, tt.sprites, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("SpriteOrder = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SpriteOrder = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// columnFrame is the minimal frame a caster needs.
func columnFrame(grid *world.Grid, cam *Camera, vp Viewport) *frame {
	return &frame{vp: vp, cam: cam, grid: grid, halfH: vp.HalfHeight(), texSize: 8}
}

func TestAngleTieReusesLastSide(t *testing.T) {
	// The centre ray at 45 degrees meets the far corner on both grid line
	// families at the same distance.
	vp := Viewport{Width: 65, Height: 48, PixelSize: 1}
	f := columnFrame(roomGrid(), NewCamera(8.5, 8.5, 45), vp)

	for _, preset := range []Side{SideLeftRight, SideUpDown} {
		last := preset
		h := castAngle(f, (vp.Width-1)/2, &last)
		if !h.Hit {
			t.Fatalf("preset %v: corner not hit", preset)
		}
		if want := 6.5 * math.Sqrt2; math.Abs(h.Distance-want) > 0.01 {
			t.Errorf("preset %v: distance %v, want %v", preset, h.Distance, want)
		}
		if h.Side != preset {
			t.Errorf("preset %v: side %v, want the previous column's side", preset, h.Side)
		}
		if last != preset {
			t.Errorf("preset %v: last side became %v", preset, last)
		}
	}
}

func TestAngleWideViewportWrapsAngle(t *testing.T) {
	// Column 0 of a 4096x100 viewport is 818.8 degrees left of the heading.
	// It must sample the wall like a camera turned to the wrapped angle.
	grid := roomGrid()
	wide := Viewport{Width: 4096, Height: 100, PixelSize: 1}
	narrow := Viewport{Width: 101, Height: 100, PixelSize: 1}

	var side Side
	got := castAngle(columnFrame(grid, NewCamera(8.3, 8.6, 5), wide), 0, &side)
	side = SideUnknown
	want := castAngle(columnFrame(grid, NewCamera(8.3, 8.6, 266.2), narrow), (narrow.Width-1)/2, &side)

	if !got.Hit || !want.Hit {
		t.Fatalf("hit = %v / %v, want both", got.Hit, want.Hit)
	}
	if got.CellX != want.CellX || got.CellY != want.CellY || got.Side != want.Side {
		t.Fatalf("wide hit cell (%d,%d) side %v, want (%d,%d) side %v",
			got.CellX, got.CellY, got.Side, want.CellX, want.CellY, want.Side)
	}
	if math.Abs(got.TexU-want.TexU) > 1e-9 {
		t.Errorf("wide TexU %v, want %v", got.TexU, want.TexU)
	}
}

func TestTransparentWallShowsSkyAndGround(t *testing.T) {
	atlas := blackAtlas(t)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			atlas.Set(texture.Stone, x, y, 255, 0, 255)
			atlas.Set(texture.Sky, x, y, 0, 0, 200)
			atlas.Set(texture.Ground, x, y, 0, 200, 0)
		}
	}
	opts := DefaultOptions()
	opts.Strategy = StrategyAngle
	vp := Viewport{Width: 33, Height: 24, PixelSize: 1}

	rec := &raster.Recorder{}
	res := NewRenderer(atlas).Render(rec, vp, opts, Scene{Grid: roomGrid(), Camera: NewCamera(8.5, 8.5, 0)})

	x := (vp.Width - 1) / 2
	h := res.Columns[x]
	if !h.Hit || h.Height == 0 {
		t.Fatalf("centre column %+v has no wall", h)
	}
	rows := map[int]bool{}
	for _, op := range rec.InColumn(x) {
		y := op.Y0
		if y < h.Top || y >= h.Top+h.Height {
			continue
		}
		rows[y] = true
		c := op.Color
		if y < vp.HalfHeight() {
			if c.R != 0 || c.G != 0 || c.B == 0 {
				t.Errorf("wall row %d = %v, want sky blue", y, c)
			}
		} else if c.R != 0 || c.B != 0 || c.G == 0 {
			t.Errorf("wall row %d = %v, want ground green", y, c)
		}
	}
	if len(rows) != h.Height {
		t.Errorf("%d of %d wall rows drawn", len(rows), h.Height)
	}
}

func TestSpriteOcclusion(t *testing.T) {
	grid := roomGrid()
	grid.Wall[8][4] = 1 // pillar hiding the left part of the sprite

	vp := Viewport{Width: 64, Height: 48, PixelSize: 1}
	cam := NewCamera(2.5, 8.8, 0)
	sprites := []world.Sprite{{X: 6.5, Y: 9.3, Texture: texture.WallOpener01}}

	// Walls and floor are fills with textures and background off, so every
	// point comes from the sprite.
	opts := DefaultOptions()
	opts.Textures = false
	opts.Background = false

	rec := &raster.Recorder{}
	res := NewRenderer(blackAtlas(t)).Render(rec, vp, opts, Scene{Grid: grid, Sprites: sprites, Camera: cam})

	drawn := map[int]bool{}
	for _, op := range rec.Ops {
		if op.Kind == raster.OpPoint {
			drawn[op.X0] = true
		}
	}

	f := &frame{vp: vp, cam: cam}
	p, ok := f.project(&sprites[0])
	if !ok {
		t.Fatal("sprite in front of the camera not projected")
	}
	left := p.screenX - p.size/2
	var visible, hidden int
	for c := max(0, left); c < min(vp.Width-1, p.screenX+p.size/2); c++ {
		want := p.depth < res.Depth[c]
		if drawn[c] != want {
			t.Errorf("column %d: drawn %v, sprite depth %v, wall depth %v", c, drawn[c], p.depth, res.Depth[c])
		}
		if want {
			visible++
		} else {
			hidden++
		}
	}
	if visible == 0 || hidden == 0 {
		t.Fatalf("want a partly hidden sprite, got %d visible and %d hidden columns", visible, hidden)
	}
	if res.SpritesDrawn != 1 {
		t.Errorf("SpritesDrawn = %d, want 1", res.SpritesDrawn)
	}
}

func TestSpriteBehindCameraSkipped(t *testing.T) {
	rec := &raster.Recorder{}
	opts := DefaultOptions()
	opts.Textures = false
	opts.Background = false
	sprites := []world.Sprite{{X: 3.5, Y: 8.5}, {X: 8.5, Y: 8.5}}
	res := NewRenderer(blackAtlas(t)).Render(rec, Viewport{Width: 32, Height: 24, PixelSize: 1}, opts,
		Scene{Grid: roomGrid(), Sprites: sprites, Camera: NewCamera(8.5, 8.5, 0)})
	for _, op := range rec.Ops {
		if op.Kind == raster.OpPoint {
			t.Fatalf("sprite behind or on the camera drew %v", op)
		}
	}
	if res.SpritesDrawn != 0 {
		t.Errorf("SpritesDrawn = %d, want 0", res.SpritesDrawn)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	w := world.New(world.DefaultLevel())
	atlas := builtinAtlas(t)
	vp := Viewport{Width: 80, Height: 60, PixelSize: 2}

	for _, strategy := range []Strategy{StrategyDDA, StrategyAngle} {
		for _, mode := range []BackgroundMode{BackgroundRows, BackgroundColumns} {
			opts := DefaultOptions()
			opts.Strategy = strategy
			opts.BackgroundMode = mode

			var a, b raster.Recorder
			scene := Scene{Grid: &w.Grid, Sprites: w.Sprites, Camera: NewCamera(4, 13, 103), ElapsedMs: 12345}
			NewRenderer(atlas).Render(&a, vp, opts, scene)
			pool := core.NewStartedPool(4)
			r := NewRenderer(atlas)
			r.SetWorkerPool(pool)
			r.Render(&b, vp, opts, scene)
			pool.Stop()

			if len(a.Ops) == 0 {
				t.Fatalf("%v/%v: nothing drawn", strategy, mode)
			}
			if !a.Equal(&b) {
				t.Errorf("%v/%v: two renders of the same scene differ", strategy, mode)
			}
		}
	}
}

func TestCollectionExactlyOnce(t *testing.T) {
	w := world.New(world.DefaultLevel())
	opened := 0
	w.OnWallOpened = func(x, y int) { opened++ }

	r := NewRenderer(builtinAtlas(t))
	r.SetCollectionHandler(w)
	mon := monitoring.NewPerformanceMonitor()
	r.SetMonitor(mon)

	s := w.Sprites[0]
	cam := NewCamera(s.X, s.Y, 0)
	vp := Viewport{Width: 40, Height: 30, PixelSize: 1}

	res := r.Render(&raster.Recorder{}, vp, DefaultOptions(), Scene{Grid: &w.Grid, Sprites: w.Sprites, Camera: cam})
	if len(res.Collected) != 1 || res.Collected[0] != 0 {
		t.Fatalf("Collected = %v, want [0]", res.Collected)
	}
	if !w.Sprites[0].Collected {
		t.Fatal("sprite not marked collected")
	}
	if got := w.Grid.Wall[s.OpenY][s.OpenX]; got != 0 {
		t.Fatalf("opened wall cell = %d, want 0", got)
	}

	for i := 0; i < 3; i++ {
		res = r.Render(&raster.Recorder{}, vp, DefaultOptions(), Scene{Grid: &w.Grid, Sprites: w.Sprites, Camera: cam})
		if len(res.Collected) != 0 {
			t.Fatalf("render %d collected %v again", i, res.Collected)
		}
	}
	if opened != 1 {
		t.Errorf("wall opened %d times, want 1", opened)
	}
	if m := mon.GetCurrentMetrics(); m.Columns != uint64(vp.Width) {
		t.Errorf("monitor columns = %d, want %d", m.Columns, vp.Width)
	}
}

func TestFlatFloorWithoutBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = false
	opts.Textures = false
	vp := Viewport{Width: 16, Height: 12, PixelSize: 1}

	rec := &raster.Recorder{}
	NewRenderer(blackAtlas(t)).Render(rec, vp, opts, Scene{Grid: roomGrid(), Camera: NewCamera(8.5, 8.5, 0)})
	want := raster.Op{Kind: raster.OpFill, X0: 0, Y0: 6, X1: 16, Y1: 12, Color: flatFloor}
	if len(rec.Ops) == 0 || rec.Ops[0] != want {
		t.Fatalf("first op = %v, want %v", rec.Ops[0], want)
	}

	opts.RoundPixels = true
	rec.Reset()
	NewRenderer(blackAtlas(t)).Render(rec, vp, opts, Scene{Grid: roomGrid(), Camera: NewCamera(8.5, 8.5, 0)})
	for _, op := range rec.Ops[:16*6] {
		if op.Kind != raster.OpPoint || op.Color != flatFloor {
			t.Fatalf("round floor op %v, want grey points", op)
		}
	}
}

func TestBackgroundFallbackColors(t *testing.T) {
	opts := DefaultOptions()
	opts.Textures = false
	opts.BackgroundMode = BackgroundRows
	vp := Viewport{Width: 16, Height: 12, PixelSize: 1}

	grid := &world.Grid{}
	for y := range grid.Floor {
		for x := range grid.Floor[y] {
			grid.Floor[y][x] = 1
		}
	}

	rec := &raster.Recorder{}
	NewRenderer(blackAtlas(t)).Render(rec, vp, opts, Scene{Grid: grid, Camera: NewCamera(8.5, 8.5, 45)})
	for _, op := range rec.Ops {
		c := op.Color
		switch {
		case op.Y0 == vp.Height-1:
			// nearest floor row lies inside the mapped floor: magenta
			if c.G != 0 || c.R != c.B || c.R == 0 {
				t.Fatalf("bottom row %v not magenta", op)
			}
		case op.Y0 < vp.HalfHeight():
			// no roof cells: blue sky
			if c.R != 0 || c.G != 0 || c.B == 0 {
				t.Fatalf("upper half %v not blue", op)
			}
		}
	}
}

func TestSideColors(t *testing.T) {
	if c := sideColor(SideUpDown, 1); c.R != 255 || c.G != 0 {
		t.Errorf("up/down = %v, want red", c)
	}
	if c := sideColor(SideLeftRight, 2); c.G != 127 || c.R != 0 {
		t.Errorf("left/right = %v, want half green", c)
	}
	if c := sideColor(SideUnknown, 1); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("unknown = %v, want black", c)
	}
}

func TestSkyOffsets(t *testing.T) {
	tests := []struct {
		angle       float64
		elapsed     int64
		ground, sky int
	}{
		{0, 0, 0, 0},
		{0, 250, 0, 2},
		{90, 250, 16, 18},
		{180, 250, 0, 2},
	}
	for _, tt := range tests {
		got := newSkyOffsets(tt.angle, tt.elapsed, 32)
		if got.ground != tt.ground || got.sky != tt.sky {
			t.Errorf("newSkyOffsets(%v, %v) = %+v, want ground %d sky %d", tt.angle, tt.elapsed, got, tt.ground, tt.sky)
		}
	}
}

func TestWrapTexel(t *testing.T) {
	for _, tt := range []struct{ in, want int }{{0, 0}, {31, 31}, {32, 0}, {-1, 31}, {-33, 31}} {
		if got := wrapTexel(tt.in, 32); got != tt.want {
			t.Errorf("wrapTexel(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
