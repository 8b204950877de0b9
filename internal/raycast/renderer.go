package raycast

import (
	"context"

	"falkenstein/internal/texture"
	"falkenstein/internal/threading/core"
	"falkenstein/internal/threading/monitoring"
	"falkenstein/internal/world"
)

// frame is the per-call render context shared by the casters and the
// compositing passes. It is read-only while columns are cast.
type frame struct {
	vp    Viewport
	opts  Options
	cam   *Camera
	grid  *world.Grid
	atlas *texture.Atlas
	sink  Sink
	depth DepthBuffer

	halfH       int
	texSize     int
	elapsed     int64
	sky         skyOffsets
	fallThrough bool
}

// casters maps each strategy to its column caster. The Side pointer carries
// the tie-break orientation from one column to the next.
var casters = [...]func(f *frame, x int, lastSide *Side) ColumnHit{
	StrategyDDA:   castDDA,
	StrategyAngle: castAngle,
}

// CollectionHandler applies the effects of a collected sprite. It reports
// whether this call was the one that collected it.
type CollectionHandler interface {
	SpriteCollected(index int) bool
}

// Scene is everything a frame is rendered from.
type Scene struct {
	Grid      *world.Grid
	Sprites   []world.Sprite
	Camera    *Camera
	ElapsedMs int64
}

// Result describes a rendered frame. Columns and Depth alias renderer
// buffers and are valid until the next Render call.
type Result struct {
	Columns      []ColumnHit
	Depth        DepthBuffer
	Collected    []int
	SpritesDrawn int
}

// Renderer draws frames into a Sink. It owns the depth buffer and scratch
// slices, so one Renderer must not be used by two goroutines at once.
type Renderer struct {
	atlas   *texture.Atlas
	pool    *core.WorkerPool
	monitor *monitoring.PerformanceMonitor
	handler CollectionHandler

	depth   DepthBuffer
	columns []ColumnHit
	order   []int
}

// NewRenderer creates a renderer sampling from atlas.
func NewRenderer(atlas *texture.Atlas) *Renderer {
	return &Renderer{atlas: atlas}
}

// SetWorkerPool enables parallel casting of DDA columns. nil disables it.
func (r *Renderer) SetWorkerPool(pool *core.WorkerPool) { r.pool = pool }

// SetMonitor sets the monitor receiving stage timings.
func (r *Renderer) SetMonitor(m *monitoring.PerformanceMonitor) { r.monitor = m }

// SetCollectionHandler sets the collaborator notified of collected sprites.
func (r *Renderer) SetCollectionHandler(h CollectionHandler) { r.handler = h }

// Render draws one frame: background, then walls, then sprites. Collected
// sprites are reported to the collection handler after drawing.
func (r *Renderer) Render(sink Sink, vp Viewport, opts Options, scene Scene) Result {
	if vp.Empty() || scene.Camera == nil || scene.Grid == nil {
		return Result{}
	}
	vp.Width = min(vp.Width, MaxWidth)

	cam := scene.Camera
	cam.UpdateProjection(vp.Width, vp.Height)
	r.depth.Reset(vp.Width)

	f := &frame{
		vp:      vp,
		opts:    opts,
		cam:     cam,
		grid:    scene.Grid,
		atlas:   r.atlas,
		sink:    sink,
		depth:   r.depth,
		halfH:   vp.HalfHeight(),
		texSize: r.atlas.Size(),
		elapsed: scene.ElapsedMs,
	}
	f.sky = newSkyOffsets(cam.Angle, scene.ElapsedMs, f.texSize)
	mode := opts.BackgroundMode.Resolve(opts.Strategy)
	f.fallThrough = opts.Background && mode == BackgroundColumns

	bg := r.monitor.Start(monitoring.StageBackground)
	switch {
	case !opts.Background:
		f.drawFlatFloor()
	case mode == BackgroundRows:
		f.drawRowsBackground()
	}
	bg.End()

	cast := r.monitor.Start(monitoring.StageRaycast)
	r.castColumns(f)
	cast.End()

	for x := range r.columns {
		h := &r.columns[x]
		f.drawWall(x, h)
		if f.fallThrough {
			f.drawColumnBackground(x, h)
		}
	}

	spr := r.monitor.Start(monitoring.StageSprites)
	r.order = SpriteOrder(cam.X, cam.Y, scene.Sprites, r.order)
	collected, drawn := f.drawSprites(scene.Sprites, r.order)
	spr.End()

	if r.handler != nil {
		for _, i := range collected {
			r.handler.SpriteCollected(i)
		}
	}
	r.monitor.RecordFrame(vp.Width, drawn, vp.PixelSize)

	return Result{
		Columns:      r.columns,
		Depth:        r.depth,
		Collected:    collected,
		SpritesDrawn: drawn,
	}
}

// castColumns fills r.columns and the depth buffer. DDA columns are
// independent and go to the worker pool when one is set; the angle caster
// needs the previous column's side and runs in order.
func (r *Renderer) castColumns(f *frame) {
	W := f.vp.Width
	if cap(r.columns) < W {
		r.columns = make([]ColumnHit, W)
	}
	r.columns = r.columns[:W]
	caster := casters[f.opts.Strategy]

	if f.opts.Strategy == StrategyDDA && r.pool != nil {
		r.pool.ParallelRange(context.Background(), 0, W, func(lo, hi int) {
			var side Side
			for x := lo; x < hi; x++ {
				r.columns[x] = caster(f, x, &side)
			}
		})
	} else {
		var side Side
		for x := 0; x < W; x++ {
			r.columns[x] = caster(f, x, &side)
		}
	}

	for x := range r.columns {
		if r.columns[x].Hit {
			r.depth[x] = r.columns[x].Distance
		}
	}
}
