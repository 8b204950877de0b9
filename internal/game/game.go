package game

import (
	"fmt"
	"math"
	"time"

	"falkenstein/internal/config"
	"falkenstein/internal/mathutil"
	"falkenstein/internal/raycast"
	"falkenstein/internal/texture"
	"falkenstein/internal/threading"
	"falkenstein/internal/world"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// idle rotation before the first input
	idleTurnInterval = 25 * time.Millisecond
	idleTurnStep     = 0.1
)

// Game is the ebiten host around the renderer. It owns the world, the
// camera and the runtime toggles.
type Game struct {
	config *config.Config
	logger *log.Logger

	world     *world.World
	camera    *raycast.Camera
	renderer  *raycast.Renderer
	threading *threading.ThreadingComponents
	watcher   *world.LevelWatcher

	input  *InputHandler
	screen *FrameRenderer

	opts          raycast.Options
	pixelSize     int
	autoPixelSize bool
	fullscreen    bool
	idle          bool
	quit          bool

	now        func() time.Time
	start      time.Time
	lastInput  time.Time
	lastIdle   time.Time
	lastResult raycast.Result

	outsideWidth  int
	outsideHeight int
}

// NewGame wires a game from configuration. The level is the one the world
// resets to; atlas supplies every texture.
func NewGame(cfg *config.Config, logger *log.Logger, atlas *texture.Atlas, level *world.Level) (*Game, error) {
	if atlas.Size() != cfg.Assets.TextureSize {
		return nil, fmt.Errorf("atlas size %d does not match texture_size %d", atlas.Size(), cfg.Assets.TextureSize)
	}

	g := &Game{
		config:        cfg,
		logger:        logger,
		world:         world.New(level),
		renderer:      raycast.NewRenderer(atlas),
		threading:     threading.NewThreadingComponents(cfg.Render),
		screen:        NewFrameRenderer(),
		opts:          cfg.RenderOptions(),
		pixelSize:     cfg.Render.PixelSize,
		autoPixelSize: cfg.Render.AutoPixelSize,
		fullscreen:    cfg.Display.Fullscreen,
		idle:          cfg.Camera.IdleRotation,
		now:           time.Now,
		outsideWidth:  cfg.Display.ScreenWidth,
		outsideHeight: cfg.Display.ScreenHeight,
	}
	g.input = NewInputHandler(g)
	g.start = g.now()

	g.world.OnWallOpened = func(x, y int) {
		logger.Info("wall opened", "x", x, "y", y, "collected", g.world.CollectedCount())
	}
	g.renderer.SetCollectionHandler(g.world)
	g.renderer.SetMonitor(g.threading.PerformanceMonitor)
	g.renderer.SetWorkerPool(g.threading.WorkerPool)
	g.resetCamera()

	if cfg.Assets.WatchLevel && cfg.Assets.LevelFile != "" {
		w, err := world.WatchLevel(cfg.Assets.LevelFile)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("failed to watch level: %w", err)
		}
		g.watcher = w
		logger.Info("watching level", "path", cfg.Assets.LevelFile)
	}
	return g, nil
}

// Close stops the worker pool and the level watcher.
func (g *Game) Close() {
	g.threading.Shutdown()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("closing level watcher", "error", err)
		}
	}
}

// resetCamera moves the camera to the level's start pose.
func (g *Game) resetCamera() {
	start := g.world.Start()
	g.camera = raycast.NewCamera(start.X, start.Y, start.Angle)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	now := g.now()

	g.pollLevelReload()
	g.input.HandleInput(now)
	g.idleRotate(now)
	g.checkExit()

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	frameTimer := g.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	now := g.now()
	b := screen.Bounds()
	vp := g.viewport(b.Dx(), b.Dy())
	g.lastResult = g.renderer.Render(g.screen.Sink(vp), vp, g.opts, g.scene(now))
	g.screen.Present(screen, vp, g.opts.RoundPixels)

	if !g.fullscreen && g.config.Display.ShowDebug {
		drawMinimap(screen, &g.world.Grid, g.camera)
		g.drawDebugLine(screen)
	}
	g.frameDone(now)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.outsideWidth, g.outsideHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// viewport derives the logical raster for a physical size.
func (g *Game) viewport(width, height int) raycast.Viewport {
	vp := raycast.NewViewport(width, height, g.pixelSize)
	vp.Width = min(vp.Width, g.config.Render.MaxWidth)
	return vp
}

// scene is the render input for the current state.
func (g *Game) scene(now time.Time) raycast.Scene {
	return raycast.Scene{
		Grid:      &g.world.Grid,
		Sprites:   g.world.Sprites,
		Camera:    g.camera,
		ElapsedMs: now.Sub(g.start).Milliseconds(),
	}
}

// Move steps the camera along its heading, forward for dir > 0. Steps into
// solid cells or off the map are refused.
func (g *Game) Move(dir float64) bool {
	step := dir * g.config.Camera.StepSize
	rad := mathutil.Radians(g.camera.Angle)
	x, y := g.camera.X+math.Cos(rad)*step, g.camera.Y+math.Sin(rad)*step
	if !g.world.CanEnter(x, y) {
		return false
	}
	g.camera.X, g.camera.Y = x, y
	return true
}

// Turn rotates the camera by whole turn steps, clockwise for dir > 0.
func (g *Game) Turn(dir float64) {
	g.camera.Turn(dir * g.config.Camera.TurnStep)
}

// idleRotate turns the camera slowly until the first input.
func (g *Game) idleRotate(now time.Time) {
	if !g.idle || now.Sub(g.lastIdle) < idleTurnInterval {
		return
	}
	g.camera.Turn(idleTurnStep)
	g.lastIdle = now
}

// checkExit resets the world once the camera reaches the exit cell.
func (g *Game) checkExit() {
	if !g.world.AtExit(g.camera.X, g.camera.Y) {
		return
	}
	g.logger.Info("exit reached", "collected", g.world.CollectedCount(), "elapsed", g.now().Sub(g.start).Round(time.Second))
	g.world.Reset()
	g.resetCamera()
	g.idle = g.config.Camera.IdleRotation
}

// pollLevelReload applies level file changes between frames.
func (g *Game) pollLevelReload() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		g.reloadLevel(path)
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("level watcher", "error", err)
		}
	default:
	}
}

// reloadLevel replaces the level. A broken file keeps the current one.
func (g *Game) reloadLevel(path string) {
	level, err := world.LoadLevel(path)
	if err != nil {
		g.logger.Error("level reload failed", "path", path, "error", err)
		return
	}
	g.world.Replace(level)
	g.resetCamera()
	g.logger.Info("level reloaded", "name", level.Name, "sprites", len(level.Sprites))
}

// SetPixelSize changes the pixel size within the configured range.
func (g *Game) SetPixelSize(size int) {
	size = max(g.config.Render.MinPixelSize, min(g.config.Render.MaxPixelSize, size))
	if size == g.pixelSize {
		return
	}
	g.logger.Debug("pixel size", "from", g.pixelSize, "to", size)
	g.pixelSize = size
}

// frameDone counts the frame. Once per sampling window it adjusts the pixel
// size, refreshes the title and reports slow frames.
func (g *Game) frameDone(now time.Time) {
	next, sampled := g.threading.PixelSizeAdvisor.Frame(now, g.pixelSize, g.autoPixelSize)
	if !sampled {
		return
	}
	if next != g.pixelSize {
		g.logger.Info("auto pixel size", "fps", fmt.Sprintf("%.0f", g.threading.PixelSizeAdvisor.FPS()), "from", g.pixelSize, "to", next)
		g.SetPixelSize(next)
	}
	ebiten.SetWindowTitle(g.Title())

	for _, alert := range g.threading.CheckPerformanceAlerts(g.config.Render.LowFPS) {
		g.logger.Debug("performance", "type", alert.Type, "message", alert.Message)
	}
}

// Title is the window title: viewport, pose and heading.
func (g *Game) Title() string {
	vp := g.viewport(g.outsideWidth, g.outsideHeight)
	return fmt.Sprintf("%s %dx%dx%d X %f Y %f A %.2f",
		g.config.Display.WindowTitle, vp.Width, vp.Height, vp.PixelSize, g.camera.X, g.camera.Y, g.camera.Angle)
}
