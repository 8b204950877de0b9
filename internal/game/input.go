package game

import (
	"time"

	"falkenstein/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
)

// Action is a one-shot command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionPixelSizeDown
	ActionPixelSizeUp
	ActionToggleBackgroundTexture
	ActionToggleBackground
	ActionToggleStrategy
	ActionToggleRoundPixels
	ActionToggleAutoPixelSize
	ActionToggleTextures
	ActionToggleFullscreen
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:                    "none",
	ActionPixelSizeDown:           "pixel size down",
	ActionPixelSizeUp:             "pixel size up",
	ActionToggleBackgroundTexture: "background texture",
	ActionToggleBackground:        "background",
	ActionToggleStrategy:          "strategy",
	ActionToggleRoundPixels:       "round pixels",
	ActionToggleAutoPixelSize:     "auto pixel size",
	ActionToggleTextures:          "textures",
	ActionToggleFullscreen:        "fullscreen",
	ActionQuit:                    "quit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// keyBinding maps a key, optionally with shift held, to an action.
type keyBinding struct {
	key    ebiten.Key
	shift  bool
	action Action
}

// s and S share a key and differ by shift.
var keyBindings = []keyBinding{
	{ebiten.KeyS, false, ActionPixelSizeDown},
	{ebiten.KeyS, true, ActionPixelSizeUp},
	{ebiten.Key1, false, ActionToggleBackgroundTexture},
	{ebiten.Key2, false, ActionToggleBackground},
	{ebiten.Key3, false, ActionToggleStrategy},
	{ebiten.Key4, false, ActionToggleRoundPixels},
	{ebiten.Key5, false, ActionToggleAutoPixelSize},
	{ebiten.KeyT, false, ActionToggleTextures},
	{ebiten.KeyF, false, ActionToggleFullscreen},
	{ebiten.KeyQ, false, ActionQuit},
	{ebiten.KeyEscape, false, ActionQuit},
}

// InputHandler handles all user input for the game
type InputHandler struct {
	game *Game
	keys keytracker.KeySet
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *Game) *InputHandler {
	return &InputHandler{game: game}
}

// HandleInput processes all input for the current frame
func (ih *InputHandler) HandleInput(now time.Time) {
	ih.handleActionKeys()
	ih.handleMovementInput(now)
}

// handleActionKeys fires actions on key press edges. Every bound key is
// polled each frame so the edge state stays current.
func (ih *InputHandler) handleActionKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	pressed := map[ebiten.Key]bool{}
	for _, b := range keyBindings {
		if _, seen := pressed[b.key]; !seen {
			pressed[b.key] = ih.keys.JustPressed(b.key)
		}
	}
	for _, b := range keyBindings {
		if pressed[b.key] && (b.key != ebiten.KeyS || b.shift == shift) {
			ih.game.Apply(b.action)
		}
	}
}

// handleMovementInput moves and turns with the arrow keys, sampled at the
// configured input interval so speed does not depend on the frame rate.
func (ih *InputHandler) handleMovementInput(now time.Time) {
	g := ih.game
	if now.Sub(g.lastInput) < g.config.GetInputInterval() {
		return
	}

	moved := false
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.Move(1)
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.Move(-1)
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.Turn(-1)
		moved = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.Turn(1)
		moved = true
	}
	if moved {
		g.idle = false
	}
	g.lastInput = now
}

// Apply runs one action. Any action ends the idle rotation.
func (g *Game) Apply(a Action) {
	g.idle = false
	switch a {
	case ActionPixelSizeDown:
		g.SetPixelSize(g.pixelSize - 1)
	case ActionPixelSizeUp:
		g.SetPixelSize(g.pixelSize + 1)
	case ActionToggleBackgroundTexture:
		g.opts.BackgroundTexture = !g.opts.BackgroundTexture
	case ActionToggleBackground:
		g.opts.Background = !g.opts.Background
	case ActionToggleStrategy:
		g.opts.Strategy = g.opts.Strategy.Next()
	case ActionToggleRoundPixels:
		g.opts.RoundPixels = !g.opts.RoundPixels
	case ActionToggleAutoPixelSize:
		g.autoPixelSize = !g.autoPixelSize
		g.threading.PixelSizeAdvisor.Reset()
	case ActionToggleTextures:
		g.opts.Textures = !g.opts.Textures
	case ActionToggleFullscreen:
		g.fullscreen = !g.fullscreen
		ebiten.SetFullscreen(g.fullscreen)
	case ActionQuit:
		g.quit = true
	default:
		return
	}
	g.logger.Debug("toggle", "action", a, "strategy", g.opts.Strategy, "pixel_size", g.pixelSize)
}
