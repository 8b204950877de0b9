package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"falkenstein/internal/mathutil"
	"falkenstein/internal/raycast"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "config.yaml"

// Config holds all configuration values
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	Fullscreen   bool   `yaml:"fullscreen"`
	ShowDebug    bool   `yaml:"show_debug"`
}

type RenderConfig struct {
	PixelSize         int     `yaml:"pixel_size"`
	AutoPixelSize     bool    `yaml:"auto_pixel_size"`
	MinPixelSize      int     `yaml:"min_pixel_size"`
	MaxPixelSize      int     `yaml:"max_pixel_size"`
	LowFPS            float64 `yaml:"low_fps"`  // grow pixels below this rate
	HighFPS           float64 `yaml:"high_fps"` // shrink pixels above this rate
	Textures          bool    `yaml:"textures"`
	Background        bool    `yaml:"background"`
	BackgroundTexture bool    `yaml:"background_texture"`
	RoundPixels       bool    `yaml:"round_pixels"`
	Strategy          string  `yaml:"strategy"`
	BackgroundMode    string  `yaml:"background_mode"`
	ParallelColumns   bool    `yaml:"parallel_columns"`
	Workers           int     `yaml:"workers"` // 0 = one per CPU
	MaxWidth          int     `yaml:"max_width"`
}

type CameraConfig struct {
	StartX          float64 `yaml:"start_x"`
	StartY          float64 `yaml:"start_y"`
	StartAngle      float64 `yaml:"start_angle"`
	StepSize        float64 `yaml:"step_size"`
	TurnStep        float64 `yaml:"turn_step"`
	InputIntervalMs int     `yaml:"input_interval_ms"`
	IdleRotation    bool    `yaml:"idle_rotation"`
}

type AssetsConfig struct {
	TextureDir  string `yaml:"texture_dir"`
	TextureSize int    `yaml:"texture_size"`
	LevelFile   string `yaml:"level_file"`
	WatchLevel  bool   `yaml:"watch_level"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Prefix string `yaml:"prefix"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			WindowTitle:  "Falkenstein",
			Resizable:    true,
			ShowDebug:    true,
		},
		Render: RenderConfig{
			PixelSize:         1,
			AutoPixelSize:     true,
			MinPixelSize:      1,
			MaxPixelSize:      16,
			LowFPS:            30,
			HighFPS:           100,
			Textures:          true,
			Background:        true,
			BackgroundTexture: true,
			Strategy:          "dda",
			BackgroundMode:    "auto",
			ParallelColumns:   true,
			MaxWidth:          raycast.MaxWidth,
		},
		Camera: CameraConfig{
			StartX:          4,
			StartY:          13,
			StartAngle:      103,
			StepSize:        0.03125,
			TurnStep:        1,
			InputIntervalMs: 20,
			IdleRotation:    true,
		},
		Assets: AssetsConfig{
			TextureDir:  "assets/textures",
			TextureSize: 32,
			LevelFile:   "assets/levels/falkenstein.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Prefix: "falkenstein",
		},
	}
}

// LoadConfig loads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}
	return Parse(data, filename)
}

// Parse decodes YAML over the defaults. name is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", name, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Find resolves the configuration.
// Search order: customPath -> ./config.yaml -> ~/.falkenstein/config.yaml -> built-in defaults.
// An explicit path must exist and parse; the implicit locations are skipped
// when missing. source names where the config came from.
func Find(customPath string) (config *Config, source string, err error) {
	if customPath != "" {
		config, err = LoadConfig(customPath)
		return config, customPath, err
	}

	candidates := []string{DefaultFile}
	if p := userConfigPath(); p != "" {
		candidates = append(candidates, p)
	}
	for _, path := range candidates {
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		config, err = LoadConfig(path)
		return config, path, err
	}
	return DefaultConfig(), "defaults", nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".falkenstein", DefaultFile)
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case r.MinPixelSize < 1 || r.MaxPixelSize > 16 || r.MinPixelSize > r.MaxPixelSize:
		return fmt.Errorf("%w: pixel size range [%d,%d] outside [1,16]", ErrInvalidConfig, r.MinPixelSize, r.MaxPixelSize)
	case r.PixelSize < r.MinPixelSize || r.PixelSize > r.MaxPixelSize:
		return fmt.Errorf("%w: pixel size %d outside [%d,%d]", ErrInvalidConfig, r.PixelSize, r.MinPixelSize, r.MaxPixelSize)
	case r.LowFPS >= r.HighFPS:
		return fmt.Errorf("%w: low_fps %v not below high_fps %v", ErrInvalidConfig, r.LowFPS, r.HighFPS)
	case r.MaxWidth < 1 || r.MaxWidth > raycast.MaxWidth:
		return fmt.Errorf("%w: max_width %d outside [1,%d]", ErrInvalidConfig, r.MaxWidth, raycast.MaxWidth)
	case r.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, r.Workers)
	case !mathutil.IsPowerOfTwo(c.Assets.TextureSize):
		return fmt.Errorf("%w: texture size %d is not a power of two", ErrInvalidConfig, c.Assets.TextureSize)
	case c.Camera.StepSize <= 0 || c.Camera.TurnStep <= 0:
		return fmt.Errorf("%w: step %v, turn %v", ErrInvalidConfig, c.Camera.StepSize, c.Camera.TurnStep)
	case c.Camera.InputIntervalMs <= 0:
		return fmt.Errorf("%w: input interval %dms", ErrInvalidConfig, c.Camera.InputIntervalMs)
	}
	if _, err := raycast.ParseStrategy(r.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := raycast.ParseBackgroundMode(r.BackgroundMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetInputInterval() time.Duration {
	return time.Duration(c.Camera.InputIntervalMs) * time.Millisecond
}

// RenderOptions converts the render section to renderer toggles. The names
// were checked by Validate.
func (c *Config) RenderOptions() raycast.Options {
	strategy, _ := raycast.ParseStrategy(c.Render.Strategy)
	mode, _ := raycast.ParseBackgroundMode(c.Render.BackgroundMode)
	return raycast.Options{
		Textures:          c.Render.Textures,
		Background:        c.Render.Background,
		BackgroundTexture: c.Render.BackgroundTexture,
		RoundPixels:       c.Render.RoundPixels,
		Strategy:          strategy,
		BackgroundMode:    mode,
	}
}
