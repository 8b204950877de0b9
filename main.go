// falkenstein is a textured raycaster: find the exit of the castle.
//
// Usage:
//
//	falkenstein                 - Play (same as "falkenstein play")
//	falkenstein play            - Open the game window
//	falkenstein snapshot        - Render one frame to a PNG file
//
// Global flags:
//
//	--config <path>     - Config file (default: ./config.yaml, then ~/.falkenstein/config.yaml)
//	--log-level <level> - Override logging.level
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"falkenstein/internal/config"
	"falkenstein/internal/texture"
	"falkenstein/internal/world"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "falkenstein",
	Short: "Falkenstein - a textured raycaster",
	Long: `Falkenstein renders a small castle with a grid raycaster: textured walls,
floor and roof, an animated sky and collectible sprites that open walls.

Controls:
  Arrows     - Move and turn
  s / S      - Pixel size down / up
  1          - Floor and roof textures on/off
  2          - Background on/off
  3          - DDA or angle-step caster
  4          - Round pixels
  5          - Automatic pixel size
  t          - Textures on/off
  f          - Fullscreen
  q / Esc    - Quit`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// setup loads the config and creates the logger.
func setup() (*config.Config, *log.Logger, error) {
	cfg, source, err := config.Find(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          cfg.Logging.Prefix,
	})
	levelName := cfg.Logging.Level
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	logger.SetLevel(level)
	logger.Debug("config loaded", "source", source)
	return cfg, logger, nil
}

// loadAssets builds the texture atlas and the level. Missing texture files
// and a missing level file fall back to built-in data.
func loadAssets(cfg *config.Config, logger *log.Logger) (*texture.Atlas, *world.Level, error) {
	atlas, loaded, err := texture.LoadDir(cfg.Assets.TextureDir, cfg.Assets.TextureSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load textures: %w", err)
	}
	if len(loaded) < texture.Count {
		logger.Info("using built-in textures", "from_disk", len(loaded), "total", texture.Count, "dir", cfg.Assets.TextureDir)
	}

	if cfg.Assets.LevelFile != "" {
		level, err := world.LoadLevel(cfg.Assets.LevelFile)
		switch {
		case err == nil:
			logger.Info("level loaded", "name", level.Name, "path", cfg.Assets.LevelFile)
			return atlas, level, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, nil, err
		}
		logger.Warn("level file not found, using built-in level", "path", cfg.Assets.LevelFile)
	}

	level := world.DefaultLevel()
	level.Start = world.Pose{X: cfg.Camera.StartX, Y: cfg.Camera.StartY, Angle: cfg.Camera.StartAngle}
	if err := level.Validate(); err != nil {
		return nil, nil, fmt.Errorf("camera start: %w", err)
	}
	return atlas, level, nil
}
