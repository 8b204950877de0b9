package main

import (
	"falkenstein/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	atlas, level, err := loadAssets(cfg, logger)
	if err != nil {
		return err
	}

	g, err := game.NewGame(cfg, logger, atlas, level)
	if err != nil {
		return err
	}
	defer g.Close()

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(cfg.Display.Fullscreen)

	logger.Info("starting", "strategy", cfg.Render.Strategy, "pixel_size", cfg.Render.PixelSize)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	logger.Info("bye")
	return nil
}
