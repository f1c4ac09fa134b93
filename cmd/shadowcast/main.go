// Package main is the entry point for the interactive shadow viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/config"
	"chosenoffset.com/shadowcast/internal/game"
	"chosenoffset.com/shadowcast/internal/logger"
	ebitenrender "chosenoffset.com/shadowcast/internal/render/ebiten"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	logger.Info("=== Shadowcast ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.NewGame(cfg, renderer, inputMgr, logger.Named("game"))

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	if err := engine.RunGame(g); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
