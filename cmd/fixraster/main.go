// Package main is the entry point for the fixraster viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/fixraster/internal/config"
	"github.com/Faultbox/fixraster/internal/game"
	"github.com/Faultbox/fixraster/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	// run returns before exiting so its deferred cleanup always runs.
	err = run(cfg)
	if err != nil {
		logger.Error("fatal error", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger.Info("=== fixraster ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if path := config.SavePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("path", path))
		return nil
	}

	m, err := game.LoadMesh(cfg)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}

	if cfg.Headless() {
		if _, err := game.RunHeadless(cfg, m, nil); err != nil {
			return fmt.Errorf("headless capture failed: %w", err)
		}
		return nil
	}

	g, err := game.New(cfg, m)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		return fmt.Errorf("render loop error: %w", err)
	}

	logger.Info("closed normally")
	return nil
}
