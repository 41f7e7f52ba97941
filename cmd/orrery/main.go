// Package main is the entry point for the orrery viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/app"
	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/game"
	"github.com/Faultbox/orrery/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Orrery ===", zap.String("config", config.ResolvedPath()))
	logger.Sugar.Debugf("Config: %+v", cfg)

	orrery := app.New(cfg, assets.NewGLTFLoader(cfg.Assets.Root), logger.Named("orrery"))
	defer orrery.Close()

	g, err := game.New(cfg, orrery, logger.Named("viewer"))
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if cfg.Session.Watch {
		if path := config.ResolvedPath(); path == "" {
			logger.Warn("watch requested but no config file was found")
		} else {
			w, err := config.Watch(path, logger.Named("config"))
			if err != nil {
				logger.Error("config watch failed", zap.Error(err))
			} else {
				defer w.Close()
				g.Watch(w.Updates())
			}
		}
	}

	if cfg.Session.AutoTour {
		if err := orrery.StartTour(); err != nil {
			logger.Warn("tour not started", zap.Error(err))
		}
	}

	if err := g.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
