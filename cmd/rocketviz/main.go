// Package main is the entry point for the rocket viewer server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/app"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/bridge"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/config"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	opts := logger.Options{Level: cfg.Logging.Level, Console: true, JSON: cfg.Logging.JSON}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Rocket Parts Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer stopped normally")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := bridge.NewHub(cfg.Server)
	viewer, err := app.New(cfg, hub)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bridge.Serve(ctx, cfg.Server.Addr, hub, bridge.NewHandler(hub, viewer.Registry))
	})
	g.Go(func() error {
		return viewer.Run(ctx, hub.Events())
	})
	return g.Wait()
}
