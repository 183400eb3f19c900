package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/kambialo/infra/initializer"
	"github.com/amirasaad/kambialo/pkg/app"
	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	a := app.New(deps, cfg)
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Failed to release dependencies", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go a.RunSweeper(ctx)

	// Setup Fiber app with all routes and middleware
	fiberApp := webapi.SetupApp(a)

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		if err := fiberApp.Shutdown(); err != nil {
			logger.Error("Server shutdown failed", "error", err)
		}
	}()

	// Start the server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		slog.Group("cache", "redis", cfg.Cache.RedisURL != ""),
	)

	return fiberApp.Listen(addr)
}
