package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/kambialo/infra/initializer"
	"github.com/amirasaad/kambialo/internal/cli"
	"github.com/amirasaad/kambialo/pkg/app"
	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/pkg/history"
	log "github.com/charmbracelet/log"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	// Keep diagnostics off the prompt stream
	cfg.Log.Output = "stderr"

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	defer a.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := history.NewTracker(history.WithMaxEntries(cfg.History.MaxEntries))
	useColor := term.IsTerminal(int(os.Stdout.Fd()))

	return cli.New(a.RatesService, tracker, os.Stdin, os.Stdout, useColor).Run(ctx)
}
