package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/kambialo/pkg/cache"
	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/pkg/history"
	"github.com/amirasaad/kambialo/pkg/provider"
	"github.com/amirasaad/kambialo/pkg/service/rates"
)

// Deps contains all the dependencies needed to build the App
type Deps struct {
	Cache        cache.Cache
	OfficialRate provider.OfficialRate
	MarketRate   provider.MarketRate
	Logger       *slog.Logger
	// Closers are released by App.Close in reverse order.
	Closers []io.Closer
}

type App struct {
	Deps         *Deps
	Config       *config.App
	RatesService *rates.Service
	Sessions     *history.Sessions
}

func New(deps *Deps, cfg *config.App) *App {
	var (
		maxEntries  = 100
		idleTimeout = 30 * time.Minute
	)
	if cfg != nil && cfg.History != nil {
		maxEntries = cfg.History.MaxEntries
		idleTimeout = cfg.History.SessionIdleTimeout
	}
	return &App{
		Deps:         deps,
		Config:       cfg,
		RatesService: rates.New(deps.OfficialRate, deps.MarketRate, deps.Logger),
		Sessions:     history.NewSessions(idleTimeout, history.WithMaxEntries(maxEntries)),
	}
}

// RunSweeper expires idle sessions until ctx is done.
func (a *App) RunSweeper(ctx context.Context) {
	interval := time.Minute
	if a.Config != nil && a.Config.History != nil && a.Config.History.SessionIdleTimeout > 0 {
		interval = a.Config.History.SessionIdleTimeout / 2
	}
	a.Sessions.Run(ctx, interval)
}

// Close releases the resources held by the dependencies.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
