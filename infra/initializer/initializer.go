package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	infra_cache "github.com/amirasaad/kambialo/infra/cache"
	infra_provider "github.com/amirasaad/kambialo/infra/provider"
	"github.com/amirasaad/kambialo/pkg/app"
	"github.com/amirasaad/kambialo/pkg/cache"
	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/pkg/provider"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	deps.Cache, err = newRateCache(cfg.Cache, deps, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate cache: %w", err)
	}

	var official provider.OfficialRate
	if cfg.OfficialRate.Static > 0 {
		logger.Info("Using static official rate", "rate", cfg.OfficialRate.Static)
		official = infra_provider.NewStaticOfficialRate(cfg.OfficialRate.Static)
	} else {
		official = infra_provider.NewOfficialRateProvider(*cfg.OfficialRate, logger)
	}
	deps.OfficialRate = infra_provider.NewCachedOfficialRate(
		official,
		deps.Cache,
		cfg.OfficialRate.CacheTTL,
		logger,
	)

	var market provider.MarketRate
	if cfg.MarketRate.Static > 0 {
		logger.Info("Using static market rate", "rate", cfg.MarketRate.Static)
		market = infra_provider.NewStaticMarketRate(cfg.MarketRate.Static)
	} else {
		market = infra_provider.NewBinanceP2PProvider(*cfg.MarketRate, logger)
	}
	deps.MarketRate = infra_provider.NewCachedMarketRate(
		market,
		deps.Cache,
		cfg.MarketRate.CacheTTL,
		logger,
	)

	return deps, nil
}

// newRateCache uses Redis when configured and falls back to memory otherwise.
func newRateCache(cfg *config.Cache, deps *app.Deps, logger *slog.Logger) (cache.Cache, error) {
	if cfg.RedisURL != "" {
		redisCache, err := infra_cache.NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, logger)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		logger.Info("Using Redis rate cache", "prefix", cfg.Prefix)
		deps.Closers = append(deps.Closers, redisCache)
		return redisCache, nil
	}

	logger.Info("Using in-memory rate cache", "cleanup_interval", cfg.CleanupInterval)
	memoryCache := infra_cache.NewMemoryCache(cfg.CleanupInterval)
	deps.Closers = append(deps.Closers, memoryCache)
	return memoryCache, nil
}
