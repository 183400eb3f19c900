package initializer

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Log:          &config.Log{Level: 8, Format: "text"},
		Server:       &config.Server{Host: "localhost", Port: 3000},
		RateLimit:    &config.RateLimit{MaxRequests: 10, Window: time.Second},
		MarketRate:   &config.MarketRate{Static: 9, CacheTTL: time.Minute},
		OfficialRate: &config.OfficialRate{Static: 8, CacheTTL: time.Hour},
		Cache:        &config.Cache{},
		History:      &config.History{MaxEntries: 10, SessionIdleTimeout: time.Minute},
	}
}

func TestInitializeDependencies_StaticProviders(t *testing.T) {
	deps, err := InitializeDependencies(testConfig())
	require.NoError(t, err)
	require.NotNil(t, deps.Logger)
	require.NotNil(t, deps.Cache)
	require.Len(t, deps.Closers, 1)
	defer deps.Closers[0].Close() //nolint:errcheck

	assert.Equal(t, "Cached(static-official)", deps.OfficialRate.Name())
	assert.Equal(t, "Cached(static-market)", deps.MarketRate.Name())

	quote, err := deps.OfficialRate.FetchOfficialRate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 8.0, quote.Rate, 0)

	offer, err := deps.MarketRate.FetchBestOffer(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 9.0, offer.Price, 0)
}

func TestInitializeDependencies_RemoteProviders(t *testing.T) {
	cfg := testConfig()
	cfg.MarketRate.Static = 0
	cfg.OfficialRate.Static = 0

	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	defer deps.Closers[0].Close() //nolint:errcheck

	assert.Equal(t, "Cached(official-rate)", deps.OfficialRate.Name())
	assert.Equal(t, "Cached(binance-p2p)", deps.MarketRate.Name())
}

func TestInitializeDependencies_InvalidRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.RedisURL = "not-a-url"

	_, err := InitializeDependencies(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate cache")
}
