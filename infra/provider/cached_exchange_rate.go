package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/kambialo/pkg/cache"
	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/provider"
	"golang.org/x/sync/singleflight"
)

const (
	marketRateKey   = "market_rate"
	officialRateKey = "official_rate"
)

// cachedFetch serves a value from cache or, on a miss, from fetch. Concurrent
// misses for the same key share a single fetch. Failures are not cached.
func cachedFetch[T any](
	ctx context.Context,
	group *singleflight.Group,
	c cache.Cache,
	key string,
	ttl time.Duration,
	logger *slog.Logger,
	fetch func(context.Context) (*T, error),
) (*T, error) {
	if data, err := c.Get(ctx, key); err != nil {
		logger.Error("Error getting from cache", "key", key, "error", err)
	} else if data != nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			logger.Debug("Cache hit", "key", key)
			return &v, nil
		}
		logger.Warn("Discarding undecodable cache entry", "key", key)
	}

	logger.Debug("Cache miss, fetching from next provider", "key", key)
	// The shared fetch outlives a cancelled first caller; the client timeout bounds it.
	sharedCtx := context.WithoutCancel(ctx)
	res, err, shared := group.Do(key, func() (any, error) {
		v, err := fetch(sharedCtx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			logger.Error("Error encoding cache entry", "key", key, "error", err)
			return v, nil
		}
		if err := c.Set(sharedCtx, key, data, ttl); err != nil {
			logger.Error("Error setting cache", "key", key, "error", err)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("Shared in-flight fetch", "key", key)
	}
	return res.(*T), nil
}

// CachedMarketRate implements provider.MarketRate with a time-based cache.
type CachedMarketRate struct {
	next   provider.MarketRate
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewCachedMarketRate creates a new CachedMarketRate.
func NewCachedMarketRate(
	next provider.MarketRate,
	c cache.Cache,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedMarketRate {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedMarketRate{next: next, cache: c, ttl: ttl, logger: logger}
}

// FetchBestOffer returns the cached offer or fetches a fresh one.
func (c *CachedMarketRate) FetchBestOffer(ctx context.Context) (*domain.MarketOffer, error) {
	return cachedFetch(ctx, &c.group, c.cache, marketRateKey, c.ttl, c.logger, c.next.FetchBestOffer)
}

// Invalidate drops the cached offer.
func (c *CachedMarketRate) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, marketRateKey)
}

// Name returns the provider's name.
func (c *CachedMarketRate) Name() string {
	return fmt.Sprintf("Cached(%s)", c.next.Name())
}

// CachedOfficialRate implements provider.OfficialRate with a time-based cache.
type CachedOfficialRate struct {
	next   provider.OfficialRate
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewCachedOfficialRate creates a new CachedOfficialRate.
func NewCachedOfficialRate(
	next provider.OfficialRate,
	c cache.Cache,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedOfficialRate {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedOfficialRate{next: next, cache: c, ttl: ttl, logger: logger}
}

// FetchOfficialRate returns the cached quote or fetches a fresh one.
func (c *CachedOfficialRate) FetchOfficialRate(ctx context.Context) (*domain.RateQuote, error) {
	return cachedFetch(ctx, &c.group, c.cache, officialRateKey, c.ttl, c.logger, c.next.FetchOfficialRate)
}

// Invalidate drops the cached quote.
func (c *CachedOfficialRate) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, officialRateKey)
}

// Name returns the provider's name.
func (c *CachedOfficialRate) Name() string {
	return fmt.Sprintf("Cached(%s)", c.next.Name())
}

var (
	_ provider.MarketRate   = (*CachedMarketRate)(nil)
	_ provider.OfficialRate = (*CachedOfficialRate)(nil)
)
