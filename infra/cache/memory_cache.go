package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/kambialo/pkg/cache"
)

// MemoryCache implements cache.Cache using in-memory storage
type MemoryCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache and starts a goroutine that
// purges expired entries every cleanupInterval. Call Close to stop it.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := newMemoryCache(time.Now)
	if cleanupInterval > 0 {
		go c.cleanup(cleanupInterval)
	}
	return c
}

func newMemoryCache(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]*cacheEntry),
		now:   now,
		stop:  make(chan struct{}),
	}
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache[key]
	if !exists {
		return nil, nil
	}

	if !c.now().Before(entry.expiresAt) {
		return nil, nil
	}

	return entry.value, nil
}

// Set stores a value in cache with TTL
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = &cacheEntry{
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}

	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.cache, key)
	return nil
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

// cleanup removes expired entries from cache
func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.purge()
		}
	}
}

func (c *MemoryCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.cache {
		if !now.Before(entry.expiresAt) {
			delete(c.cache, key)
		}
	}
}

var _ cache.Cache = (*MemoryCache)(nil)
