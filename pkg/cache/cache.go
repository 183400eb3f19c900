package cache

import (
	"context"
	"time"
)

// Cache stores encoded values with a time-based expiry.
// Get returns nil, nil on a miss or an expired entry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
