package cache

import (
	"context"
	"time"
)

// Store is the durable key/value backend behind the memory tier. All
// implementations treat an expired entry as a miss.
type Store interface {
	Name() string
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}
