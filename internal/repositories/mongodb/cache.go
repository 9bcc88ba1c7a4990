package mongodb

import (
	"context"
	"time"
)

// CacheService is the slice of the cache layer repositories read
// through. A nil cache disables read caching entirely.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}
