package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Keeps the Redis implementation
// swappable in tests.
type Cache interface {
	// Get fetches data from cache and unmarshals into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
