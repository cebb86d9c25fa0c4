package cache

import (
	"context"
	"time"
)

// Cache is the contract for the read-through cache layer. Keeping it an
// interface allows swapping the Redis implementation for an in-memory
// one in tests.
type Cache interface {
	// Get reads the value stored under key and unmarshals it into dest.
	// found=false means a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
