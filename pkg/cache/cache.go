package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer, kept behind an interface so
// implementations (Redis, in-memory) can be swapped and mocked.
type Cache interface {
	// Get looks up key and unmarshals the stored value into dest.
	// A miss is reported as found=false, not as an error.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
