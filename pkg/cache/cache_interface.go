package cache

import (
	"context"
	"time"
)

// Cache is the contract for the response cache layer.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns found=false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL. Entries expire by
	// TTL only; there is no invalidation path.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Ping verifies the backing connection.
	Ping(ctx context.Context) error

	Close() error
}
