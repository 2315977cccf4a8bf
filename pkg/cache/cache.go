// Package cache provides pluggable caching for pipeline stages and
// rendered artifacts.
//
// Three backends are provided:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for multi-instance server deployments
//   - NullCache: disables caching
//
// Keys are produced by a Keyer so that every consumer derives them the
// same way: the aggregate stage is keyed by a hash of the submission
// list, the layout stage by the aggregate hash plus layout options, and
// each artifact by the layout hash plus render options. A ScopedKeyer
// prefixes keys for per-session namespacing.
package cache

import (
	"context"
	"time"
)

// Stage TTLs. Keys are content-addressed, so expiration only bounds
// storage growth rather than controlling freshness.
const (
	// TTLAggregate is how long aggregation results are cached.
	TTLAggregate = 24 * time.Hour

	// TTLLayout is how long layout results are cached.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts are cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
