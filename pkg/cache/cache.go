// Package cache stores rendered artifacts keyed by content hash.
//
// Rendering is a pure function of the input history, the selected snapshot
// and root, the collapsed paths and the view configuration. The pipeline
// hashes all of these into a key (see [Keyer]) so that re-running a render
// with unchanged inputs returns the stored bytes.
//
// Two implementations are provided: [FileCache] for the CLI and [NullCache]
// for tests or when caching is disabled.
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
