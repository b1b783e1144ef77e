// Package cache stores rendered artifacts keyed by content hash.
//
// # Backends
//
//   - [FileCache]: JSON entries under a local directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP service
//   - [MongoCache]: shared cache with a TTL index
//   - [NullCache]: disables caching
//
// All backends implement [Cache] and [Clearer]. Keys are built by a [Keyer]
// so that every backend sees the same key layout.
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(dot), cache.ArtifactKeyOpts{Format: "svg", Engine: "dot"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// with ok == false and a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
// Clear returns the number of removed entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
