// Package cache provides a small byte cache used to keep downloaded profile
// images between runs.
//
// Two implementations are provided: [FileCache] stores entries as JSON files
// under a directory, and [NullCache] stores nothing. Keys are arbitrary
// strings; [ImageKey] builds the key for an image URL.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Get reports a miss with ok=false and a nil error. Expired or corrupt
// entries are treated as misses. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is how long downloaded images stay valid.
const DefaultTTL = 24 * time.Hour

// ImageKey returns the cache key for the image at url.
func ImageKey(url string) string {
	return "image:" + Hash([]byte(url))
}
