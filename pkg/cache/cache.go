// Package cache provides response caching for upstream pathway fetches.
//
// KEGG rate-limits its REST endpoint and pathway definitions change
// rarely, so fetched documents are cached aggressively. Three backends
// implement the same interface:
//   - file: directory of JSON entries for CLI usage
//   - redis: shared cache for server deployments
//   - null: disabled caching for tests and --refresh runs
//
// Keys are hashed with SHA-256 before storage, so arbitrary strings
// (URLs, pathway IDs with colons) are safe keys on every backend.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit, (nil, false, nil) on a miss and
// a non-nil error only for backend failures; an expired or corrupt entry
// is reported as a miss, not an error. A TTL of 0 in Set means the entry
// never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
