// Package cache stores generated tilings and rendered artifacts keyed by a
// hash of their inputs.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//
// Entries carry a TTL. Generation is deterministic, so a key identifies the
// exact bytes a render would produce; the TTL only bounds disk or memory use.
//
// # Keys
//
// A [Keyer] builds keys from content hashes. [NewScopedKeyer] prefixes every
// key, which the pipeline uses to separate builds of different versions.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
	Close() error
}

// DefaultDir returns the per-user cache directory for rectile
// (~/.cache/rectile on Linux).
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "rectile"), nil
}

// NullCache misses on every Get and discards every Set. The CLI uses it for
// --no-cache and when no cache directory is available.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Clear(context.Context) error                              { return nil }
func (NullCache) Close() error                                             { return nil }

var (
	_ Cache = NullCache{}
	_ Cache = (*FileCache)(nil)
	_ Cache = (*RedisCache)(nil)
)
