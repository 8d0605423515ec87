package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a key is absent or its entry has expired.
	ErrNotFound = errors.New("cache: key not found")
	// ErrUnavailable is returned when the cache backend cannot be reached.
	ErrUnavailable = errors.New("cache: store unavailable")
)

// Store defines the key-value interface over the cache backend. Values are
// opaque serialized records; expiration is handled per key by the backend.
type Store interface {
	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Scan walks every entry whose key starts with prefix, invoking fn for
	// each (key, value) pair. Returning an error from fn stops the walk.
	Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error
}
