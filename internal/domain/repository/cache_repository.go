package repository

import (
	"context"
	"time"
)

// CacheRepository is a byte cache with TTL, backed by Redis. The map handler
// caches rendered marker responses here; everything the core itself needs
// stays correct without it.
type CacheRepository interface {
	// Get returns the cached value, or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the value with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// GetMarkers returns a cached marker response for a filter key.
	GetMarkers(ctx context.Context, key string) ([]byte, error)

	// SetMarkers caches a marker response for a filter key.
	SetMarkers(ctx context.Context, key string, data []byte, ttl time.Duration) error
}
