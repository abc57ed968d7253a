// Package cachemanager provides typed TTL caches for sessions and name lookups.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the lookup surface a resolver needs from a cache.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
}
