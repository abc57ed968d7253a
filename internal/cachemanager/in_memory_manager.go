package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/walletbridge/internal/log"
)

const DefaultExpiration = 10 * time.Minute
const DefaultCleanupInterval = 30 * time.Minute

// NoExpiration keeps an item until it is deleted.
const NoExpiration = gocache.NoExpiration

// NewInMemoryCacheManager initializes the in-memory cache. A cleanupInterval
// of zero disables the background janitor; expired items are then only
// hidden from Get and removed by DeleteExpired.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// InMemoryCacheManager is a go-cache backed CacheManager with the extra
// session store surface: listing, eviction hooks and explicit expiry.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

// Get retrieves an item from the cache by its key
func (c *InMemoryCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var zeroValue V

	value, found := c.cache.Get(string(key))
	if !found {
		return zeroValue, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zeroValue, false
	}

	log.Debug(log.CatCache, "cache hit", "cache", c.useCase, "key", key)
	return v, true
}

// Set sets a value in the cache with a key and TTL
func (c *InMemoryCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes values by key
func (c *InMemoryCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
	return nil
}

// Items returns every unexpired item.
func (c *InMemoryCacheManager[K, V]) Items(ctx context.Context) map[K]V {
	items := c.cache.Items()
	out := make(map[K]V, len(items))
	now := time.Now().UnixNano()
	for k, item := range items {
		if item.Expiration > 0 && now > item.Expiration {
			continue
		}
		v, ok := item.Object.(V)
		if !ok {
			continue
		}
		out[K(k)] = v
	}
	return out
}

// OnEvicted registers fn to run when an item expires or is deleted.
func (c *InMemoryCacheManager[K, V]) OnEvicted(fn func(key K, value V)) {
	if fn == nil {
		c.cache.OnEvicted(nil)
		return
	}
	c.cache.OnEvicted(func(k string, obj interface{}) {
		v, _ := obj.(V)
		log.Debug(log.CatCache, "evicted", "cache", c.useCase, "key", k)
		fn(K(k), v)
	})
}

// DeleteExpired removes expired items, firing OnEvicted for each.
func (c *InMemoryCacheManager[K, V]) DeleteExpired() {
	c.cache.DeleteExpired()
}
