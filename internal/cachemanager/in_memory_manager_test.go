package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sessionKey string

type exampleSession struct {
	Chain  string
	Wallet string
}

var _ CacheManager[sessionKey, string] = (*InMemoryCacheManager[sessionKey, string])(nil)

func newTestCache[V any]() *InMemoryCacheManager[sessionKey, V] {
	return NewInMemoryCacheManager[sessionKey, V]("test", DefaultExpiration, 0)
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := newTestCache[exampleSession]()
	want := exampleSession{Chain: "cosmoshub", Wallet: "keplr-extension"}
	cache.Set(context.Background(), "cosmoshub", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "cosmoshub")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := newTestCache[string]()

	got, ok := cache.Get(context.Background(), "osmosis")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWrongType(t *testing.T) {
	cache := newTestCache[string]()
	cache.cache.Set("juno", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "juno")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := newTestCache[string]()
	cache.Set(context.Background(), "short", "v", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get(context.Background(), "short")
	require.False(t, ok)
	require.Empty(t, cache.Items(context.Background()))
}

func TestInMemoryCacheManager_DeleteAndItems(t *testing.T) {
	cache := newTestCache[int]()
	ctx := context.Background()
	cache.Set(ctx, "a", 1, NoExpiration)
	cache.Set(ctx, "b", 2, NoExpiration)

	require.NoError(t, cache.Delete(ctx, "a"))
	require.Equal(t, map[sessionKey]int{"b": 2}, cache.Items(ctx))

	require.NoError(t, cache.Delete(ctx, "b", "missing"))
	require.Empty(t, cache.Items(ctx))
}

func TestInMemoryCacheManager_OnEvictedFiresForExpired(t *testing.T) {
	cache := newTestCache[string]()
	ctx := context.Background()

	var evicted []sessionKey
	cache.OnEvicted(func(k sessionKey, v string) {
		evicted = append(evicted, k)
	})
	cache.Set(ctx, "gone", "v", time.Millisecond)
	cache.Set(ctx, "kept", "v", NoExpiration)

	time.Sleep(5 * time.Millisecond)
	cache.DeleteExpired()

	require.Equal(t, []sessionKey{"gone"}, evicted)
}
