package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type growthKey string

func TestInMemoryCacheManager_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[growthKey, []int]("growth", DefaultExpiration, DefaultCleanupInterval)

	_, found := cache.Get(ctx, "yoy/category")
	require.False(t, found)

	cache.Set(ctx, "yoy/category", []int{1, 2, 3}, time.Minute)

	got, found := cache.Get(ctx, "yoy/category")
	require.True(t, found)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestInMemoryCacheManager_Expiration(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[growthKey, string]("growth", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := cache.Get(ctx, "k")
	require.False(t, found, "entry should have expired")
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[growthKey, int]("growth", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)

	require.NoError(t, cache.Delete(ctx, "a"))
	_, found := cache.Get(ctx, "a")
	require.False(t, found)
	_, found = cache.Get(ctx, "b")
	require.True(t, found)

	require.NoError(t, cache.Flush(ctx))
	_, found = cache.Get(ctx, "b")
	require.False(t, found)
}
