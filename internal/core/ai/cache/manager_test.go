package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridge-chef/internal/core/ai/cache"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/infrastructure/redisdb"
	"fridge-chef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetSet(t *testing.T) {
	m := cache.NewManager(10, time.Minute, 0)
	defer m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, m.Set(ctx, "k", "v"))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	stats := m.GetStats()
	assert.Equal(t, 1, stats.Size)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRatio, 1e-9)
}

func TestManager_Expiry(t *testing.T) {
	m := cache.NewManager(10, 20*time.Millisecond, 0)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "v"))
	time.Sleep(40 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))
	assert.Equal(t, 0, m.GetStats().Size)
}

func TestManager_EvictsLeastUsed(t *testing.T) {
	m := cache.NewManager(2, time.Minute, 0)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "b")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.Equal(t, 2, m.GetStats().Size)
}

func TestManager_OverwriteDoesNotEvict(t *testing.T) {
	m := cache.NewManager(1, time.Minute, 0)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "a", "2"))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	m := cache.NewManager(1, time.Minute, time.Millisecond)
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}

func TestKey(t *testing.T) {
	a := cache.Key("narration", "김치찌개", "두부")
	assert.Equal(t, a, cache.Key("narration", "김치찌개", "두부"))
	assert.NotEqual(t, a, cache.Key("narration", "김치찌개두부"))
	assert.NotEqual(t, a, cache.Key("extract", "김치찌개", "두부"))
	assert.Contains(t, a, "narration:")
}

func TestNew(t *testing.T) {
	c, err := cache.New(config.CacheConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = cache.New(config.CacheConfig{Enabled: true, Backend: config.BackendMemory, MaxSize: 4, TTL: time.Minute}, nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NoError(t, c.Close())

	_, err = cache.New(config.CacheConfig{Enabled: true, Backend: config.BackendRedis}, nil)
	assert.Error(t, err)
}

func TestRedisCache(t *testing.T) {
	client := redisdb.NewTestClient(t)
	c := cache.NewRedisCache(client, time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, c.Set(ctx, "k", "값"))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "값", got)
}
