package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheWithClient(client)
}

func TestNewCache_MissingAddr(t *testing.T) {
	_, err := NewCache(&Config{})
	assert.ErrorContains(t, err, "missing redis address")
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "dataset:licenses", "Groupe,Client\r\n", -1)
	require.NoError(t, err)

	val, err := c.Get(ctx, "dataset:licenses")
	require.NoError(t, err)
	assert.Equal(t, "Groupe,Client\r\n", val)

	require.NoError(t, c.Delete(ctx, "dataset:licenses"))
	_, err = c.Get(ctx, "dataset:licenses")
	assert.Error(t, err)
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	c := testCache(t)

	_, err := c.Get(context.Background(), "dataset:groups")
	assert.ErrorContains(t, err, "not found in cache")
}

func TestRedisCache_OverwriteReplacesValue(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dataset:groups", "old", -1))
	require.NoError(t, c.Set(ctx, "dataset:groups", "new", -1))

	val, err := c.Get(ctx, "dataset:groups")
	require.NoError(t, err)
	assert.Equal(t, "new", val)
}
