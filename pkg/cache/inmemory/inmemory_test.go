package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c, err := NewCache(&Config{})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dataset:backupsets", "Statut\r\nFailed\r\n", -1))

	val, err := c.Get(ctx, "dataset:backupsets")
	require.NoError(t, err)
	assert.Equal(t, "Statut\r\nFailed\r\n", val)

	require.NoError(t, c.Delete(ctx, "dataset:backupsets"))
	_, err = c.Get(ctx, "dataset:backupsets")
	assert.ErrorContains(t, err, "not found in cache")
}

func TestInMemoryCache_OverwriteReplacesValue(t *testing.T) {
	c, err := NewCache(&Config{DefaultExpiration: 300, CleanupInterval: 600})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "old", -1))
	require.NoError(t, c.Set(ctx, "k", "new", -1))

	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", val)
}
