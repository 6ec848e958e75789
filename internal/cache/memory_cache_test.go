package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache[string]()
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 0))

	got, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryCache_Miss(t *testing.T) {
	mc := NewMemoryCache[string]()
	defer mc.Stop()

	_, err := mc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc := NewMemoryCacheWithInterval[int](time.Hour)
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", 42, 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	mc := NewMemoryCache[[]string]()
	defer mc.Stop()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", []string{"a", "b"}, 0))
	require.NoError(t, mc.Delete(ctx, "k"))

	_, err := mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	mc := NewMemoryCache[string]()
	mc.Stop()
	mc.Stop()
}

func TestNew_PicksBackend(t *testing.T) {
	mc := New[string](MemoryBackend, nil)
	assert.NotNil(t, mc)

	assert.Panics(t, func() {
		New[string]("bogus", nil)
	})
}
