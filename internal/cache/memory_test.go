package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache[int64]()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "devices:total", 3, time.Minute))

	got, err := c.Get(ctx, "devices:total")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestMemoryCache_MissOnUnknownKey(t *testing.T) {
	c := NewMemoryCache[int64]()

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_LazyExpiry(t *testing.T) {
	c := NewMemoryCache[int64]()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "devices:total", 3, -time.Second))

	_, err := c.Get(ctx, "devices:total")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache[int64]()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGetWithFetch(t *testing.T) {
	c := NewMemoryCache[int64]()
	ctx := context.Background()

	calls := 0
	fetch := func(ctx context.Context, key string) (int64, error) {
		calls++
		return 42, nil
	}

	// First call fetches and populates
	got, err := GetWithFetch(ctx, c, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
	assert.Equal(t, 1, calls)

	// Second call is served from cache
	got, err = GetWithFetch(ctx, c, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
	assert.Equal(t, 1, calls)
}

func TestGetWithFetch_FetchErrorPropagates(t *testing.T) {
	c := NewMemoryCache[int64]()

	wantErr := errors.New("db down")
	_, err := GetWithFetch(context.Background(), c, "k", time.Minute,
		func(ctx context.Context, key string) (int64, error) {
			return 0, wantErr
		})
	assert.ErrorIs(t, err, wantErr)
}
