package metrics

import (
	"context"
	"time"

	"github.com/pranvibmania-max/guardapp-sub001/internal/cache"
	"github.com/pranvibmania-max/guardapp-sub001/internal/core"
)

// Cache keys for gauge counts
const (
	cacheKeyDevicesTotal    = "devices:total"
	cacheKeyDevicesOnline   = "devices:online"
	cacheKeyActivePairCodes = "pair_codes:active"
)

// CacheWrapper reads gauge counts through a cache so the periodic gauge-update
// job does not hit the database on every tick in multi-instance deployments.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[int64]
}

// NewCacheWrapper creates a cache-backed reader over the metrics store.
// A nil cache disables caching and reads go straight to the store.
func NewCacheWrapper(store core.MetricsStore, c core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{store: store, cache: c}
}

// GetDevicesCount returns the total number of paired devices.
func (w *CacheWrapper) GetDevicesCount(ctx context.Context, ttl time.Duration) (int64, error) {
	if w.cache == nil {
		return w.store.CountDevices()
	}
	return cache.GetWithFetch(ctx, w.cache, cacheKeyDevicesTotal, ttl,
		func(ctx context.Context, key string) (int64, error) {
			return w.store.CountDevices()
		})
}

// GetOnlineDevicesCount returns the number of devices reporting online.
func (w *CacheWrapper) GetOnlineDevicesCount(ctx context.Context, ttl time.Duration) (int64, error) {
	if w.cache == nil {
		return w.store.CountOnlineDevices()
	}
	return cache.GetWithFetch(ctx, w.cache, cacheKeyDevicesOnline, ttl,
		func(ctx context.Context, key string) (int64, error) {
			return w.store.CountOnlineDevices()
		})
}

// GetActivePairCodesCount returns the number of unused, unexpired pairing codes.
func (w *CacheWrapper) GetActivePairCodesCount(ctx context.Context, ttl time.Duration) (int64, error) {
	if w.cache == nil {
		return w.store.CountActivePairCodes()
	}
	return cache.GetWithFetch(ctx, w.cache, cacheKeyActivePairCodes, ttl,
		func(ctx context.Context, key string) (int64, error) {
			return w.store.CountActivePairCodes()
		})
}
