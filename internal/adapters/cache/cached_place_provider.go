package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/ports"
)

// CachedPlaceProvider wraps a PlaceSearchProvider with a read-through
// cache. Cache failures never fail a search; the provider is queried
// directly and the failure is logged.
type CachedPlaceProvider struct {
	inner ports.PlaceSearchProvider
	cache ports.PlaceCache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedPlaceProvider(inner ports.PlaceSearchProvider, cache ports.PlaceCache, ttl time.Duration, log zerolog.Logger) *CachedPlaceProvider {
	return &CachedPlaceProvider{inner: inner, cache: cache, ttl: ttl, log: log}
}

func (c *CachedPlaceProvider) SearchNearby(
	ctx context.Context,
	center domain.GeoPoint,
	radiusMeters float64,
	placeTypes []string,
) ([]domain.PlaceRecord, error) {
	key := searchCacheKey(center, radiusMeters, placeTypes)

	records, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("place cache read failed")
	} else if hit {
		return records, nil
	}

	records, err = c.inner.SearchNearby(ctx, center, radiusMeters, placeTypes)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, records, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("place cache write failed")
	}

	return records, nil
}

// searchCacheKey builds a deterministic key for a nearby search. The
// center is rounded so jitter in sampled coordinates still reuses
// nearby entries, and types are sorted so order does not split keys.
func searchCacheKey(center domain.GeoPoint, radiusMeters float64, placeTypes []string) string {
	sorted := make([]string, len(placeTypes))
	copy(sorted, placeTypes)
	sort.Strings(sorted)

	return fmt.Sprintf("%.4f,%.4f|r=%.0f|t=%s",
		center.Latitude, center.Longitude, radiusMeters, strings.Join(sorted, ","))
}
