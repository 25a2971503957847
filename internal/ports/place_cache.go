package ports

import (
	"context"
	"time"

	"driver-assist-service/internal/domain"
)

// Contract for caching place-search results keyed by a normalized query
// key. Implementations must treat an expired entry as a miss.
type PlaceCache interface {
	// Get returns the cached records and whether the key was present.
	Get(ctx context.Context, key string) ([]domain.PlaceRecord, bool, error)
	// Put stores records under key for the given TTL.
	Put(ctx context.Context, key string, records []domain.PlaceRecord, ttl time.Duration) error
}
