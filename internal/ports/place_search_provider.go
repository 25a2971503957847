package ports

import (
	"context"

	"driver-assist-service/internal/domain"
)

// Contract for searching places of given types around a point.
// An empty result list is valid data, not an error.
type PlaceSearchProvider interface {
	SearchNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, placeTypes []string) ([]domain.PlaceRecord, error)
}
