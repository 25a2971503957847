package pace

import (
	"context"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/ports"
)

// PacedPlaceProvider wraps a PlaceSearchProvider so every search waits
// on the pacer first. Searches keep their caller-side ordering because
// the pacer serializes waiters.
type PacedPlaceProvider struct {
	inner ports.PlaceSearchProvider
	pacer ports.Pacer
}

func NewPacedPlaceProvider(inner ports.PlaceSearchProvider, pacer ports.Pacer) *PacedPlaceProvider {
	return &PacedPlaceProvider{inner: inner, pacer: pacer}
}

func (p *PacedPlaceProvider) SearchNearby(
	ctx context.Context,
	center domain.GeoPoint,
	radiusMeters float64,
	placeTypes []string,
) ([]domain.PlaceRecord, error) {
	if err := p.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.SearchNearby(ctx, center, radiusMeters, placeTypes)
}
