package ports

import (
	"context"

	"driver-assist-service/internal/domain"
)

// Routing parameters forwarded to the provider.
type RouteOptions struct {
	TravelMode        string
	RoutingPreference string
}

// Contract for computing a driving route between two coordinates.
// Implementations return domain.ErrRouteNotFound when the provider yields
// zero routes.
type RouteProvider interface {
	ComputeRoute(ctx context.Context, origin, destination domain.GeoPoint, opts RouteOptions) (*domain.RouteResult, error)
}
