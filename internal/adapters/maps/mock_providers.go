package maps

import (
	"context"
	"fmt"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/ports"
)

// MockRouteProvider returns a scripted route and records calls.
type MockRouteProvider struct {
	Result *domain.RouteResult
	Err    error
	Calls  int
}

func (m *MockRouteProvider) ComputeRoute(ctx context.Context, origin, destination domain.GeoPoint, opts ports.RouteOptions) (*domain.RouteResult, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return nil, fmt.Errorf("mock route provider: %w", domain.ErrRouteNotFound)
	}
	return m.Result, nil
}

// One recorded SearchNearby invocation.
type PlaceCall struct {
	Center       domain.GeoPoint
	RadiusMeters float64
	Types        []string
}

// MockPlaceSearchProvider answers SearchNearby from a scripted Respond
// function, or a fixed Places list when Respond is nil. All calls are
// recorded in order.
type MockPlaceSearchProvider struct {
	Respond func(call PlaceCall) ([]domain.PlaceRecord, error)
	Places  []domain.PlaceRecord
	Err     error
	Calls   []PlaceCall
}

func (m *MockPlaceSearchProvider) SearchNearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, placeTypes []string) ([]domain.PlaceRecord, error) {
	call := PlaceCall{Center: center, RadiusMeters: radiusMeters, Types: placeTypes}
	m.Calls = append(m.Calls, call)

	if m.Respond != nil {
		return m.Respond(call)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Places, nil
}
