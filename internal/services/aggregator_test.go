package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"driver-assist-service/internal/adapters/maps"
	"driver-assist-service/internal/domain"
)

func istanbulAnkaraRoute() *domain.RouteResult {
	return &domain.RouteResult{
		Legs:            []domain.RouteLeg{{Start: istanbul, End: ankara}},
		DistanceKm:      454.0,
		DurationMinutes: 305,
	}
}

func TestFindServicesAlongRouteEndToEnd(t *testing.T) {
	routes := &maps.MockRouteProvider{Result: istanbulAnkaraRoute()}

	station := domain.PlaceRecord{
		ID:       "places/station-1",
		Name:     "Example Petrol",
		Location: domain.GeoPoint{Latitude: 40.5, Longitude: 30.9},
		Types:    []string{"gas_station", "convenience_store"},
	}
	places := &maps.MockPlaceSearchProvider{Places: []domain.PlaceRecord{station}}

	report, err := FindServicesAlongRoute(context.Background(), routes, places, FindServicesRequest{
		Origin:         istanbul,
		Destination:    ankara,
		ServiceTypes:   []string{"gas_station"},
		SearchRadiusKm: 10,
		IntervalKm:     450,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// interval 450 > haversine leg length: start and end only.
	if len(report.Points) != 2 {
		t.Fatalf("sample points = %d, want 2", len(report.Points))
	}
	if len(places.Calls) != 2 {
		t.Fatalf("place queries = %d, want one per sample point", len(places.Calls))
	}

	// Queries run in route order with the radius converted to meters.
	if places.Calls[0].Center != istanbul {
		t.Fatalf("first query center = %+v, want origin", places.Calls[0].Center)
	}
	if places.Calls[0].RadiusMeters != 10000 {
		t.Fatalf("radius = %v m, want 10000", places.Calls[0].RadiusMeters)
	}

	// Same id seen from both points collapses to one entry.
	if report.TotalServices != 1 || len(report.Services) != 1 {
		t.Fatalf("total = %d, services = %d, want 1 unique record", report.TotalServices, len(report.Services))
	}

	rec := report.Services[0]
	if rec.SearchPointDistanceKm != 0 {
		t.Fatalf("kept record from distance %v, want first occurrence at 0", rec.SearchPointDistanceKm)
	}
	if rec.DistanceFromRouteKm <= 0 {
		t.Fatalf("distance from route = %v, want positive", rec.DistanceFromRouteKm)
	}

	if report.ServicesByType["gas_station"] != 1 || report.ServicesByType["convenience_store"] != 1 {
		t.Fatalf("histogram = %v, want 1 per declared type", report.ServicesByType)
	}
}

func TestFindServicesAlongRouteCoordinateFallbackDedup(t *testing.T) {
	routes := &maps.MockRouteProvider{Result: istanbulAnkaraRoute()}

	loc := domain.GeoPoint{Latitude: 40.123456, Longitude: 31.654321}
	places := &maps.MockPlaceSearchProvider{
		Respond: func(call maps.PlaceCall) ([]domain.PlaceRecord, error) {
			// No provider id; same rounded coordinates from every point.
			return []domain.PlaceRecord{{Name: fmt.Sprintf("stop near %v", call.Center.Latitude), Location: loc, Types: []string{"truck_stop"}}}, nil
		},
	}

	report, err := FindServicesAlongRoute(context.Background(), routes, places, FindServicesRequest{
		Origin:      istanbul,
		Destination: ankara,
		IntervalKm:  450,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalServices != 1 {
		t.Fatalf("total = %d, want coordinate-keyed records to collapse", report.TotalServices)
	}
}

func TestFindServicesAlongRouteSortedByRouteDistance(t *testing.T) {
	routes := &maps.MockRouteProvider{Result: istanbulAnkaraRoute()}

	places := &maps.MockPlaceSearchProvider{
		Respond: func(call maps.PlaceCall) ([]domain.PlaceRecord, error) {
			// Distinct record per sample point.
			return []domain.PlaceRecord{{
				ID:       fmt.Sprintf("places/at-%.4f", call.Center.Latitude),
				Name:     "stop",
				Location: call.Center,
				Types:    []string{"gas_station"},
			}}, nil
		},
	}

	report, err := FindServicesAlongRoute(context.Background(), routes, places, FindServicesRequest{
		Origin:      istanbul,
		Destination: ankara,
		IntervalKm:  50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Services) < 2 {
		t.Fatalf("want multiple services, got %d", len(report.Services))
	}
	for i := 1; i < len(report.Services); i++ {
		if report.Services[i].SearchPointDistanceKm < report.Services[i-1].SearchPointDistanceKm {
			t.Fatalf("services not sorted by search point distance at %d", i)
		}
	}
}

func TestFindServicesAlongRouteDefaults(t *testing.T) {
	routes := &maps.MockRouteProvider{Result: istanbulAnkaraRoute()}
	places := &maps.MockPlaceSearchProvider{}

	_, err := FindServicesAlongRoute(context.Background(), routes, places, FindServicesRequest{
		Origin:      istanbul,
		Destination: ankara,
		IntervalKm:  450,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := places.Calls[0]
	if call.RadiusMeters != DefaultSearchRadiusKm*1000 {
		t.Fatalf("default radius = %v m, want %v", call.RadiusMeters, DefaultSearchRadiusKm*1000)
	}
	if len(call.Types) != len(DefaultServiceTypes) || call.Types[0] != "gas_station" {
		t.Fatalf("default types = %v, want %v", call.Types, DefaultServiceTypes)
	}
}

func TestFindServicesAlongRouteRouteNotFound(t *testing.T) {
	routes := &maps.MockRouteProvider{Err: fmt.Errorf("compute: %w", domain.ErrRouteNotFound)}
	places := &maps.MockPlaceSearchProvider{}

	_, err := FindServicesAlongRoute(context.Background(), routes, places, FindServicesRequest{
		Origin:      istanbul,
		Destination: ankara,
	})
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Fatalf("err = %v, want ErrRouteNotFound", err)
	}
	if len(places.Calls) != 0 {
		t.Fatal("no place queries expected when the route is missing")
	}
}

func TestFindServicesAlongRouteFailsFastOnUpstreamError(t *testing.T) {
	routes := &maps.MockRouteProvider{Result: istanbulAnkaraRoute()}
	places := &maps.MockPlaceSearchProvider{
		Respond: func(call maps.PlaceCall) ([]domain.PlaceRecord, error) {
			return nil, fmt.Errorf("nearby search: %w", domain.ErrUpstream)
		},
	}

	_, err := FindServicesAlongRoute(context.Background(), routes, places, FindServicesRequest{
		Origin:      istanbul,
		Destination: ankara,
		IntervalKm:  450,
	})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	// Fail-fast: the first failing query aborts the whole operation.
	if len(places.Calls) != 1 {
		t.Fatalf("place queries = %d, want 1", len(places.Calls))
	}
}

func TestFindServicesAlongRouteInvalidCoordinates(t *testing.T) {
	routes := &maps.MockRouteProvider{Result: istanbulAnkaraRoute()}
	places := &maps.MockPlaceSearchProvider{}

	_, err := FindServicesAlongRoute(context.Background(), routes, places, FindServicesRequest{
		Origin:      domain.GeoPoint{Latitude: 99, Longitude: 0},
		Destination: ankara,
	})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if routes.Calls != 0 {
		t.Fatal("validation must fail before any provider call")
	}
}
