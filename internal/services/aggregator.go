package services

import (
	"context"
	"fmt"
	"sort"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/geo"
	"driver-assist-service/internal/ports"
)

// Defaults applied by FindServicesAlongRoute when the request leaves the
// corresponding field zero.
var DefaultServiceTypes = []string{"gas_station", "truck_stop", "restaurant"}

const (
	DefaultSearchRadiusKm = 10
	DefaultIntervalKm     = 50
)

type FindServicesRequest struct {
	Origin         domain.GeoPoint
	Destination    domain.GeoPoint
	ServiceTypes   []string
	SearchRadiusKm float64
	IntervalKm     float64
}

// FindServicesAlongRoute computes the route, samples it at the requested
// interval, and searches for services of the requested types around every
// sample point.
//
// Place queries run sequentially in route order; downstream pacing assumes
// one in-flight call at a time. Results are deduplicated by provider id
// (rounded coordinates when no id is present), first occurrence wins, and
// returned sorted by the distance of the sample point they were found
// from. Any provider failure aborts the whole call; there is no
// partial-result fallback.
func FindServicesAlongRoute(
	ctx context.Context,
	routes ports.RouteProvider,
	places ports.PlaceSearchProvider,
	req FindServicesRequest,
) (*domain.RouteServiceReport, error) {
	if !req.Origin.Valid() || !req.Destination.Valid() {
		return nil, fmt.Errorf("find services along route: %w: origin and destination must be valid coordinates", domain.ErrInvalidParameter)
	}

	serviceTypes := req.ServiceTypes
	if len(serviceTypes) == 0 {
		serviceTypes = DefaultServiceTypes
	}
	radiusKm := req.SearchRadiusKm
	if radiusKm == 0 {
		radiusKm = DefaultSearchRadiusKm
	}
	intervalKm := req.IntervalKm
	if intervalKm == 0 {
		intervalKm = DefaultIntervalKm
	}

	if radiusKm <= 0 {
		return nil, fmt.Errorf("find services along route: %w: search radius must be positive, got %v", domain.ErrInvalidParameter, radiusKm)
	}

	route, err := routes.ComputeRoute(ctx, req.Origin, req.Destination, ports.RouteOptions{
		TravelMode:        "DRIVE",
		RoutingPreference: "TRAFFIC_AWARE",
	})
	if err != nil {
		return nil, fmt.Errorf("find services along route: compute route: %w", err)
	}

	points, err := SampleRoutePoints(route.Legs, intervalKm)
	if err != nil {
		return nil, fmt.Errorf("find services along route: %w", err)
	}

	set := domain.NewServiceSet()
	radiusMeters := radiusKm * 1000

	for i, point := range points {
		found, err := places.SearchNearby(ctx, point.Location, radiusMeters, serviceTypes)
		if err != nil {
			return nil, fmt.Errorf("find services along route: search near point %d/%d: %w", i+1, len(points), err)
		}

		for _, place := range found {
			rec := domain.ServiceRecord{
				PlaceRecord:           place,
				SearchPoint:           point.Location,
				SearchPointDistanceKm: point.DistanceFromStartKm,
			}

			if place.Location.Valid() {
				d, err := geo.DistanceKm(point.Location, place.Location)
				if err != nil {
					return nil, fmt.Errorf("find services along route: distance to %q: %w", place.Name, err)
				}
				rec.DistanceFromRouteKm = d
			}

			set.Add(rec)
		}
	}

	// Insertion order already follows route order; the stable sort keeps
	// first-insertion order on equal distances.
	records := set.Records()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SearchPointDistanceKm < records[j].SearchPointDistanceKm
	})

	return &domain.RouteServiceReport{
		Route:          *route,
		Origin:         req.Origin,
		Destination:    req.Destination,
		Points:         points,
		Services:       records,
		TotalServices:  len(records),
		ServicesByType: categorizeServices(records),
	}, nil
}

// categorizeServices builds a per-type histogram. A record with N types
// contributes to N buckets.
func categorizeServices(records []domain.ServiceRecord) map[string]int {
	categories := make(map[string]int)
	for _, rec := range records {
		for _, t := range rec.Types {
			categories[t]++
		}
	}
	return categories
}
