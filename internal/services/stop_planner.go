package services

import (
	"context"
	"fmt"
	"math"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/ports"
)

// Defaults applied by PlanDriverStops. The driving-hours limit follows the
// EU rule of a mandatory break after 4.5 hours of continuous driving.
const DefaultDrivingHoursLimit = 4.5

var DefaultStopTypes = []string{"truck_stop", "rest_stop", "gas_station"}

const (
	stopSearchRadiusMeters = 15000
	maxCandidateServices   = 5
)

type PlanStopsRequest struct {
	Origin             domain.GeoPoint
	Destination        domain.GeoPoint
	DrivingHoursLimit  float64
	PreferredStopTypes []string
}

// PlanDriverStops computes mandatory rest stops for the route between
// origin and destination.
//
// Stops are placed at equal distance increments (distance/(stops+1)), each
// snapped to the nearest sample point; on equal snap distance the first
// sample point encountered wins. The estimated arrival time is derived
// from the planned target distance, not the snapped one, reproducing the
// upstream behavior. A route shorter than the driving limit returns
// StopsNeeded 0 with no further provider calls.
func PlanDriverStops(
	ctx context.Context,
	routes ports.RouteProvider,
	places ports.PlaceSearchProvider,
	req PlanStopsRequest,
) (*domain.StopPlanResult, error) {
	if !req.Origin.Valid() || !req.Destination.Valid() {
		return nil, fmt.Errorf("plan driver stops: %w: origin and destination must be valid coordinates", domain.ErrInvalidParameter)
	}

	limit := req.DrivingHoursLimit
	if limit == 0 {
		limit = DefaultDrivingHoursLimit
	}
	if limit <= 0 {
		return nil, fmt.Errorf("plan driver stops: %w: driving hours limit must be positive, got %v", domain.ErrInvalidParameter, limit)
	}

	stopTypes := req.PreferredStopTypes
	if len(stopTypes) == 0 {
		stopTypes = DefaultStopTypes
	}

	route, err := routes.ComputeRoute(ctx, req.Origin, req.Destination, ports.RouteOptions{
		TravelMode:        "DRIVE",
		RoutingPreference: "TRAFFIC_AWARE",
	})
	if err != nil {
		return nil, fmt.Errorf("plan driver stops: compute route: %w", err)
	}

	totalDurationHours := route.DurationMinutes / 60

	stopsNeeded := int(totalDurationHours / limit)
	if stopsNeeded < 0 {
		stopsNeeded = 0
	}

	result := &domain.StopPlanResult{
		Route:             *route,
		DrivingHoursLimit: limit,
		StopsNeeded:       stopsNeeded,
		Stops:             []domain.StopPlan{},
	}

	if stopsNeeded == 0 {
		return result, nil
	}

	stopIntervalKm := route.DistanceKm / float64(stopsNeeded+1)
	if stopIntervalKm <= 0 {
		return nil, fmt.Errorf("plan driver stops: %w: route distance must be positive, got %v", domain.ErrInvalidParameter, route.DistanceKm)
	}

	points, err := SampleRoutePoints(route.Legs, stopIntervalKm)
	if err != nil {
		return nil, fmt.Errorf("plan driver stops: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("plan driver stops: %w: route has no sample points", domain.ErrRouteNotFound)
	}

	for i := 1; i <= stopsNeeded; i++ {
		targetKm := float64(i) * stopIntervalKm
		closest := closestSampledPoint(points, targetKm)

		found, err := places.SearchNearby(ctx, closest.Location, stopSearchRadiusMeters, stopTypes)
		if err != nil {
			return nil, fmt.Errorf("plan driver stops: stop %d search: %w", i, err)
		}

		candidates := found
		if len(candidates) > maxCandidateServices {
			candidates = candidates[:maxCandidateServices]
		}

		result.Stops = append(result.Stops, domain.StopPlan{
			StopNumber:        i,
			PlannedDistanceKm: targetKm,
			ActualDistanceKm:  closest.DistanceFromStartKm,
			Location:          closest.Location,
			// From the planned target distance; the snapped offset is
			// deliberately not corrected for.
			EstimatedArrivalMinutes: (targetKm / route.DistanceKm) * route.DurationMinutes,
			CandidateServices:       candidates,
			ServiceCount:            len(found),
		})
	}

	return result, nil
}

// closestSampledPoint picks the sample point nearest to the target
// cumulative distance. The first minimal element wins on ties.
func closestSampledPoint(points []domain.SampledPoint, targetKm float64) domain.SampledPoint {
	best := points[0]
	bestDiff := math.Abs(points[0].DistanceFromStartKm - targetKm)

	for _, p := range points[1:] {
		diff := math.Abs(p.DistanceFromStartKm - targetKm)
		if diff < bestDiff {
			best = p
			bestDiff = diff
		}
	}

	return best
}
