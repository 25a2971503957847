package services

import (
	"fmt"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/geo"
)

// SampleRoutePoints converts a route's legs into an ordered sequence of
// sample points spaced at most intervalKm apart, each tagged with its
// cumulative distance from the route start.
//
// Each consecutive point pair is interpolated linearly with
// max(1, floor(segment/interval)) intervals, so even a segment shorter
// than the interval contributes its endpoints. The output is
// non-decreasing in DistanceFromStartKm by construction.
func SampleRoutePoints(legs []domain.RouteLeg, intervalKm float64) ([]domain.SampledPoint, error) {
	if intervalKm <= 0 {
		return nil, fmt.Errorf("sample route points: %w: interval must be positive, got %v", domain.ErrInvalidParameter, intervalKm)
	}

	// Flatten legs into an ordered point list; consecutive legs share a
	// point, which is kept once.
	points := make([]domain.GeoPoint, 0, len(legs)+1)
	for _, leg := range legs {
		if len(points) == 0 || points[len(points)-1] != leg.Start {
			points = append(points, leg.Start)
		}
		if points[len(points)-1] != leg.End {
			points = append(points, leg.End)
		}
	}

	// Degenerate route: nothing to interpolate.
	if len(points) < 2 {
		out := make([]domain.SampledPoint, 0, len(points))
		for _, p := range points {
			out = append(out, domain.SampledPoint{Location: p, DistanceFromStartKm: 0})
		}
		return out, nil
	}

	var sampled []domain.SampledPoint
	cumulative := 0.0

	for i := 0; i < len(points)-1; i++ {
		p1 := points[i]
		p2 := points[i+1]

		segmentKm, err := geo.DistanceKm(p1, p2)
		if err != nil {
			return nil, fmt.Errorf("sample route points: segment %d: %w", i, err)
		}

		numIntervals := int(segmentKm / intervalKm)
		if numIntervals < 1 {
			numIntervals = 1
		}

		for j := 0; j <= numIntervals; j++ {
			ratio := float64(j) / float64(numIntervals)

			loc, err := geo.Lerp(p1, p2, ratio)
			if err != nil {
				return nil, fmt.Errorf("sample route points: segment %d: %w", i, err)
			}

			sampled = append(sampled, domain.SampledPoint{
				Location:            loc,
				DistanceFromStartKm: cumulative + ratio*segmentKm,
			})
		}

		cumulative += segmentKm
	}

	return sampled, nil
}
