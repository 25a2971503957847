package domain

// One start->end segment of a computed route, as returned by the route
// provider. A route is an ordered sequence of legs; consecutive legs share
// a point.
type RouteLeg struct {
	Start GeoPoint `json:"start"`
	End   GeoPoint `json:"end"`
}

// Computed route between an origin and a destination.
// Parsed once at the provider boundary; the core never sees raw provider
// payloads.
type RouteResult struct {
	Legs            []RouteLeg `json:"legs"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes float64    `json:"duration_minutes"`
	Polyline        string     `json:"polyline"`
}

// Interpolated point along a route at a fixed distance interval, used as a
// search anchor. A sampled sequence is non-decreasing in DistanceFromStartKm.
type SampledPoint struct {
	Location            GeoPoint `json:"location"`
	DistanceFromStartKm float64  `json:"distance_from_start_km"`
}
