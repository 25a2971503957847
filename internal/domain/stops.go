package domain

// Single planned rest stop. PlannedDistanceKm is the theoretical
// equal-increment position; ActualDistanceKm is the snapped sample point.
// EstimatedArrivalMinutes is derived from the planned distance, not the
// snapped one (reproduced upstream behavior).
type StopPlan struct {
	StopNumber              int           `json:"stop_number"`
	PlannedDistanceKm       float64       `json:"planned_distance_km"`
	ActualDistanceKm        float64       `json:"actual_distance_km"`
	Location                GeoPoint      `json:"location"`
	EstimatedArrivalMinutes float64       `json:"estimated_arrival_minutes"`
	CandidateServices       []PlaceRecord `json:"candidate_services"`
	ServiceCount            int           `json:"service_count"`
}

// Regulation-compliant rest stop plan for a route.
// len(Stops) == StopsNeeded; StopsNeeded == floor(duration/limit), never
// negative.
type StopPlanResult struct {
	Route             RouteResult `json:"route"`
	DrivingHoursLimit float64     `json:"driving_hours_limit"`
	StopsNeeded       int         `json:"stops_needed"`
	Stops             []StopPlan  `json:"stops"`
}
