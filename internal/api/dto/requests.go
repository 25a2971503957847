package dto

import "driver-assist-service/internal/domain"

type RouteServicesRequest struct {
	Origin         domain.GeoPoint `json:"origin"`
	Destination    domain.GeoPoint `json:"destination"`
	ServiceTypes   []string        `json:"service_types"`
	SearchRadiusKm float64         `json:"search_radius_km"`
	IntervalKm     float64         `json:"interval_km"`
}

type RouteStopsRequest struct {
	Origin             domain.GeoPoint `json:"origin"`
	Destination        domain.GeoPoint `json:"destination"`
	DrivingHoursLimit  float64         `json:"driving_hours_limit"`
	PreferredStopTypes []string        `json:"preferred_stop_types"`
}

type EmergencyRequest struct {
	Location domain.GeoPoint `json:"location"`
	RadiusKm float64         `json:"radius_km"`
}
