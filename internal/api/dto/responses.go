package dto

import "driver-assist-service/internal/domain"

// Domain result types already carry wire-ready json tags; the response
// DTOs wrap them so envelope changes stay out of the domain package.

type GeocodeResponse struct {
	City             string          `json:"city"`
	Country          string          `json:"country,omitempty"`
	FormattedAddress string          `json:"formatted_address"`
	Location         domain.GeoPoint `json:"location"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
