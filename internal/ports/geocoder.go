package ports

import (
	"context"

	"driver-assist-service/internal/domain"
)

// Resolved city lookup.
type GeocodedCity struct {
	CityName         string
	FormattedAddress string
	Location         domain.GeoPoint
	Country          string
}

// Contract for resolving a city name to coordinates.
// A nil result with nil error means no match was found.
type Geocoder interface {
	CityCoordinates(ctx context.Context, city, country string) (*GeocodedCity, error)
}
