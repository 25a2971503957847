package geo

import (
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"

	"driver-assist-service/internal/domain"
)

// Mean Earth radius in kilometers, matching the upstream routing providers.
const earthRadiusKm = 6371

// DistanceKm calculates the great-circle distance between two points in
// kilometers using the haversine formula.
func DistanceKm(a, b domain.GeoPoint) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, fmt.Errorf("distance: %w: latitude must be in [-90, 90], longitude in [-180, 180]", domain.ErrInvalidParameter)
	}

	dlat := radians(b.Latitude - a.Latitude)
	dlon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c, nil
}

// Lerp linearly interpolates latitude and longitude between a and b.
// t=0 returns a, t=1 returns b. Deliberately not great-circle: route legs
// are short enough that linear interpolation is adequate.
func Lerp(a, b domain.GeoPoint, t float64) (domain.GeoPoint, error) {
	if !a.Valid() || !b.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("lerp: %w: coordinates out of range", domain.ErrInvalidParameter)
	}

	return domain.GeoPoint{
		Latitude:  a.Latitude + t*(b.Latitude-a.Latitude),
		Longitude: a.Longitude + t*(b.Longitude-a.Longitude),
	}, nil
}

// LegsFromPolyline decodes a Google encoded polyline into consecutive
// route legs. Used when a provider response carries an overview polyline
// but no leg detail.
func LegsFromPolyline(encoded string) ([]domain.RouteLeg, error) {
	if encoded == "" {
		return nil, fmt.Errorf("decode polyline: %w: empty polyline", domain.ErrInvalidParameter)
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	if len(coords) < 2 {
		return nil, fmt.Errorf("decode polyline: %w: need at least 2 points, got %d", domain.ErrInvalidParameter, len(coords))
	}

	legs := make([]domain.RouteLeg, 0, len(coords)-1)
	for i := 0; i < len(coords)-1; i++ {
		start := domain.GeoPoint{Latitude: coords[i][0], Longitude: coords[i][1]}
		end := domain.GeoPoint{Latitude: coords[i+1][0], Longitude: coords[i+1][1]}
		if !start.Valid() || !end.Valid() {
			return nil, fmt.Errorf("decode polyline: %w: decoded coordinates out of range", domain.ErrInvalidParameter)
		}
		legs = append(legs, domain.RouteLeg{Start: start, End: end})
	}

	return legs, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
