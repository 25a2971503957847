package domain

import "fmt"

// Geographic coordinate in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies in the WGS84 range:
// latitude [-90, 90], longitude [-180, 180].
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// CoordKey returns the coordinate rounded to 6 decimal places as a string.
// Used as a fallback identity for places without a provider id.
func (p GeoPoint) CoordKey() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}
