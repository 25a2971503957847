package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/ports"
)

// GoogleGeocoder implements Geocoder using the legacy Geocoding API,
// which still takes the key as a query parameter rather than a header.
type GoogleGeocoder struct {
	googleClient
	baseURL string
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google geocoder: api key is empty")
	}

	return &GoogleGeocoder{
		googleClient: newGoogleClient(apiKey),
		baseURL:      "https://maps.googleapis.com",
	}, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// CityCoordinates resolves a city name to coordinates. A city the
// upstream does not know yields (nil, nil).
func (g *GoogleGeocoder) CityCoordinates(ctx context.Context, city, country string) (*ports.GeocodedCity, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("geocode city: %w: city name is empty", domain.ErrInvalidParameter)
	}

	address := city
	if country != "" {
		address = city + ", " + country
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	params.Set("language", "tr")
	params.Set("region", "tr")

	endpoint := g.baseURL + "/maps/api/geocode/json?" + params.Encode()
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, endpoint, nil, "")
	})
	if err != nil {
		return nil, fmt.Errorf("geocode city: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("geocode city: decode response: %w", err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("geocode city: %w: status %s", domain.ErrUpstream, decoded.Status)
	}
	if len(decoded.Results) == 0 {
		return nil, nil
	}

	best := decoded.Results[0]
	result := &ports.GeocodedCity{
		CityName:         city,
		FormattedAddress: best.FormattedAddress,
		Location: domain.GeoPoint{
			Latitude:  best.Geometry.Location.Lat,
			Longitude: best.Geometry.Location.Lng,
		},
	}

	for _, comp := range best.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "locality", "administrative_area_level_1":
				if result.CityName == city {
					result.CityName = comp.LongName
				}
			case "country":
				result.Country = comp.LongName
			}
		}
	}

	return result, nil
}
