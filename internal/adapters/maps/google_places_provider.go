package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"driver-assist-service/internal/domain"
)

const placesFieldMask = "places.displayName,places.formattedAddress,places.location,places.rating,places.id,places.types"

// The Places API caps maxResultCount at 20; 10 keeps payloads small.
const maxResultCount = 10

// GooglePlacesProvider implements PlaceSearchProvider using the Google
// Places API v1 searchNearby endpoint.
type GooglePlacesProvider struct {
	googleClient
	baseURL string
}

func NewGooglePlacesProvider(apiKey string) (*GooglePlacesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google places provider: api key is empty")
	}

	return &GooglePlacesProvider{
		googleClient: newGoogleClient(apiKey),
		baseURL:      "https://places.googleapis.com",
	}, nil
}

type searchNearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction struct {
		Circle struct {
			Center latLng  `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type searchNearbyResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string   `json:"formattedAddress"`
		Location         latLng   `json:"location"`
		Rating           float64  `json:"rating"`
		Types            []string `json:"types"`
	} `json:"places"`
}

// SearchNearby searches for places of the given types within radiusMeters
// of center. An empty result list is returned as-is; transport failures
// map to domain.ErrUpstream.
func (g *GooglePlacesProvider) SearchNearby(
	ctx context.Context,
	center domain.GeoPoint,
	radiusMeters float64,
	placeTypes []string,
) ([]domain.PlaceRecord, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("search nearby: %w: center out of range", domain.ErrInvalidParameter)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("search nearby: %w: radius must be positive, got %v", domain.ErrInvalidParameter, radiusMeters)
	}
	if len(placeTypes) == 0 {
		return nil, fmt.Errorf("search nearby: %w: at least one place type is required", domain.ErrInvalidParameter)
	}

	body := searchNearbyRequest{
		IncludedTypes:  placeTypes,
		MaxResultCount: maxResultCount,
	}
	body.LocationRestriction.Circle.Center = latLng{center.Latitude, center.Longitude}
	body.LocationRestriction.Circle.Radius = radiusMeters

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("search nearby: marshal request: %w", err)
	}

	endpoint := g.baseURL + "/v1/places:searchNearby"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), placesFieldMask)
	})
	if err != nil {
		return nil, fmt.Errorf("search nearby: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var decoded searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("search nearby: decode response: %w", err)
	}

	records := make([]domain.PlaceRecord, 0, len(decoded.Places))
	for _, p := range decoded.Places {
		records = append(records, domain.PlaceRecord{
			ID:       p.ID,
			Name:     p.DisplayName.Text,
			Location: domain.GeoPoint{Latitude: p.Location.Latitude, Longitude: p.Location.Longitude},
			Types:    p.Types,
			Rating:   p.Rating,
			Address:  p.FormattedAddress,
		})
	}

	return records, nil
}
