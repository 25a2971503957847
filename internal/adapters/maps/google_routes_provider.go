package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/geo"
	"driver-assist-service/internal/ports"
)

// Only fields named here are returned by the Routes API.
const routesFieldMask = "routes.duration,routes.distanceMeters,routes.legs,routes.polyline.encodedPolyline"

// GoogleRoutesProvider implements RouteProvider using the Google Routes
// API v2 computeRoutes endpoint.
type GoogleRoutesProvider struct {
	googleClient
	baseURL string
	// now is injectable for tests; departure times for traffic-aware
	// routing are derived from it.
	now func() time.Time
}

func NewGoogleRoutesProvider(apiKey string) (*GoogleRoutesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google routes provider: api key is empty")
	}

	return &GoogleRoutesProvider{
		googleClient: newGoogleClient(apiKey),
		baseURL:      "https://routes.googleapis.com",
		now:          time.Now,
	}, nil
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type routeWaypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type computeRoutesRequest struct {
	Origin            routeWaypoint `json:"origin"`
	Destination       routeWaypoint `json:"destination"`
	TravelMode        string        `json:"travelMode"`
	RoutingPreference string        `json:"routingPreference"`
	PolylineQuality   string        `json:"polylineQuality"`
	DepartureTime     string        `json:"departureTime,omitempty"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration       string `json:"duration"`
		DistanceMeters int    `json:"distanceMeters"`
		Polyline       struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
		Legs []struct {
			StartLocation struct {
				LatLng latLng `json:"latLng"`
			} `json:"startLocation"`
			EndLocation struct {
				LatLng latLng `json:"latLng"`
			} `json:"endLocation"`
		} `json:"legs"`
	} `json:"routes"`
}

// ComputeRoute calls computeRoutes and parses the first returned route
// into a typed RouteResult. Zero routes map to domain.ErrRouteNotFound;
// transport failures map to domain.ErrUpstream.
func (g *GoogleRoutesProvider) ComputeRoute(
	ctx context.Context,
	origin, destination domain.GeoPoint,
	opts ports.RouteOptions,
) (*domain.RouteResult, error) {
	if !origin.Valid() || !destination.Valid() {
		return nil, fmt.Errorf("compute route: %w: coordinates out of range", domain.ErrInvalidParameter)
	}

	mode := opts.TravelMode
	if mode == "" {
		mode = "DRIVE"
	}
	pref := opts.RoutingPreference
	if pref == "" {
		pref = "TRAFFIC_AWARE"
	}

	body := computeRoutesRequest{
		TravelMode:        mode,
		RoutingPreference: pref,
		PolylineQuality:   "OVERVIEW",
	}
	body.Origin.Location.LatLng = latLng{origin.Latitude, origin.Longitude}
	body.Destination.Location.LatLng = latLng{destination.Latitude, destination.Longitude}

	// Traffic-aware routing needs a departure time slightly in the
	// future.
	if pref == "TRAFFIC_AWARE" || pref == "TRAFFIC_AWARE_OPTIMAL" {
		body.DepartureTime = g.now().UTC().Add(10 * time.Second).Format(time.RFC3339)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("compute route: marshal request: %w", err)
	}

	endpoint := g.baseURL + "/directions/v2:computeRoutes"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), routesFieldMask)
	})
	if err != nil {
		return nil, fmt.Errorf("compute route: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var decoded computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("compute route: decode response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("compute route: %w", domain.ErrRouteNotFound)
	}
	route := decoded.Routes[0]

	durationSeconds, err := parseDurationSeconds(route.Duration)
	if err != nil {
		return nil, fmt.Errorf("compute route: parse duration: %w", err)
	}

	legs := make([]domain.RouteLeg, 0, len(route.Legs))
	for _, leg := range route.Legs {
		legs = append(legs, domain.RouteLeg{
			Start: domain.GeoPoint{Latitude: leg.StartLocation.LatLng.Latitude, Longitude: leg.StartLocation.LatLng.Longitude},
			End:   domain.GeoPoint{Latitude: leg.EndLocation.LatLng.Latitude, Longitude: leg.EndLocation.LatLng.Longitude},
		})
	}

	// OVERVIEW responses may omit leg detail; fall back to the encoded
	// polyline so the route can still be sampled.
	if len(legs) == 0 && route.Polyline.EncodedPolyline != "" {
		legs, err = geo.LegsFromPolyline(route.Polyline.EncodedPolyline)
		if err != nil {
			return nil, fmt.Errorf("compute route: %w", err)
		}
	}

	return &domain.RouteResult{
		Legs:            legs,
		DistanceKm:      float64(route.DistanceMeters) / 1000,
		DurationMinutes: durationSeconds / 60,
		Polyline:        route.Polyline.EncodedPolyline,
	}, nil
}

// parseDurationSeconds parses the API's "450s" duration format.
func parseDurationSeconds(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty duration string")
	}

	trimmed := strings.TrimSuffix(s, "s")
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed duration %q: %w", s, err)
	}

	return seconds, nil
}
