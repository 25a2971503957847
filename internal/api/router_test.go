package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driver-assist-service/internal/adapters/maps"
	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/ports"
)

type mockGeocoder struct {
	result *ports.GeocodedCity
	err    error
}

func (m *mockGeocoder) CityCoordinates(ctx context.Context, city, country string) (*ports.GeocodedCity, error) {
	return m.result, m.err
}

func testRoute() *domain.RouteResult {
	return &domain.RouteResult{
		Legs: []domain.RouteLeg{{
			Start: domain.GeoPoint{Latitude: 41.0082, Longitude: 28.9784},
			End:   domain.GeoPoint{Latitude: 39.9334, Longitude: 32.8597},
		}},
		DistanceKm:      454,
		DurationMinutes: 305,
	}
}

func newTestRouter(routes *maps.MockRouteProvider, places *maps.MockPlaceSearchProvider, geocoder ports.Geocoder) http.Handler {
	if routes == nil {
		routes = &maps.MockRouteProvider{Result: testRoute()}
	}
	if places == nil {
		places = &maps.MockPlaceSearchProvider{}
	}
	if geocoder == nil {
		geocoder = &mockGeocoder{}
	}
	return NewRouter(routes, places, geocoder)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouteServicesEndpoint(t *testing.T) {
	places := &maps.MockPlaceSearchProvider{Places: []domain.PlaceRecord{
		{ID: "p1", Name: "Shell", Location: domain.GeoPoint{Latitude: 41.01, Longitude: 28.98}, Types: []string{"gas_station"}},
	}}
	h := newTestRouter(nil, places, nil)

	rec := postJSON(t, h, "/route/services", map[string]any{
		"origin":      map[string]float64{"latitude": 41.0082, "longitude": 28.9784},
		"destination": map[string]float64{"latitude": 39.9334, "longitude": 32.8597},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.RouteServiceReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TotalServices)
	assert.Equal(t, 1, report.ServicesByType["gas_station"])
	assert.NotEmpty(t, report.Points)
}

func TestRouteServicesRejectsMalformedBody(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/route/services", bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteServicesRejectsUnknownFields(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	rec := postJSON(t, h, "/route/services", map[string]any{
		"origin":      map[string]float64{"latitude": 41, "longitude": 29},
		"destination": map[string]float64{"latitude": 40, "longitude": 33},
		"waypoints":   []string{"x"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteServicesErrorMapping(t *testing.T) {
	body := map[string]any{
		"origin":      map[string]float64{"latitude": 41, "longitude": 29},
		"destination": map[string]float64{"latitude": 40, "longitude": 33},
	}

	cases := []struct {
		name   string
		routes *maps.MockRouteProvider
		want   int
	}{
		{"route not found", &maps.MockRouteProvider{Err: domain.ErrRouteNotFound}, http.StatusNotFound},
		{"upstream down", &maps.MockRouteProvider{Err: domain.ErrUpstream}, http.StatusBadGateway},
		{"invalid parameter", &maps.MockRouteProvider{Err: domain.ErrInvalidParameter}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(tc.routes, nil, nil)

			rec := postJSON(t, h, "/route/services", body)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRouteServicesRequiresPost(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/route/services", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestRouteStopsEndpoint(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	rec := postJSON(t, h, "/route/stops", map[string]any{
		"origin":              map[string]float64{"latitude": 41.0082, "longitude": 28.9784},
		"destination":         map[string]float64{"latitude": 39.9334, "longitude": 32.8597},
		"driving_hours_limit": 4.5,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var plan domain.StopPlanResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, 1, plan.StopsNeeded)
	require.Len(t, plan.Stops, 1)
	assert.InDelta(t, 227, plan.Stops[0].PlannedDistanceKm, 1e-9)
}

func TestEmergencyEndpoint(t *testing.T) {
	places := &maps.MockPlaceSearchProvider{Places: []domain.PlaceRecord{
		{ID: "h1", Name: "Devlet Hastanesi", Types: []string{"hospital"}},
	}}
	h := newTestRouter(nil, places, nil)

	rec := postJSON(t, h, "/emergency", map[string]any{
		"location": map[string]float64{"latitude": 41.0082, "longitude": 28.9784},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.EmergencySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Len(t, summary.Services, 4)
	assert.Contains(t, summary.Services, domain.CategoryHospital)
}

func TestGeocodeEndpoint(t *testing.T) {
	geocoder := &mockGeocoder{result: &ports.GeocodedCity{
		CityName:         "Ankara",
		Country:          "Türkiye",
		FormattedAddress: "Ankara, Türkiye",
		Location:         domain.GeoPoint{Latitude: 39.9334, Longitude: 32.8597},
	}}
	h := newTestRouter(nil, nil, geocoder)

	req := httptest.NewRequest(http.MethodGet, "/geocode?city=Ankara&country=Turkey", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ankara", body["city"])
}

func TestGeocodeRequiresCity(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/geocode", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeocodeUnknownCity(t *testing.T) {
	h := newTestRouter(nil, nil, &mockGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/geocode?city=Nowheresville", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
