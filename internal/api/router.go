package api

import (
	"net/http"

	"driver-assist-service/internal/api/handlers"
	"driver-assist-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(routes ports.RouteProvider, places ports.PlaceSearchProvider, geocoder ports.Geocoder) http.Handler {
	mux := http.NewServeMux()

	servicesHandler := &handlers.RouteServicesHandler{Routes: routes, Places: places}
	stopsHandler := &handlers.RouteStopsHandler{Routes: routes, Places: places}
	emergencyHandler := &handlers.EmergencyHandler{Places: places}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/route/services", servicesHandler.Find)
	mux.HandleFunc("/route/stops", stopsHandler.Plan)
	mux.HandleFunc("/emergency", emergencyHandler.Find)
	mux.HandleFunc("/geocode", geocodeHandler.Lookup)

	return loggingMiddleware(mux)
}
