package handlers

import (
	"net/http"

	"driver-assist-service/internal/api/dto"
	"driver-assist-service/internal/ports"
	"driver-assist-service/internal/services"
)

type RouteServicesHandler struct {
	Routes ports.RouteProvider
	Places ports.PlaceSearchProvider
}

// Find computes the route between two points and aggregates the
// services found around its sampled points.
func (h *RouteServicesHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RouteServicesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := services.FindServicesAlongRoute(r.Context(), h.Routes, h.Places, services.FindServicesRequest{
		Origin:         req.Origin,
		Destination:    req.Destination,
		ServiceTypes:   req.ServiceTypes,
		SearchRadiusKm: req.SearchRadiusKm,
		IntervalKm:     req.IntervalKm,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, report)
}
