package handlers

import (
	"net/http"

	"driver-assist-service/internal/api/dto"
	"driver-assist-service/internal/ports"
	"driver-assist-service/internal/services"
)

type RouteStopsHandler struct {
	Routes ports.RouteProvider
	Places ports.PlaceSearchProvider
}

// Plan computes regulation rest stops for the route between two points,
// each with nearby candidate services.
func (h *RouteStopsHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RouteStopsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := services.PlanDriverStops(r.Context(), h.Routes, h.Places, services.PlanStopsRequest{
		Origin:             req.Origin,
		Destination:        req.Destination,
		DrivingHoursLimit:  req.DrivingHoursLimit,
		PreferredStopTypes: req.PreferredStopTypes,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, plan)
}
