package handlers

import (
	"net/http"

	"driver-assist-service/internal/api/dto"
	"driver-assist-service/internal/ports"
	"driver-assist-service/internal/services"
)

type EmergencyHandler struct {
	Places ports.PlaceSearchProvider
}

// Find returns a categorized summary of emergency services around a
// single location.
func (h *EmergencyHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.EmergencyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := services.FindEmergencyServices(r.Context(), h.Places, services.EmergencyRequest{
		Location: req.Location,
		RadiusKm: req.RadiusKm,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, summary)
}
