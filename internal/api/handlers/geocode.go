package handlers

import (
	"net/http"
	"strings"

	"driver-assist-service/internal/api/dto"
	"driver-assist-service/internal/ports"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

// Lookup resolves a city name to coordinates.
func (h *GeocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}
	country := strings.TrimSpace(r.URL.Query().Get("country"))

	result, err := h.Geocoder.CityCoordinates(r.Context(), city, country)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if result == nil {
		writeError(w, r, http.StatusNotFound, "city not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{
		City:             result.CityName,
		Country:          result.Country,
		FormattedAddress: result.FormattedAddress,
		Location:         result.Location,
	})
}
