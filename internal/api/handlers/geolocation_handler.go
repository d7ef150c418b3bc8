package handlers

import (
	"net/http"

	"github.com/caresure/providerportal/internal/adapters/registry"
	"github.com/caresure/providerportal/internal/domain/repositories"
)

// GeolocationHandler serves provider coordinates for the public "near me" view
type GeolocationHandler struct {
	registry repositories.RegistryStore
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(reg repositories.RegistryStore) *GeolocationHandler {
	return &GeolocationHandler{registry: reg}
}

// Geocode handles GET /api/geocode?providerId=X
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	providerID := r.URL.Query().Get("providerId")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "providerId query parameter is required")
		return
	}

	coords := h.registry.Geocode(providerID)
	if coords == nil {
		respondWithError(w, http.StatusNotFound, "no coordinates known for provider")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providerId":  providerID,
		"coordinates": coords,
	})
}

// Distance handles GET /api/distance?from=X&to=Y. Both parameters are
// provider ids with known coordinates.
func (h *GeolocationHandler) Distance(w http.ResponseWriter, r *http.Request) {
	fromID := r.URL.Query().Get("from")
	toID := r.URL.Query().Get("to")
	if fromID == "" || toID == "" {
		respondWithError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	from := h.registry.Geocode(fromID)
	to := h.registry.Geocode(toID)
	if from == nil || to == nil {
		respondWithError(w, http.StatusNotFound, "no coordinates known for one or both providers")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"from":       fromID,
		"to":         toID,
		"distanceKm": registry.Distance(*from, *to),
	})
}
