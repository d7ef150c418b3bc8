package handlers

import (
	"net/http"

	"github.com/caresure/providerportal/internal/domain/repositories"
)

// CensusHandler serves the read-only patient and claim views of the portal
type CensusHandler struct {
	store repositories.EntityStore
}

// NewCensusHandler creates a new census handler
func NewCensusHandler(store repositories.EntityStore) *CensusHandler {
	return &CensusHandler{store: store}
}

// ListPatients handles GET /api/patients
func (h *CensusHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.store.GetPatients(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// ListClaims handles GET /api/claims
func (h *CensusHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.store.GetClaims(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"claims": claims,
		"count":  len(claims),
	})
}
