package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/caresure/providerportal/internal/application/services"
	"github.com/caresure/providerportal/internal/domain/entities"
)

// EmpanelmentHandler handles empanelment-request HTTP requests
type EmpanelmentHandler struct {
	empanelment *services.EmpanelmentService
}

// NewEmpanelmentHandler creates a new empanelment handler
func NewEmpanelmentHandler(empanelment *services.EmpanelmentService) *EmpanelmentHandler {
	return &EmpanelmentHandler{empanelment: empanelment}
}

// ListRequests handles GET /api/empanelment
func (h *EmpanelmentHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.empanelment.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetRequest handles GET /api/empanelment/{id}
func (h *EmpanelmentHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "request ID is required")
		return
	}

	request, err := h.empanelment.Get(r.Context(), requestID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, request)
}

type transitionRequest struct {
	Status entities.EmpanelmentStatus `json:"status"`
}

// TransitionRequest handles PATCH /api/empanelment/{id}
func (h *EmpanelmentHandler) TransitionRequest(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "request ID is required")
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		respondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := h.empanelment.Transition(r.Context(), requestID, req.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}
