package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caresure/providerportal/internal/application/services"
	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/repositories"
)

// VerificationHandler handles verification run and trace playback requests
type VerificationHandler struct {
	verification *services.VerificationService
	playback     *services.PlaybackService
	history      repositories.HistoryRepository
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(
	verification *services.VerificationService,
	playback *services.PlaybackService,
	history repositories.HistoryRepository,
) *VerificationHandler {
	return &VerificationHandler{
		verification: verification,
		playback:     playback,
		history:      history,
	}
}

// verifyRequest optionally overrides the descriptor of the stored provider,
// letting the demo verify credentials that are not persisted yet
type verifyRequest struct {
	Name      string `json:"name"`
	LicenseID string `json:"licenseId"`
	Type      string `json:"type"`
	Address   string `json:"address"`
}

// RunVerification handles POST /api/verification/{providerID}
func (h *VerificationHandler) RunVerification(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("providerID")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	var req verifyRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var verdict *entities.VerificationVerdict
	var err error
	if req.Name != "" {
		descriptor := entities.ProviderDescriptor{
			Name:      req.Name,
			LicenseID: req.LicenseID,
			Type:      entities.ProviderType(req.Type),
			Address:   req.Address,
		}
		verdict, err = h.verification.Verify(r.Context(), providerID, descriptor)
	} else {
		verdict, err = h.verification.VerifyStoredProvider(r.Context(), providerID)
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, verdict)
}

// StreamPlayback handles GET /api/verification/{providerID}/stream.
// It replays the provider's most recent trace over SSE, one stage per tick.
func (h *VerificationHandler) StreamPlayback(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("providerID")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	records, err := h.history.List(r.Context(), providerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if len(records) == 0 {
		respondWithError(w, http.StatusNotFound, "no verification runs recorded for provider")
		return
	}
	latest := records[0].Verdict

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sendSSE(w, "connected", map[string]interface{}{
		"providerId": providerID,
		"stages":     len(latest.Trace),
		"timestamp":  time.Now().UTC(),
	})
	flusher.Flush()

	run := h.playback.Start(r.Context(), providerID, latest.Trace)
	defer run.Cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case stage, ok := <-run.Stages():
			if !ok {
				sendSSE(w, "verdict", latest)
				flusher.Flush()
				return
			}
			sendSSE(w, "stage", stage)
			flusher.Flush()
		}
	}
}

// sendSSE writes a single Server-Sent Event
func sendSSE(w http.ResponseWriter, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload)
}
