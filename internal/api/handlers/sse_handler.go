package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/caresure/providerportal/internal/domain/providers"
)

// SSEHandler streams live verification events to dashboard clients
type SSEHandler struct {
	eventBus providers.EventBus
	logger   zerolog.Logger
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus, logger zerolog.Logger) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		logger:   logger.With().Str("component", "sse").Logger(),
	}
}

// StreamVerificationEvents handles GET /api/stream/verifications
func (h *SSEHandler) StreamVerificationEvents(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelVerifications)
}

// StreamProviderEvents handles GET /api/stream/providers/{id}
func (h *SSEHandler) StreamProviderEvents(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}
	h.stream(w, r, providers.GetProviderChannel(providerID))
}

func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string) {
	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "event streaming not configured")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		h.logger.Error().Err(err).Str("channel", channel).Msg("failed to subscribe")
		respondWithError(w, http.StatusInternalServerError, "failed to subscribe to events")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sendSSE(w, "connected", map[string]interface{}{
		"channel":   channel,
		"timestamp": time.Now().UTC(),
	})
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			sendSSE(w, "heartbeat", map[string]interface{}{"timestamp": time.Now().UTC()})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			sendSSE(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}
