package history

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/providers"
	apperrors "github.com/caresure/providerportal/pkg/errors"
)

const keyPrefix = "history:"

// KVHistory is the append-only verification log, persisted per provider
// under its own key namespace. Records are immutable once written; there is
// no update or delete operation.
type KVHistory struct {
	kv     providers.KVStore
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewKVHistory creates a history log over the given durable backing
func NewKVHistory(kv providers.KVStore, logger zerolog.Logger) *KVHistory {
	return &KVHistory{
		kv:     kv,
		logger: logger.With().Str("component", "history").Logger(),
	}
}

// Append adds an immutable verdict record for a provider. Records are kept
// newest-first so listing never re-sorts.
func (h *KVHistory) Append(ctx context.Context, providerID string, verdict entities.VerificationVerdict) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	records, err := h.readLocked(ctx, providerID)
	if err != nil {
		return err
	}

	record := entities.HistoryRecord{ProviderID: providerID, Verdict: verdict}
	records = append([]entities.HistoryRecord{record}, records...)

	raw, err := json.Marshal(records)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize history", err)
	}
	if err := h.kv.Set(ctx, keyPrefix+providerID, raw); err != nil {
		return apperrors.NewInternalError("failed to persist history", err)
	}

	h.logger.Debug().
		Str("provider_id", providerID).
		Str("status", string(verdict.Status)).
		Int("records", len(records)).
		Msg("verification record appended")
	return nil
}

// List returns a provider's records ordered newest-first. Unknown providers
// yield an empty slice, never an error.
func (h *KVHistory) List(ctx context.Context, providerID string) ([]entities.HistoryRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.readLocked(ctx, providerID)
}

func (h *KVHistory) readLocked(ctx context.Context, providerID string) ([]entities.HistoryRecord, error) {
	raw, err := h.kv.Get(ctx, keyPrefix+providerID)
	if errors.Is(err, providers.ErrKeyNotFound) {
		return []entities.HistoryRecord{}, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read history", err)
	}

	var records []entities.HistoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// A corrupt log is recoverable: start a fresh one rather than block
		// all future verifications for this provider.
		h.logger.Warn().Err(err).
			Str("provider_id", providerID).
			Msg("history log unreadable, starting fresh")
		return []entities.HistoryRecord{}, nil
	}
	return records, nil
}
