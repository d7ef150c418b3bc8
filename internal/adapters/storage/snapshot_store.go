package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/providers"
	apperrors "github.com/caresure/providerportal/pkg/errors"
	"github.com/caresure/providerportal/pkg/retry"
)

// SnapshotKey is the durable-store key holding the full entity snapshot
const SnapshotKey = "entity-store:snapshot"

// Collection names inside the snapshot document
const (
	collectionProviders   = "providers"
	collectionEmpanelment = "empanelmentRequests"
	collectionPatients    = "patients"
	collectionClaims      = "claims"
	fieldVersion          = "version"
)

// SnapshotStore keeps all portal collections in memory and persists them as
// one serialized document through a pluggable KVStore. Mutations are
// serialized behind a single mutex: each update is atomic with respect to
// other updates (no torn writes), with last-write-wins semantics and no
// compare-and-swap.
type SnapshotStore struct {
	kv     providers.KVStore
	logger zerolog.Logger

	mu       sync.RWMutex
	version  int64
	provs    []entities.Provider
	requests []entities.EmpanelmentRequest
	patients []entities.Patient
	claims   []entities.Claim

	// extra carries collections this build does not know about, so a newer
	// deployment's data is never silently dropped on rewrite.
	extra map[string]json.RawMessage
}

// NewSnapshotStore creates a snapshot store over the given durable backing
func NewSnapshotStore(kv providers.KVStore, logger zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		kv:     kv,
		logger: logger.With().Str("component", "entity_store").Logger(),
		extra:  make(map[string]json.RawMessage),
	}
}

// Load initializes the store from its durable backing. With no snapshot the
// seed dataset is persisted; an existing snapshot is shallow-merged over the
// seed so new collections get defaults without discarding prior edits; an
// unreadable snapshot is discarded and reseeded (recoverable, logged).
func (s *SnapshotStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applySeed()

	raw, err := s.kv.Get(ctx, SnapshotKey)
	if errors.Is(err, providers.ErrKeyNotFound) {
		s.logger.Info().Msg("no durable snapshot found, seeding initial dataset")
		return s.flushLocked(ctx)
	}
	if err != nil {
		return apperrors.NewInternalError("failed to read durable snapshot", err)
	}

	if err := s.mergeSnapshot(raw); err != nil {
		s.logger.Warn().Err(err).Msg("durable snapshot unreadable, discarding and reseeding")
		s.applySeed()
		s.extra = make(map[string]json.RawMessage)
		return s.flushLocked(ctx)
	}

	s.logger.Info().
		Int64("version", s.version).
		Int("providers", len(s.provs)).
		Msg("entity store loaded")
	return nil
}

// Flush persists the current snapshot
func (s *SnapshotStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

// applySeed resets the in-memory collections to the initial dataset
func (s *SnapshotStore) applySeed() {
	seed := SeedDataset()
	s.version = 0
	s.provs = seed.Providers
	s.requests = seed.EmpanelmentRequests
	s.patients = seed.Patients
	s.claims = seed.Claims
}

// mergeSnapshot overlays a persisted document onto the seeded state.
// Collections present in the document replace the seed; missing ones keep
// their defaults; unrecognized ones are retained verbatim for re-persisting.
func (s *SnapshotStore) mergeSnapshot(raw []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("snapshot is not a JSON document: %w", err)
	}

	for key, value := range doc {
		var err error
		switch key {
		case fieldVersion:
			err = json.Unmarshal(value, &s.version)
		case collectionProviders:
			err = json.Unmarshal(value, &s.provs)
		case collectionEmpanelment:
			err = json.Unmarshal(value, &s.requests)
		case collectionPatients:
			err = json.Unmarshal(value, &s.patients)
		case collectionClaims:
			err = json.Unmarshal(value, &s.claims)
		default:
			s.extra[key] = value
		}
		if err != nil {
			return fmt.Errorf("snapshot collection %q is malformed: %w", key, err)
		}
	}
	return nil
}

// flushLocked serializes and persists the snapshot; callers hold s.mu
func (s *SnapshotStore) flushLocked(ctx context.Context) error {
	doc := make(map[string]interface{}, len(s.extra)+5)
	for key, value := range s.extra {
		doc[key] = value
	}
	doc[fieldVersion] = s.version
	doc[collectionProviders] = s.provs
	doc[collectionEmpanelment] = s.requests
	doc[collectionPatients] = s.patients
	doc[collectionClaims] = s.claims

	raw, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize snapshot", err)
	}

	err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		return s.kv.Set(ctx, SnapshotKey, raw)
	})
	if err != nil {
		return apperrors.NewInternalError("failed to persist snapshot", err)
	}
	return nil
}

// GetProviders returns a defensive copy of all providers
func (s *SnapshotStore) GetProviders(ctx context.Context) ([]entities.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Provider, len(s.provs))
	copy(out, s.provs)
	return out, nil
}

// GetProvider returns a defensive copy of one provider
func (s *SnapshotStore) GetProvider(ctx context.Context, id string) (*entities.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.provs {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("provider not found: " + id)
}

// UpdateProvider applies a partial patch to a provider and persists the
// snapshot. Unknown ids return a not-found error without side effects, and a
// failed persist rolls the in-memory state back so reads never observe a
// patch the durable backing rejected.
func (s *SnapshotStore) UpdateProvider(ctx context.Context, id string, patch entities.ProviderPatch) (*entities.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.provs {
		if s.provs[i].ID == id {
			prev := s.provs[i]
			patch.Apply(&s.provs[i])
			s.version++
			if err := s.flushLocked(ctx); err != nil {
				s.provs[i] = prev
				s.version--
				return nil, err
			}
			cp := s.provs[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("provider not found: " + id)
}

// GetEmpanelmentRequests returns a defensive copy of all requests
func (s *SnapshotStore) GetEmpanelmentRequests(ctx context.Context) ([]entities.EmpanelmentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.EmpanelmentRequest, len(s.requests))
	copy(out, s.requests)
	return out, nil
}

// GetEmpanelmentRequest returns a defensive copy of one request
func (s *SnapshotStore) GetEmpanelmentRequest(ctx context.Context, id string) (*entities.EmpanelmentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("empanelment request not found: " + id)
}

// UpdateEmpanelmentRequest applies a partial patch to a request
func (s *SnapshotStore) UpdateEmpanelmentRequest(ctx context.Context, id string, patch entities.EmpanelmentPatch) (*entities.EmpanelmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID == id {
			prev := s.requests[i]
			patch.Apply(&s.requests[i])
			s.version++
			if err := s.flushLocked(ctx); err != nil {
				s.requests[i] = prev
				s.version--
				return nil, err
			}
			cp := s.requests[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("empanelment request not found: " + id)
}

// GetPatients returns a defensive copy of all patients
func (s *SnapshotStore) GetPatients(ctx context.Context) ([]entities.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Patient, len(s.patients))
	copy(out, s.patients)
	return out, nil
}

// UpdatePatient applies a partial patch to a patient record
func (s *SnapshotStore) UpdatePatient(ctx context.Context, id string, patch entities.PatientPatch) (*entities.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == id {
			prev := s.patients[i]
			patch.Apply(&s.patients[i])
			s.version++
			if err := s.flushLocked(ctx); err != nil {
				s.patients[i] = prev
				s.version--
				return nil, err
			}
			cp := s.patients[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("patient not found: " + id)
}

// GetClaims returns a defensive copy of all claims. Claims carry optional
// pointer fields, so each one is cloned rather than shallow-copied.
func (s *SnapshotStore) GetClaims(ctx context.Context) ([]entities.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Claim, len(s.claims))
	for i, c := range s.claims {
		out[i] = c.Clone()
	}
	return out, nil
}

// UpdateClaim applies a partial patch to a claim
func (s *SnapshotStore) UpdateClaim(ctx context.Context, id string, patch entities.ClaimPatch) (*entities.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.claims {
		if s.claims[i].ID == id {
			prev := s.claims[i]
			patch.Apply(&s.claims[i])
			s.version++
			if err := s.flushLocked(ctx); err != nil {
				s.claims[i] = prev
				s.version--
				return nil, err
			}
			cp := s.claims[i].Clone()
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("claim not found: " + id)
}

// Version returns the current snapshot version counter
func (s *SnapshotStore) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
