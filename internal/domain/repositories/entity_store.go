package repositories

import (
	"context"

	"github.com/caresure/providerportal/internal/domain/entities"
)

// EntityStore is the durable, versioned owner of the portal's mutable state.
// Getters return defensive copies; updates are atomic partial merges with
// last-write-wins semantics. An unknown id yields a typed not-found error,
// never a fault.
type EntityStore interface {
	// Load initializes the store from its durable backing: seeding on first
	// run, shallow-merging an existing snapshot over the seed, and reseeding
	// when the snapshot is unreadable.
	Load(ctx context.Context) error

	// Flush persists the current snapshot to the durable backing
	Flush(ctx context.Context) error

	GetProviders(ctx context.Context) ([]entities.Provider, error)
	GetProvider(ctx context.Context, id string) (*entities.Provider, error)
	UpdateProvider(ctx context.Context, id string, patch entities.ProviderPatch) (*entities.Provider, error)

	GetEmpanelmentRequests(ctx context.Context) ([]entities.EmpanelmentRequest, error)
	GetEmpanelmentRequest(ctx context.Context, id string) (*entities.EmpanelmentRequest, error)
	UpdateEmpanelmentRequest(ctx context.Context, id string, patch entities.EmpanelmentPatch) (*entities.EmpanelmentRequest, error)

	GetPatients(ctx context.Context) ([]entities.Patient, error)
	UpdatePatient(ctx context.Context, id string, patch entities.PatientPatch) (*entities.Patient, error)

	GetClaims(ctx context.Context) ([]entities.Claim, error)
	UpdateClaim(ctx context.Context, id string, patch entities.ClaimPatch) (*entities.Claim, error)
}

// HistoryRepository owns the append-only verification log. Records are never
// mutated or deleted; listing an unknown provider returns an empty slice.
type HistoryRepository interface {
	// Append adds an immutable verdict record for a provider
	Append(ctx context.Context, providerID string, verdict entities.VerificationVerdict) error

	// List returns a provider's records ordered newest-first
	List(ctx context.Context, providerID string) ([]entities.HistoryRecord, error)
}
