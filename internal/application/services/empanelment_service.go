package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/repositories"
	apperrors "github.com/caresure/providerportal/pkg/errors"
)

// EmpanelmentService manages the lifecycle of provider network applications.
// Approved and Rejected are terminal; a terminal request rejects any further
// transition.
type EmpanelmentService struct {
	store  repositories.EntityStore
	logger zerolog.Logger
}

// NewEmpanelmentService creates an empanelment service
func NewEmpanelmentService(store repositories.EntityStore, logger zerolog.Logger) *EmpanelmentService {
	return &EmpanelmentService{
		store:  store,
		logger: logger.With().Str("component", "empanelment").Logger(),
	}
}

// List returns all empanelment requests
func (s *EmpanelmentService) List(ctx context.Context) ([]entities.EmpanelmentRequest, error) {
	return s.store.GetEmpanelmentRequests(ctx)
}

// Get returns a single empanelment request by id
func (s *EmpanelmentService) Get(ctx context.Context, id string) (*entities.EmpanelmentRequest, error) {
	return s.store.GetEmpanelmentRequest(ctx, id)
}

// Transition moves a request to the given status. Unknown target statuses
// are a validation error; transitions out of a terminal state are a conflict.
func (s *EmpanelmentService) Transition(ctx context.Context, id string, status entities.EmpanelmentStatus) (*entities.EmpanelmentRequest, error) {
	switch status {
	case entities.EmpanelmentPending, entities.EmpanelmentReviewing,
		entities.EmpanelmentApproved, entities.EmpanelmentRejected:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown empanelment status %q", status))
	}

	current, err := s.store.GetEmpanelmentRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() && current.Status != status {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("empanelment request %s is already %s", id, current.Status),
		)
	}

	updated, err := s.store.UpdateEmpanelmentRequest(ctx, id, entities.EmpanelmentPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", id).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("empanelment request transitioned")

	return updated, nil
}
