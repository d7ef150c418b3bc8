package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/providers"
	"github.com/caresure/providerportal/internal/domain/repositories"
	apperrors "github.com/caresure/providerportal/pkg/errors"
)

// DefaultGenerationTimeout bounds the trace-generation collaborator call
const DefaultGenerationTimeout = 10 * time.Second

// VerificationService orchestrates a verification run end to end: the
// verdict engine decides, the trace generator elaborates, the assembler
// validates, and the results are persisted and broadcast. Collaborator
// failures degrade the trace, never the verdict.
type VerificationService struct {
	verdicts   *VerdictService
	traces     *TraceService
	generator  providers.TraceGenerator
	store      repositories.EntityStore
	history    repositories.HistoryRepository
	bus        providers.EventBus
	genTimeout time.Duration
	logger     zerolog.Logger
}

// NewVerificationService creates a verification service. bus may be nil when
// no event transport is configured.
func NewVerificationService(
	verdicts *VerdictService,
	traces *TraceService,
	generator providers.TraceGenerator,
	store repositories.EntityStore,
	history repositories.HistoryRepository,
	bus providers.EventBus,
	genTimeout time.Duration,
	logger zerolog.Logger,
) *VerificationService {
	if genTimeout <= 0 {
		genTimeout = DefaultGenerationTimeout
	}
	return &VerificationService{
		verdicts:   verdicts,
		traces:     traces,
		generator:  generator,
		store:      store,
		history:    history,
		bus:        bus,
		genTimeout: genTimeout,
		logger:     logger.With().Str("component", "verification").Logger(),
	}
}

// Verify runs the full pipeline for one provider and returns the auditable
// verdict. providerID identifies the persisted provider to update and to key
// the history log; the descriptor carries what the registries are asked about.
func (s *VerificationService) Verify(ctx context.Context, providerID string, descriptor entities.ProviderDescriptor) (*entities.VerificationVerdict, error) {
	core := s.verdicts.Evaluate(descriptor)

	rawStages := s.generateStages(ctx, descriptor, core)
	trace := s.traces.AssembleTrace(descriptor, core, rawStages)

	verdict := entities.VerificationVerdict{
		Verified:        core.Status == entities.StatusVerified,
		Status:          core.Status,
		ConfidenceScore: core.ConfidenceScore,
		Reason:          core.Reason,
		SourcesChecked:  core.SourcesChecked,
		Timestamp:       time.Now().UTC(),
		Trace:           trace,
	}

	if err := s.history.Append(ctx, providerID, verdict); err != nil {
		return nil, err
	}

	if core.Status == entities.StatusFlagged {
		s.escalateProvider(ctx, providerID)
	}

	s.publishEvents(ctx, providerID, verdict)

	s.logger.Info().
		Str("provider_id", providerID).
		Str("status", string(verdict.Status)).
		Int("confidence", verdict.ConfidenceScore).
		Msg("verification run completed")

	return &verdict, nil
}

// VerifyStoredProvider verifies a provider already persisted in the entity
// store, building the descriptor from its record.
func (s *VerificationService) VerifyStoredProvider(ctx context.Context, providerID string) (*entities.VerificationVerdict, error) {
	provider, err := s.store.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	descriptor := entities.ProviderDescriptor{
		Name:      provider.Name,
		LicenseID: provider.License,
		Type:      provider.Type,
		Address:   provider.Address,
	}
	return s.Verify(ctx, providerID, descriptor)
}

// generateStages asks the collaborator for an advisory trace under a bounded
// timeout. Any failure yields nil; the assembler falls back deterministically.
func (s *VerificationService) generateStages(ctx context.Context, descriptor entities.ProviderDescriptor, core entities.VerdictCore) []entities.PipelineStage {
	if s.generator == nil {
		return nil
	}

	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	stages, err := s.generator.GenerateTrace(genCtx, descriptor, core)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("provider", descriptor.Name).
			Msg("trace generation failed, using fallback trace")
		return nil
	}
	return stages
}

// escalateProvider raises a flagged provider's persisted risk profile. A
// descriptor with no persisted record (unknown id) is not an error here.
func (s *VerificationService) escalateProvider(ctx context.Context, providerID string) {
	risk := entities.RiskHigh
	surveillance := true
	if _, err := s.store.UpdateProvider(ctx, providerID, entities.ProviderPatch{
		Risk:              &risk,
		UnderSurveillance: &surveillance,
	}); err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error().Err(err).
				Str("provider_id", providerID).
				Msg("failed to escalate flagged provider")
		}
	}
}

// publishEvents broadcasts the run outcome; bus failures are logged and
// swallowed since delivery is best-effort.
func (s *VerificationService) publishEvents(ctx context.Context, providerID string, verdict entities.VerificationVerdict) {
	if s.bus == nil {
		return
	}

	event := &entities.VerificationEvent{
		ID:         uuid.New().String(),
		EventType:  entities.EventVerificationCompleted,
		ProviderID: providerID,
		Status:     verdict.Status,
		Confidence: verdict.ConfidenceScore,
		Reason:     verdict.Reason,
		Timestamp:  verdict.Timestamp,
	}
	if verdict.Status == entities.StatusFlagged {
		event.EventType = entities.EventProviderFlagged
	}

	for _, channel := range []string{
		providers.EventChannelVerifications,
		providers.GetProviderChannel(providerID),
	} {
		if err := s.bus.Publish(ctx, channel, event); err != nil {
			s.logger.Warn().Err(err).
				Str("channel", channel).
				Msg("failed to publish verification event")
		}
	}
}
