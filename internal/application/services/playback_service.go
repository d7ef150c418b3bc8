package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/caresure/providerportal/internal/domain/entities"
)

// DefaultPlaybackInterval is the cadence at which assembled stages are
// revealed to a consumer
const DefaultPlaybackInterval = 800 * time.Millisecond

// PlaybackRun is a handle on one in-flight playback. Stages are delivered in
// assembled order on the Stages channel, which is closed when the run
// completes or is cancelled.
type PlaybackRun struct {
	providerID string
	out        chan entities.PipelineStage
	cancel     context.CancelFunc
	once       sync.Once
}

// Stages returns the delivery channel for this run
func (r *PlaybackRun) Stages() <-chan entities.PipelineStage {
	return r.out
}

// Cancel stops further delivery. It is safe to call more than once and after
// completion.
func (r *PlaybackRun) Cancel() {
	r.once.Do(r.cancel)
}

// PlaybackService reveals assembled traces to consumers one stage at a time
// on a fixed cadence. At most one playback is active per provider: starting
// a new run supersedes and cancels any in-flight run for that provider.
type PlaybackService struct {
	interval time.Duration
	logger   zerolog.Logger

	mu   sync.Mutex
	runs map[string]*PlaybackRun
}

// NewPlaybackService creates a playback service with the given cadence;
// a non-positive interval falls back to the default.
func NewPlaybackService(interval time.Duration, logger zerolog.Logger) *PlaybackService {
	if interval <= 0 {
		interval = DefaultPlaybackInterval
	}
	return &PlaybackService{
		interval: interval,
		logger:   logger.With().Str("component", "playback").Logger(),
		runs:     make(map[string]*PlaybackRun),
	}
}

// Start begins a playback of stages for providerID, cancelling any run
// already in flight for the same provider. Delivery order is exactly the
// input order; cancellation (via the handle or ctx) is checked before every
// delivery, so no stage is delivered after it is requested.
func (s *PlaybackService) Start(ctx context.Context, providerID string, stages []entities.PipelineStage) *PlaybackRun {
	runCtx, cancel := context.WithCancel(ctx)
	run := &PlaybackRun{
		providerID: providerID,
		out:        make(chan entities.PipelineStage),
		cancel:     cancel,
	}

	s.mu.Lock()
	if prev, ok := s.runs[providerID]; ok {
		prev.Cancel()
		s.logger.Debug().Str("provider_id", providerID).Msg("superseding in-flight playback")
	}
	s.runs[providerID] = run
	s.mu.Unlock()

	go s.deliver(runCtx, run, stages)
	return run
}

// Cancel stops the active playback for a provider, if any
func (s *PlaybackService) Cancel(providerID string) {
	s.mu.Lock()
	run, ok := s.runs[providerID]
	s.mu.Unlock()
	if ok {
		run.Cancel()
	}
}

// Close cancels all in-flight playbacks
func (s *PlaybackService) Close() {
	s.mu.Lock()
	runs := make([]*PlaybackRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	s.mu.Unlock()

	for _, run := range runs {
		run.Cancel()
	}
}

func (s *PlaybackService) deliver(ctx context.Context, run *PlaybackRun, stages []entities.PipelineStage) {
	defer func() {
		close(run.out)
		s.mu.Lock()
		// Only forget the run if it has not already been superseded
		if s.runs[run.providerID] == run {
			delete(s.runs, run.providerID)
		}
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for _, stage := range stages {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// The tick and a cancellation can race; re-check before delivering
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case run.out <- stage:
		}
	}

	s.logger.Debug().
		Str("provider_id", run.providerID).
		Int("stages", len(stages)).
		Msg("playback completed")
}
