package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/domain/entities"
)

func numberedStages(n int) []entities.PipelineStage {
	stages := make([]entities.PipelineStage, n)
	for i := range stages {
		stages[i] = entities.PipelineStage{
			ID:        strconv.Itoa(i + 1),
			AgentName: "Agent",
			Role:      "Stage " + strconv.Itoa(i+1),
			Status:    entities.StageCompleted,
			Logs:      []string{"log line"},
			Timestamp: time.Now().UTC(),
		}
	}
	return stages
}

func collect(t *testing.T, run *PlaybackRun, timeout time.Duration) []entities.PipelineStage {
	t.Helper()
	var got []entities.PipelineStage
	deadline := time.After(timeout)
	for {
		select {
		case stage, ok := <-run.Stages():
			if !ok {
				return got
			}
			got = append(got, stage)
		case <-deadline:
			t.Fatalf("playback did not finish within %v (got %d stages)", timeout, len(got))
		}
	}
}

func TestPlaybackDeliversAllStagesInOrder(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	run := svc.Start(context.Background(), "prov-1", numberedStages(5))
	got := collect(t, run, time.Second)

	require.Len(t, got, 5)
	for i, stage := range got {
		assert.Equal(t, strconv.Itoa(i+1), stage.ID)
	}
}

func TestPlaybackCancelStopsFurtherDelivery(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	run := svc.Start(context.Background(), "prov-1", numberedStages(10))

	// Receive two stages, then cancel
	first, ok := <-run.Stages()
	require.True(t, ok)
	assert.Equal(t, "1", first.ID)
	second, ok := <-run.Stages()
	require.True(t, ok)
	assert.Equal(t, "2", second.ID)

	run.Cancel()

	// At most one stage can have been in flight at cancellation time; the
	// channel must close without draining the remaining stages.
	var after []entities.PipelineStage
	for stage := range run.Stages() {
		after = append(after, stage)
	}
	assert.LessOrEqual(t, len(after), 1)
}

func TestPlaybackNewRunSupersedesOldForSameProvider(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	first := svc.Start(context.Background(), "prov-1", numberedStages(50))

	// Take one stage so the first run is mid-flight
	<-first.Stages()

	second := svc.Start(context.Background(), "prov-1", numberedStages(3))

	// The first run's channel closes without completing all its stages
	var leftover int
	for range first.Stages() {
		leftover++
	}
	assert.Less(t, leftover, 49)

	// Only the second run's stages are observed to completion
	got := collect(t, second, time.Second)
	require.Len(t, got, 3)
}

func TestPlaybackRunsForDifferentProvidersAreIndependent(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	a := svc.Start(context.Background(), "prov-a", numberedStages(3))
	b := svc.Start(context.Background(), "prov-b", numberedStages(4))

	assert.Len(t, collect(t, a, time.Second), 3)
	assert.Len(t, collect(t, b, time.Second), 4)
}

func TestPlaybackServiceCancelByProviderID(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	run := svc.Start(context.Background(), "prov-1", numberedStages(100))
	<-run.Stages()

	svc.Cancel("prov-1")

	var rest int
	for range run.Stages() {
		rest++
	}
	assert.Less(t, rest, 99)
}

func TestPlaybackHonorsContextCancellation(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	run := svc.Start(ctx, "prov-1", numberedStages(100))
	<-run.Stages()
	cancel()

	var rest int
	for range run.Stages() {
		rest++
	}
	assert.Less(t, rest, 99)
}

func TestPlaybackCancelIsIdempotent(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	run := svc.Start(context.Background(), "prov-1", numberedStages(2))
	run.Cancel()
	run.Cancel()
	svc.Cancel("prov-1")

	for range run.Stages() {
	}
}

func TestPlaybackEmptyTraceCompletesImmediately(t *testing.T) {
	svc := NewPlaybackService(time.Millisecond, zerolog.Nop())

	run := svc.Start(context.Background(), "prov-1", nil)
	got := collect(t, run, time.Second)
	assert.Empty(t, got)
}
