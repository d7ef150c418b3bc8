package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/domain/entities"
)

var testDescriptor = entities.ProviderDescriptor{
	Name:      "Dr. Sarah Jenning",
	LicenseID: "MD-CA-49210",
	Type:      entities.ProviderDoctor,
}

func verifiedCore() entities.VerdictCore {
	return entities.VerdictCore{
		Status:          entities.StatusVerified,
		ConfidenceScore: ConfidenceVerified,
		Reason:          "all checks passed",
	}
}

func flaggedCore() entities.VerdictCore {
	return entities.VerdictCore{
		Status:          entities.StatusFlagged,
		ConfidenceScore: ConfidenceSanctioned,
		Reason:          "sanction on record",
	}
}

func wellFormedStages() []entities.PipelineStage {
	return []entities.PipelineStage{
		{ID: "1", AgentName: "Orchestrator", Role: "Init", Status: entities.StageCompleted, Logs: []string{"pipeline started"}},
		{ID: "2", AgentName: "Agent 1", Role: "Data Acquisition", Status: entities.StageCompleted, Logs: []string{"fetched registries"}},
		{ID: "3", AgentName: "Agent 2", Role: "Validation", Status: entities.StageCompleted, Logs: []string{"validated"}},
	}
}

func assertSchemaValid(t *testing.T, stages []entities.PipelineStage) {
	t.Helper()
	require.NotEmpty(t, stages)
	for i, stage := range stages {
		assert.Equal(t, strconv.Itoa(i+1), stage.ID)
		assert.NotEmpty(t, stage.Logs)
		assert.True(t, entities.ValidStageStatus(stage.Status))
		assert.False(t, stage.Timestamp.IsZero())
	}
}

func TestAssembleTraceNilStagesUsesFallback(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	stages := svc.AssembleTrace(testDescriptor, verifiedCore(), nil)

	assertSchemaValid(t, stages)
	require.Len(t, stages, 5)
	assert.Equal(t, "Orchestrator", stages[0].Role)
	assert.Equal(t, entities.StageCompleted, stages[2].Status)
}

func TestAssembleTraceFallbackReflectsFlaggedVerdict(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	stages := svc.AssembleTrace(testDescriptor, flaggedCore(), nil)

	require.Len(t, stages, 5)
	// Validation fails; persistence and sync complete but report skipped work
	assert.Equal(t, entities.StageFailed, stages[2].Status)
	assert.Contains(t, stages[2].Logs[1], "sanction on record")
	assert.Equal(t, entities.StageCompleted, stages[3].Status)
	assert.Contains(t, stages[3].Logs[0], "skipped")
	assert.Equal(t, entities.StageCompleted, stages[4].Status)
	assert.Contains(t, stages[4].Logs[0], "skipped")
}

func TestAssembleTraceMalformedFallsBackLikeNil(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	malformed := [][]entities.PipelineStage{
		// missing logs
		{{ID: "1", AgentName: "A", Role: "Init", Status: entities.StageCompleted}},
		// ids not starting at "1"
		{{ID: "2", AgentName: "A", Role: "Init", Status: entities.StageCompleted, Logs: []string{"x"}}},
		// non-contiguous ids
		{
			{ID: "1", AgentName: "A", Role: "Init", Status: entities.StageCompleted, Logs: []string{"x"}},
			{ID: "3", AgentName: "B", Role: "Validation", Status: entities.StageCompleted, Logs: []string{"y"}},
		},
		// non-integer id
		{{ID: "one", AgentName: "A", Role: "Init", Status: entities.StageCompleted, Logs: []string{"x"}}},
		// unrecognized status
		{{ID: "1", AgentName: "A", Role: "Init", Status: "done", Logs: []string{"x"}}},
		// empty
		{},
	}

	want := svc.AssembleTrace(testDescriptor, verifiedCore(), nil)

	for _, raw := range malformed {
		got := svc.AssembleTrace(testDescriptor, verifiedCore(), raw)
		require.Len(t, got, len(want))
		for i := range got {
			assert.Equal(t, want[i].ID, got[i].ID)
			assert.Equal(t, want[i].AgentName, got[i].AgentName)
			assert.Equal(t, want[i].Status, got[i].Status)
			assert.Equal(t, want[i].Logs, got[i].Logs)
		}
	}
}

func TestAssembleTraceValidStagesAreKept(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	stages := svc.AssembleTrace(testDescriptor, verifiedCore(), wellFormedStages())

	require.Len(t, stages, 3)
	assert.Equal(t, "Data Acquisition", stages[1].Role)
	assert.Equal(t, []string{"fetched registries"}, stages[1].Logs)
	assertSchemaValid(t, stages)
}

func TestAssembleTraceForcesTerminalStageToMatchVerdict(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	// Generator claims validation completed, but the verdict is FLAGGED
	stages := svc.AssembleTrace(testDescriptor, flaggedCore(), wellFormedStages())
	require.Len(t, stages, 3)
	assert.Equal(t, entities.StageFailed, stages[2].Status)

	// Generator claims validation failed, but the verdict is VERIFIED
	raw := wellFormedStages()
	raw[2].Status = entities.StageFailed
	stages = svc.AssembleTrace(testDescriptor, verifiedCore(), raw)
	assert.Equal(t, entities.StageCompleted, stages[2].Status)
}

func TestAssembleTracePrefersValidationStageOverLater(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	raw := []entities.PipelineStage{
		{ID: "1", AgentName: "Orchestrator", Role: "Init", Status: entities.StageCompleted, Logs: []string{"x"}},
		{ID: "2", AgentName: "Agent 2", Role: "Validation", Status: entities.StageCompleted, Logs: []string{"x"}},
		{ID: "3", AgentName: "Data Store", Role: "Persistence", Status: entities.StageCompleted, Logs: []string{"x"}},
	}

	stages := svc.AssembleTrace(testDescriptor, flaggedCore(), raw)
	require.Len(t, stages, 3)
	assert.Equal(t, entities.StageFailed, stages[1].Status)
	assert.Equal(t, entities.StageCompleted, stages[2].Status)
}

func TestAssembleTraceDoesNotMutateInput(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	raw := wellFormedStages()
	svc.AssembleTrace(testDescriptor, flaggedCore(), raw)

	assert.Equal(t, entities.StageCompleted, raw[2].Status)
}

func TestAssembleTraceFillsMissingTimestamps(t *testing.T) {
	svc := NewTraceService(zerolog.Nop())

	raw := wellFormedStages()
	raw[0].Timestamp = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	stages := svc.AssembleTrace(testDescriptor, verifiedCore(), raw)
	assert.Equal(t, raw[0].Timestamp, stages[0].Timestamp)
	assert.False(t, stages[1].Timestamp.IsZero())
}
