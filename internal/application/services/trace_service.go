package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/caresure/providerportal/internal/domain/entities"
)

// TraceService assembles the ordered pipeline trace attached to a verdict.
// Externally generated stages are advisory input: they are validated and,
// where they disagree with the verdict, corrected. Malformed input is
// discarded in favor of a deterministic fallback trace; it never becomes an
// error for the caller.
type TraceService struct {
	logger zerolog.Logger
}

// NewTraceService creates a trace service
func NewTraceService(logger zerolog.Logger) *TraceService {
	return &TraceService{logger: logger.With().Str("component", "trace_assembler").Logger()}
}

// AssembleTrace returns a schema-valid trace consistent with the verdict.
// If rawStages passes validation it is used, with the terminal
// validation/sync stage's status forced to agree with the verdict; otherwise
// the deterministic fallback trace is generated.
func (s *TraceService) AssembleTrace(descriptor entities.ProviderDescriptor, core entities.VerdictCore, rawStages []entities.PipelineStage) []entities.PipelineStage {
	if err := validateStages(rawStages); err != nil {
		if len(rawStages) > 0 {
			s.logger.Warn().Err(err).
				Str("provider", descriptor.Name).
				Msg("discarding invalid external trace, using fallback")
		}
		return s.fallbackTrace(descriptor, core)
	}

	stages := make([]entities.PipelineStage, len(rawStages))
	copy(stages, rawStages)

	now := time.Now().UTC()
	for i := range stages {
		if stages[i].Timestamp.IsZero() {
			stages[i].Timestamp = now
		}
	}

	// The generator never overrides the authoritative verdict: the terminal
	// validation/sync-relevant stage must read failed iff not VERIFIED.
	idx := terminalStageIndex(stages)
	if core.Status == entities.StatusVerified {
		stages[idx].Status = entities.StageCompleted
	} else {
		stages[idx].Status = entities.StageFailed
	}

	return stages
}

// validateStages checks the external trace against the stage schema:
// non-empty, contiguous integer ids starting at "1", at least one log line
// per stage, and a recognized status.
func validateStages(stages []entities.PipelineStage) error {
	if len(stages) == 0 {
		return fmt.Errorf("trace is empty")
	}
	for i, stage := range stages {
		id, err := strconv.Atoi(stage.ID)
		if err != nil {
			return fmt.Errorf("stage %d has non-integer id %q", i, stage.ID)
		}
		if id != i+1 {
			return fmt.Errorf("stage ids not contiguous: got %q at position %d", stage.ID, i)
		}
		if len(stage.Logs) == 0 {
			return fmt.Errorf("stage %q has no log lines", stage.ID)
		}
		if !entities.ValidStageStatus(stage.Status) {
			return fmt.Errorf("stage %q has unrecognized status %q", stage.ID, stage.Status)
		}
	}
	return nil
}

// terminalStageIndex returns the last validation stage, falling back to the
// last sync-relevant stage and finally to the final stage. Validation is the
// stage where a non-VERIFIED run fails; persistence and sync report skipped
// work but still complete.
func terminalStageIndex(stages []entities.PipelineStage) int {
	for i := len(stages) - 1; i >= 0; i-- {
		if stageMatches(stages[i], "validation") {
			return i
		}
	}
	for i := len(stages) - 1; i >= 0; i-- {
		if stageMatches(stages[i], "sync") {
			return i
		}
	}
	return len(stages) - 1
}

func stageMatches(stage entities.PipelineStage, marker string) bool {
	haystack := strings.ToLower(stage.Role + " " + stage.AgentName)
	return strings.Contains(haystack, marker)
}

// fallbackTrace is the deterministic five-stage trace used whenever the
// text-generation collaborator is absent or returns unusable data
func (s *TraceService) fallbackTrace(descriptor entities.ProviderDescriptor, core entities.VerdictCore) []entities.PipelineStage {
	now := time.Now().UTC()
	verified := core.Status == entities.StatusVerified

	validationStatus := entities.StageCompleted
	validationLogs := []string{
		"Cross-referencing identity registry, licensing board and sanctions list...",
		"Data consistency verified across all sources.",
	}
	if !verified {
		validationStatus = entities.StageFailed
		validationLogs = []string{
			"Cross-referencing identity registry, licensing board and sanctions list...",
			"Anomaly detected: " + core.Reason,
		}
	}

	persistenceLogs := []string{"Writing immutable verification record...", "Audit trail updated."}
	syncLogs := []string{"Pushing update to payer systems...", "Sync acknowledged."}
	if !verified {
		persistenceLogs = []string{"Verdict not VERIFIED: payer record write skipped.", "Audit trail updated with flag."}
		syncLogs = []string{"Verdict not VERIFIED: payer system sync skipped."}
	}

	return []entities.PipelineStage{
		{
			ID:        "1",
			AgentName: "Agentic AI (Orchestrator)",
			Role:      "Orchestrator",
			Status:    entities.StageCompleted,
			Logs: []string{
				fmt.Sprintf("Pipeline initialized for %s (license %s).", descriptor.Name, descriptor.LicenseID),
				"Routing to Agent 1 for data gathering...",
			},
			Timestamp: now,
		},
		{
			ID:        "2",
			AgentName: "Agent 1",
			Role:      "Data Acquisition (Scraper + OCR)",
			Status:    entities.StageCompleted,
			Logs: []string{
				"Querying National Plan and Provider Enumeration System (NPPES)...",
				fmt.Sprintf("Fetching licensing-board profile for license %s...", descriptor.LicenseID),
				"Screening federal sanctions list...",
			},
			Timestamp: now,
		},
		{
			ID:        "3",
			AgentName: "Agent 2",
			Role:      "Validation & Sync (RAG + Diff)",
			Status:    validationStatus,
			Logs:      validationLogs,
			Timestamp: now,
		},
		{
			ID:        "4",
			AgentName: "Data Store",
			Role:      "Persistence",
			Status:    entities.StageCompleted,
			Logs:      persistenceLogs,
			Timestamp: now,
		},
		{
			ID:        "5",
			AgentName: "Update API",
			Role:      "Payer System Sync",
			Status:    entities.StageCompleted,
			Logs:      syncLogs,
			Timestamp: now,
		},
	}
}
