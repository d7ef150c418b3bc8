package entities

import "time"

// VerificationStatus is the authoritative outcome of a verification run
type VerificationStatus string

const (
	// StatusVerified means every registry check passed
	StatusVerified VerificationStatus = "VERIFIED"

	// StatusFlagged means at least one risk signal fired
	StatusFlagged VerificationStatus = "FLAGGED"

	// StatusPending means the licensing board holds no matching record.
	// The provider is unverifiable, not accused of wrongdoing.
	StatusPending VerificationStatus = "PENDING"
)

// StageStatus describes the state of a single pipeline stage
type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageProcessing StageStatus = "processing"
	StageCompleted  StageStatus = "completed"
	StageFailed     StageStatus = "failed"
)

// ValidStageStatus reports whether s is a recognized stage status
func ValidStageStatus(s StageStatus) bool {
	switch s {
	case StagePending, StageProcessing, StageCompleted, StageFailed:
		return true
	}
	return false
}

// ProviderDescriptor is the input to a verification run. It is never
// persisted directly; verification outcomes reference it by name/license.
type ProviderDescriptor struct {
	Name      string       `json:"name"`
	LicenseID string       `json:"licenseId"`
	Type      ProviderType `json:"type"`
	Address   string       `json:"address"`
}

// PipelineStage is one step of the verification execution trace.
// IDs increase monotonically from "1" and are contiguous.
type PipelineStage struct {
	ID        string      `json:"id"`
	AgentName string      `json:"agentName"`
	Role      string      `json:"role"`
	Status    StageStatus `json:"status"`
	Logs      []string    `json:"logs"`
	Timestamp time.Time   `json:"timestamp"`
}

// VerdictCore is the registry-derived part of a verdict, produced by the
// verdict engine before any trace is assembled.
type VerdictCore struct {
	Status          VerificationStatus `json:"status"`
	ConfidenceScore int                `json:"confidenceScore"`
	Reason          string             `json:"reason"`
	SourcesChecked  []string           `json:"sourcesChecked"`
}

// VerificationVerdict is the full, auditable outcome of a run.
// Verified is always equivalent to Status == StatusVerified.
type VerificationVerdict struct {
	Verified        bool               `json:"verified"`
	Status          VerificationStatus `json:"status"`
	ConfidenceScore int                `json:"confidenceScore"`
	Reason          string             `json:"reason"`
	SourcesChecked  []string           `json:"sourcesChecked"`
	Timestamp       time.Time          `json:"timestamp"`
	Trace           []PipelineStage    `json:"pipelineTrace"`
}

// HistoryRecord is an immutable snapshot of a past verdict for one provider
type HistoryRecord struct {
	ProviderID string              `json:"providerId"`
	Verdict    VerificationVerdict `json:"verdict"`
}
