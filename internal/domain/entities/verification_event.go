package entities

import "time"

// VerificationEventType classifies events published on the event bus
type VerificationEventType string

const (
	// EventVerificationCompleted is published when a verification run finishes
	EventVerificationCompleted VerificationEventType = "verification.completed"

	// EventProviderFlagged is published when a run flags a provider
	EventProviderFlagged VerificationEventType = "provider.flagged"
)

// VerificationEvent notifies dashboard consumers that a run concluded
type VerificationEvent struct {
	ID         string                `json:"id"`
	EventType  VerificationEventType `json:"eventType"`
	ProviderID string                `json:"providerId"`
	Status     VerificationStatus    `json:"status"`
	Confidence int                   `json:"confidence"`
	Reason     string                `json:"reason"`
	Timestamp  time.Time             `json:"timestamp"`
}
