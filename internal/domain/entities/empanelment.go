package entities

// EmpanelmentStatus tracks a request through its lifecycle. Approved and
// Rejected are terminal and cannot be re-entered.
type EmpanelmentStatus string

const (
	EmpanelmentPending   EmpanelmentStatus = "Pending"
	EmpanelmentReviewing EmpanelmentStatus = "Reviewing"
	EmpanelmentApproved  EmpanelmentStatus = "Approved"
	EmpanelmentRejected  EmpanelmentStatus = "Rejected"
)

// Terminal reports whether s is a terminal lifecycle state
func (s EmpanelmentStatus) Terminal() bool {
	return s == EmpanelmentApproved || s == EmpanelmentRejected
}

// EmpanelmentRequest is a provider's application to join the insurer network
type EmpanelmentRequest struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Type           ProviderType      `json:"type"`
	Date           string            `json:"date"`
	Status         EmpanelmentStatus `json:"status"`
	Specialization string            `json:"specialization"`
}

// EmpanelmentPatch is a partial update to an empanelment request
type EmpanelmentPatch struct {
	Status         *EmpanelmentStatus `json:"status,omitempty"`
	Specialization *string            `json:"specialization,omitempty"`
}

// Apply merges the patch into r
func (patch EmpanelmentPatch) Apply(r *EmpanelmentRequest) {
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.Specialization != nil {
		r.Specialization = *patch.Specialization
	}
}
