package entities

// ClaimStatus tracks an insurance claim through adjudication
type ClaimStatus string

const (
	ClaimApproved ClaimStatus = "Approved"
	ClaimPending  ClaimStatus = "Pending"
	ClaimRejected ClaimStatus = "Rejected"
	ClaimMoreInfo ClaimStatus = "More Info Needed"
)

// Claim is a persisted insurance claim
type Claim struct {
	ID                string      `json:"id"`
	PatientName       string      `json:"patientName"`
	InsuranceProvider string      `json:"insuranceProvider"`
	AmountClaimed     float64     `json:"amountClaimed"`
	AmountApproved    *float64    `json:"amountApproved,omitempty"`
	ServiceDate       string      `json:"serviceDate"`
	SubmittedDate     string      `json:"submittedDate"`
	ReceivedDate      *string     `json:"receivedDate,omitempty"`
	Status            ClaimStatus `json:"status"`
}

// Clone returns a deep copy of the claim. The optional fields are pointers,
// so a plain struct copy would still share them with the original.
func (c Claim) Clone() Claim {
	cp := c
	if c.AmountApproved != nil {
		amount := *c.AmountApproved
		cp.AmountApproved = &amount
	}
	if c.ReceivedDate != nil {
		received := *c.ReceivedDate
		cp.ReceivedDate = &received
	}
	return cp
}

// ClaimPatch is a partial update to a claim
type ClaimPatch struct {
	AmountApproved *float64     `json:"amountApproved,omitempty"`
	ReceivedDate   *string      `json:"receivedDate,omitempty"`
	Status         *ClaimStatus `json:"status,omitempty"`
}

// Apply merges the patch into c. Pointed-to values are cloned so the claim
// never retains a reference the caller can mutate afterwards.
func (patch ClaimPatch) Apply(c *Claim) {
	if patch.AmountApproved != nil {
		amount := *patch.AmountApproved
		c.AmountApproved = &amount
	}
	if patch.ReceivedDate != nil {
		received := *patch.ReceivedDate
		c.ReceivedDate = &received
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
}
