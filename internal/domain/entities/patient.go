package entities

// PatientStatus tracks a patient's current care setting
type PatientStatus string

const (
	PatientAdmitted   PatientStatus = "Admitted"
	PatientDischarged PatientStatus = "Discharged"
	PatientOutpatient PatientStatus = "Outpatient"
)

// Patient is a persisted patient record shown on the provider dashboard
type Patient struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Age               int           `json:"age"`
	Gender            string        `json:"gender"`
	Condition         string        `json:"condition"`
	LastVisit         string        `json:"lastVisit"`
	Status            PatientStatus `json:"status"`
	InsuranceProvider string        `json:"insuranceProvider"`
}

// PatientPatch is a partial update to a patient record
type PatientPatch struct {
	Condition *string        `json:"condition,omitempty"`
	LastVisit *string        `json:"lastVisit,omitempty"`
	Status    *PatientStatus `json:"status,omitempty"`
}

// Apply merges the patch into p
func (patch PatientPatch) Apply(p *Patient) {
	if patch.Condition != nil {
		p.Condition = *patch.Condition
	}
	if patch.LastVisit != nil {
		p.LastVisit = *patch.LastVisit
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
}
