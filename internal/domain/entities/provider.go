package entities

// ProviderType distinguishes individual practitioners from institutions
type ProviderType string

const (
	ProviderDoctor   ProviderType = "Doctor"
	ProviderHospital ProviderType = "Hospital"
)

// RiskLevel grades a persisted provider's compliance risk
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Provider is a persisted network provider. It is owned exclusively by the
// entity store and mutated only through its update operation.
type Provider struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              ProviderType `json:"type"`
	Risk              RiskLevel    `json:"risk"`
	UnderSurveillance bool         `json:"underSurveillance"`
	License           string       `json:"license"`
	Address           string       `json:"address"`
}

// ProviderPatch is a partial update to a provider; nil fields are left
// unchanged (last-write-wins merge).
type ProviderPatch struct {
	Name              *string       `json:"name,omitempty"`
	Type              *ProviderType `json:"type,omitempty"`
	Risk              *RiskLevel    `json:"risk,omitempty"`
	UnderSurveillance *bool         `json:"underSurveillance,omitempty"`
	License           *string       `json:"license,omitempty"`
	Address           *string       `json:"address,omitempty"`
}

// Apply merges the patch into p
func (patch ProviderPatch) Apply(p *Provider) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.Risk != nil {
		p.Risk = *patch.Risk
	}
	if patch.UnderSurveillance != nil {
		p.UnderSurveillance = *patch.UnderSurveillance
	}
	if patch.License != nil {
		p.License = *patch.License
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
}
