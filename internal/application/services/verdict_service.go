package services

import (
	"fmt"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/repositories"
)

// Confidence bands per decision rule. PENDING is pinned to zero; the
// remaining bands are strictly ordered by decreasing risk severity.
const (
	ConfidenceSanctioned   = 20
	ConfidenceUnverifiable = 0
	ConfidenceInactive     = 35
	ConfidenceDisciplinary = 60
	ConfidenceVerified     = 95
)

// Registry sources consulted on every run, regardless of which rule fires
var sourcesChecked = []string{
	"National Identity Registry (NPPES)",
	"State Licensing Board",
	"Federal Sanctions List (OIG LEIE)",
}

// VerdictService derives the authoritative verification verdict from the
// registry snapshot. Evaluate is a pure function of the snapshot and the
// descriptor: no side effects, no suspension, identical inputs always yield
// identical output. The text-generation collaborator never participates.
type VerdictService struct {
	registry repositories.RegistryStore
}

// NewVerdictService creates a verdict service over a registry snapshot
func NewVerdictService(registry repositories.RegistryStore) *VerdictService {
	return &VerdictService{registry: registry}
}

// Evaluate applies the decision policy in strict precedence order, most
// severe signal first:
//
//  1. sanction on record        -> FLAGGED (hard override)
//  2. no license record         -> PENDING (unverifiable, not accused)
//  3. license not ACTIVE        -> FLAGGED
//  4. disciplinary history      -> FLAGGED, manual review
//  5. otherwise                 -> VERIFIED
func (s *VerdictService) Evaluate(descriptor entities.ProviderDescriptor) entities.VerdictCore {
	identity := s.registry.FindIdentity(descriptor.Name)
	license := s.registry.FindLicense(descriptor.LicenseID)
	sanction := s.registry.FindSanction(descriptor.Name)

	core := entities.VerdictCore{
		SourcesChecked: append([]string(nil), sourcesChecked...),
	}

	switch {
	case sanction != nil:
		core.Status = entities.StatusFlagged
		core.ConfidenceScore = ConfidenceSanctioned
		core.Reason = fmt.Sprintf(
			"Sanction on record (%s, %s): %s.",
			sanction.Source, sanction.Date, sanction.Reason,
		)

	case license == nil:
		core.Status = entities.StatusPending
		core.ConfidenceScore = ConfidenceUnverifiable
		core.Reason = fmt.Sprintf(
			"License %s could not be located in the licensing-board registry; provider is unverifiable.",
			descriptor.LicenseID,
		)

	case license.Status != entities.LicenseActive:
		core.Status = entities.StatusFlagged
		core.ConfidenceScore = ConfidenceInactive
		core.Reason = fmt.Sprintf(
			"License %s is %s (expiry %s).",
			license.LicenseID, license.Status, license.Expiry,
		)

	case license.HasDisciplinaryHistory:
		core.Status = entities.StatusFlagged
		core.ConfidenceScore = ConfidenceDisciplinary
		core.Reason = fmt.Sprintf(
			"License %s is active but carries disciplinary history; flagged for manual review.",
			license.LicenseID,
		)

	default:
		core.Status = entities.StatusVerified
		core.ConfidenceScore = ConfidenceVerified
		if identity != nil {
			core.Reason = fmt.Sprintf(
				"Identity matched registry record %s; license %s active through %s.",
				identity.ExternalID, license.LicenseID, license.Expiry,
			)
		} else {
			core.Reason = fmt.Sprintf(
				"License %s active through %s; no adverse records found.",
				license.LicenseID, license.Expiry,
			)
		}
	}

	return core
}
