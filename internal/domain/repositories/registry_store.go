package repositories

import (
	"github.com/caresure/providerportal/internal/domain/entities"
)

// RegistryStore exposes the read-only authoritative registries consulted
// during verification. The snapshot is immutable for the lifetime of a run;
// lookups are case-sensitive exact matches and return nil on a miss, never
// an error. Lookups are in-memory and non-blocking, so no context is taken.
type RegistryStore interface {
	// FindIdentity looks up a provider in the identity registry by exact name
	FindIdentity(name string) *entities.RegistryRecord

	// FindLicense looks up a license by exact license id
	FindLicense(licenseID string) *entities.LicenseRecord

	// FindSanction looks up a sanction record by exact provider name
	FindSanction(name string) *entities.SanctionRecord

	// Geocode returns the known coordinates for an entity id
	Geocode(entityID string) *entities.Coordinates
}
