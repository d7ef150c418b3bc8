package registry

import (
	"math"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/repositories"
)

// MemoryRegistry holds an immutable in-memory snapshot of the authoritative
// registries. Lookups never mutate state, so the maps are safe to share
// across concurrent verification runs.
type MemoryRegistry struct {
	identities map[string]entities.RegistryRecord
	licenses   map[string]entities.LicenseRecord
	sanctions  map[string]entities.SanctionRecord
	geocodes   map[string]entities.Coordinates
}

// Snapshot is the raw table data a registry is built from
type Snapshot struct {
	Identities []entities.RegistryRecord
	Licenses   []entities.LicenseRecord
	Sanctions  []entities.SanctionRecord
	Geocodes   map[string]entities.Coordinates
}

// NewMemoryRegistry builds a registry from a snapshot
func NewMemoryRegistry(snap Snapshot) repositories.RegistryStore {
	r := &MemoryRegistry{
		identities: make(map[string]entities.RegistryRecord, len(snap.Identities)),
		licenses:   make(map[string]entities.LicenseRecord, len(snap.Licenses)),
		sanctions:  make(map[string]entities.SanctionRecord, len(snap.Sanctions)),
		geocodes:   make(map[string]entities.Coordinates, len(snap.Geocodes)),
	}
	for _, rec := range snap.Identities {
		r.identities[rec.Name] = rec
	}
	for _, rec := range snap.Licenses {
		r.licenses[rec.LicenseID] = rec
	}
	for _, rec := range snap.Sanctions {
		r.sanctions[rec.Name] = rec
	}
	for id, coords := range snap.Geocodes {
		r.geocodes[id] = coords
	}
	return r
}

// NewSeededRegistry builds a registry from the bundled demo tables
func NewSeededRegistry() repositories.RegistryStore {
	return NewMemoryRegistry(SeedSnapshot())
}

// FindIdentity looks up a provider in the identity registry by exact name
func (r *MemoryRegistry) FindIdentity(name string) *entities.RegistryRecord {
	if rec, ok := r.identities[name]; ok {
		return &rec
	}
	return nil
}

// FindLicense looks up a license by exact license id
func (r *MemoryRegistry) FindLicense(licenseID string) *entities.LicenseRecord {
	if rec, ok := r.licenses[licenseID]; ok {
		return &rec
	}
	return nil
}

// FindSanction looks up a sanction record by exact provider name
func (r *MemoryRegistry) FindSanction(name string) *entities.SanctionRecord {
	if rec, ok := r.sanctions[name]; ok {
		return &rec
	}
	return nil
}

// Geocode returns the known coordinates for an entity id
func (r *MemoryRegistry) Geocode(entityID string) *entities.Coordinates {
	if coords, ok := r.geocodes[entityID]; ok {
		return &coords
	}
	return nil
}

// Distance returns the great-circle distance between two points in
// kilometers, using the Haversine formula.
func Distance(from, to entities.Coordinates) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := toRadians(from.Latitude)
	lat2Rad := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
