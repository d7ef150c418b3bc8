package entities

// RegistryStatus is an identity registry enrollment status
type RegistryStatus string

const (
	RegistryActive   RegistryStatus = "ACTIVE"
	RegistryInactive RegistryStatus = "INACTIVE"
)

// LicenseStatus is a licensing-board license status
type LicenseStatus string

const (
	LicenseActive    LicenseStatus = "ACTIVE"
	LicenseSuspended LicenseStatus = "SUSPENDED"
	LicenseExpired   LicenseStatus = "EXPIRED"
)

// RegistryRecord is a row in the national identity registry
type RegistryRecord struct {
	ExternalID  string         `json:"externalId"`
	Name        string         `json:"name"`
	Status      RegistryStatus `json:"status"`
	Type        ProviderType   `json:"type"`
	Address     string         `json:"address"`
	LastUpdated string         `json:"lastUpdated"`
}

// LicenseRecord is a row in the state licensing-board registry
type LicenseRecord struct {
	LicenseID              string        `json:"licenseId"`
	Name                   string        `json:"name"`
	State                  string        `json:"state"`
	Status                 LicenseStatus `json:"status"`
	Expiry                 string        `json:"expiry"`
	HasDisciplinaryHistory bool          `json:"hasDisciplinaryHistory"`
}

// SanctionRecord is a row in the federal sanctions/exclusion list
type SanctionRecord struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
