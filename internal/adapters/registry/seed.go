package registry

import "github.com/caresure/providerportal/internal/domain/entities"

// SeedSnapshot returns the demo registry tables. Every verdict branch is
// reachable from this data: an active clean license, an active license with
// disciplinary history, a suspended license, an expired license, and a
// sanctioned provider.
func SeedSnapshot() Snapshot {
	return Snapshot{
		Identities: []entities.RegistryRecord{
			{
				ExternalID:  "NPI-1043276611",
				Name:        "Dr. Sarah Jenning",
				Status:      entities.RegistryActive,
				Type:        entities.ProviderDoctor,
				Address:     "123 Mission St, San Francisco, CA",
				LastUpdated: "2024-02-18",
			},
			{
				ExternalID:  "NPI-1927364550",
				Name:        "Dr. Mark Sloan",
				Status:      entities.RegistryActive,
				Type:        entities.ProviderDoctor,
				Address:     "5th Ave, Suite 10, New York, NY",
				LastUpdated: "2024-01-30",
			},
			{
				ExternalID:  "NPI-1558201377",
				Name:        "Dr. Emily Chen",
				Status:      entities.RegistryActive,
				Type:        entities.ProviderDoctor,
				Address:     "450 Sunset Blvd, San Francisco, CA",
				LastUpdated: "2024-03-02",
			},
			{
				ExternalID:  "NPI-1700943128",
				Name:        "Dr. James Wilson",
				Status:      entities.RegistryInactive,
				Type:        entities.ProviderDoctor,
				Address:     "777 Hope Ln, Houston, TX",
				LastUpdated: "2023-11-12",
			},
			{
				ExternalID:  "NPI-1384629005",
				Name:        "City General Hospital",
				Status:      entities.RegistryActive,
				Type:        entities.ProviderHospital,
				Address:     "800 Market St, San Francisco, CA",
				LastUpdated: "2024-02-01",
			},
		},
		Licenses: []entities.LicenseRecord{
			{
				LicenseID:              "MD-CA-49210",
				Name:                   "Dr. Sarah Jenning",
				State:                  "CA",
				Status:                 entities.LicenseActive,
				Expiry:                 "2026-06-30",
				HasDisciplinaryHistory: false,
			},
			{
				LicenseID:              "MD-NY-99212",
				Name:                   "Dr. Mark Sloan",
				State:                  "NY",
				Status:                 entities.LicenseActive,
				Expiry:                 "2025-12-31",
				HasDisciplinaryHistory: true,
			},
			{
				LicenseID:              "MD-CA-11234",
				Name:                   "Dr. Emily Chen",
				State:                  "CA",
				Status:                 entities.LicenseActive,
				Expiry:                 "2027-01-15",
				HasDisciplinaryHistory: false,
			},
			{
				LicenseID:              "FLG-TX-00000",
				Name:                   "Dr. James Wilson",
				State:                  "TX",
				Status:                 entities.LicenseSuspended,
				Expiry:                 "2024-04-01",
				HasDisciplinaryHistory: true,
			},
			{
				LicenseID:              "MD-NV-22871",
				Name:                   "Dr. Victor Hale",
				State:                  "NV",
				Status:                 entities.LicenseExpired,
				Expiry:                 "2022-09-30",
				HasDisciplinaryHistory: false,
			},
		},
		Sanctions: []entities.SanctionRecord{
			{
				Name:   "Dr. James Wilson",
				Reason: "OIG exclusion: billing for services not rendered",
				Date:   "2023-10-04",
				Source: "HHS-OIG LEIE",
			},
		},
		Geocodes: map[string]entities.Coordinates{
			"1":      {Latitude: 37.7749, Longitude: -122.4194},
			"2":      {Latitude: 40.7128, Longitude: -74.0060},
			"3":      {Latitude: 37.7599, Longitude: -122.4148},
			"4":      {Latitude: 29.7604, Longitude: -95.3698},
			"hosp-1": {Latitude: 37.7837, Longitude: -122.4090},
		},
	}
}
