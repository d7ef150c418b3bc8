package storage

import "github.com/caresure/providerportal/internal/domain/entities"

// Dataset holds the initial collections persisted on first load
type Dataset struct {
	Providers           []entities.Provider
	EmpanelmentRequests []entities.EmpanelmentRequest
	Patients            []entities.Patient
	Claims              []entities.Claim
}

func strPtr(s string) *string { return &s }

// SeedDataset returns the portal's initial demo dataset. Provider ids line
// up with the registry geocode table and the seed registry names.
func SeedDataset() Dataset {
	return Dataset{
		Providers: []entities.Provider{
			{
				ID:                "1",
				Name:              "Dr. Sarah Jenning",
				Type:              entities.ProviderDoctor,
				Risk:              entities.RiskLow,
				UnderSurveillance: false,
				License:           "MD-CA-49210",
				Address:           "123 Mission St, San Francisco, CA",
			},
			{
				ID:                "2",
				Name:              "Dr. Mark Sloan",
				Type:              entities.ProviderDoctor,
				Risk:              entities.RiskMedium,
				UnderSurveillance: false,
				License:           "MD-NY-99212",
				Address:           "5th Ave, Suite 10, New York, NY",
			},
			{
				ID:                "3",
				Name:              "Dr. Emily Chen",
				Type:              entities.ProviderDoctor,
				Risk:              entities.RiskLow,
				UnderSurveillance: false,
				License:           "MD-CA-11234",
				Address:           "450 Sunset Blvd, San Francisco, CA",
			},
			{
				ID:                "4",
				Name:              "Dr. James Wilson",
				Type:              entities.ProviderDoctor,
				Risk:              entities.RiskHigh,
				UnderSurveillance: true,
				License:           "FLG-TX-00000",
				Address:           "777 Hope Ln, Houston, TX",
			},
			{
				ID:                "hosp-1",
				Name:              "City General Hospital",
				Type:              entities.ProviderHospital,
				Risk:              entities.RiskLow,
				UnderSurveillance: false,
				License:           "HOSP-CA-00817",
				Address:           "800 Market St, San Francisco, CA",
			},
		},
		EmpanelmentRequests: []entities.EmpanelmentRequest{
			{
				ID:             "emp-1001",
				Name:           "Dr. Priya Nair",
				Type:           entities.ProviderDoctor,
				Date:           "2024-03-04",
				Status:         entities.EmpanelmentPending,
				Specialization: "Dermatology",
			},
			{
				ID:             "emp-1002",
				Name:           "Lakeside Clinic",
				Type:           entities.ProviderHospital,
				Date:           "2024-02-26",
				Status:         entities.EmpanelmentReviewing,
				Specialization: "Multi-specialty",
			},
			{
				ID:             "emp-1003",
				Name:           "Dr. Alan Reed",
				Type:           entities.ProviderDoctor,
				Date:           "2024-01-19",
				Status:         entities.EmpanelmentApproved,
				Specialization: "Radiology",
			},
		},
		Patients: []entities.Patient{
			{ID: "P-101", Name: "James Potter", Age: 45, Gender: "Male", Condition: "Hypertension", LastVisit: "2024-03-10", Status: entities.PatientOutpatient, InsuranceProvider: "BlueCross"},
			{ID: "P-102", Name: "Lily Evans", Age: 42, Gender: "Female", Condition: "Migraine", LastVisit: "2024-03-12", Status: entities.PatientOutpatient, InsuranceProvider: "Aetna"},
			{ID: "P-103", Name: "Sirius Black", Age: 46, Gender: "Male", Condition: "Post-Op Recovery", LastVisit: "2024-03-08", Status: entities.PatientAdmitted, InsuranceProvider: "Cigna"},
			{ID: "P-104", Name: "Remus Lupin", Age: 45, Gender: "Male", Condition: "Chronic Fatigue", LastVisit: "2024-03-01", Status: entities.PatientOutpatient, InsuranceProvider: "BlueCross"},
			{ID: "P-105", Name: "Nymphadora Tonks", Age: 35, Gender: "Female", Condition: "Flu", LastVisit: "2024-03-14", Status: entities.PatientDischarged, InsuranceProvider: "Aetna"},
		},
		Claims: []entities.Claim{
			{
				ID: "CLM-8832", PatientName: "James Potter", InsuranceProvider: "BlueCross BlueShield",
				AmountClaimed: 1500.00, AmountApproved: floatPtr(1450.00),
				ServiceDate: "2024-03-05", SubmittedDate: "2024-03-06", ReceivedDate: strPtr("2024-03-12"),
				Status: entities.ClaimApproved,
			},
			{
				ID: "CLM-8833", PatientName: "Lily Evans", InsuranceProvider: "Aetna",
				AmountClaimed: 350.00, AmountApproved: floatPtr(350.00),
				ServiceDate: "2024-03-08", SubmittedDate: "2024-03-09", ReceivedDate: strPtr("2024-03-11"),
				Status: entities.ClaimApproved,
			},
			{
				ID: "CLM-8834", PatientName: "Sirius Black", InsuranceProvider: "Cigna",
				AmountClaimed: 12000.00,
				ServiceDate: "2024-03-01", SubmittedDate: "2024-03-02",
				Status: entities.ClaimPending,
			},
			{
				ID: "CLM-8835", PatientName: "Remus Lupin", InsuranceProvider: "BlueCross BlueShield",
				AmountClaimed: 200.00,
				ServiceDate: "2024-02-28", SubmittedDate: "2024-02-29", ReceivedDate: strPtr("2024-03-05"),
				Status: entities.ClaimRejected,
			},
			{
				ID: "CLM-8836", PatientName: "Peter Pettigrew", InsuranceProvider: "Aetna",
				AmountClaimed: 850.00,
				ServiceDate: "2024-03-10", SubmittedDate: "2024-03-11",
				Status: entities.ClaimMoreInfo,
			},
		},
	}
}

func floatPtr(f float64) *float64 { return &f }
