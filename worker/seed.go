package worker

// Bootstrap data for a fresh installation. Loaded when the store has no
// worker collection yet, or when the persisted blob cannot be decoded.

// Employers is the employer registry workers reference by ID.
var Employers = []Employer{
	{ID: "supermicro", Name: "Supermicro", NameZH: "美超微電腦"},
	{ID: "delta", Name: "Delta Electronics", NameZH: "台達電子"},
	{ID: "foxconn", Name: "Foxconn", NameZH: "鴻海精密"},
	{ID: "advantech", Name: "Advantech Co., Ltd.", NameZH: "研華股份有限公司"},
	{ID: "platinum", Name: "Platinum Technology", NameZH: "白金科技股份有限公司"},
	{ID: "ykk", Name: "Taiwan YKK Co., Ltd.", NameZH: "台灣華可貴股份有限公司"},
}

// FindEmployer looks an employer up by ID.
func FindEmployer(id string) (Employer, bool) {
	for _, e := range Employers {
		if e.ID == id {
			return e, true
		}
	}
	return Employer{}, false
}

// SeedWorkers returns the default worker collection.
func SeedWorkers() []Worker {
	return []Worker{
		{
			PassportNumber: "F126155168",
			BirthDate:      "19831107",
			Name:           "TEST USER PAN-ASIA",
			Employer:       "supermicro",
			WorkerID:       "PA-83110-T",
			BloodType:      "B+",
			Allergies:      []string{"None"},
			PassportExpiry: "2026-11-07",
			EntryDate:      "2024-01-15",
			EntryType:      EntryAbroad,
			Dormitory:      "sm_bade",
			RoomNumber:     "101",
			ReadPromotions: []string{},
			Points:         0,
			Emergency: EmergencyContact{
				Name:         "Emergency Support",
				Relationship: "Office",
				Phone:        "0800-000-000",
			},
			MedicalHistory: []MedicalRecord{
				{
					ID:            "1",
					Date:          "2024-03-15",
					Type:          MedicalCheckup,
					Description:   "Initial Health Screening",
					DescriptionZH: "初步健康篩檢",
				},
			},
		},
	}
}
