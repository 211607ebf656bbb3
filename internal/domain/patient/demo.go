package patient

import "time"

func strPtr(s string) *string { return &s }

var demoAt = time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)

func demoObs(typ, code, value string, abnormal bool) *Observation {
	return &Observation{ObsType: typ, Code: code, DisplayName: code, Value: value, DateTime: demoAt, AbnormalFlag: abnormal}
}

func demoBase(encounterID, note string, obs []*Observation) *Snapshot {
	return &Snapshot{
		Encounter: &Encounter{
			EncounterID:    encounterID,
			AdmitDate:      demoAt.AddDate(0, 0, -2),
			Ward:           "อายุรกรรมชาย 1",
			LOS:            2,
			Status:         StatusActive,
			ChiefComplaint: strPtr("ไข้ ไอมีเสมหะ 3 วัน"),
		},
		Patient: &Patient{HN: "DEMO", Name: "ผู้ป่วยตัวอย่าง", Age: 72, Sex: "M", PMH: []string{}, Allergies: []string{}},
		Diagnoses: []*Diagnosis{
			{ICDCode: "J18.9", Description: "Pneumonia", DxType: DxPrimary, Source: SourceMD},
		},
		Observations: obs,
		Orders: []*OrderRecord{
			{Category: "MEDICATION", StandardCode: "Ceftriaxone", DisplayName: "Ceftriaxone 2g IV", Status: "ORDERED", Priority: "ESSENTIAL"},
		},
		Notes: []*ProgressNote{
			{DateTime: demoAt, Text: note},
		},
	}
}

// DemoChartSnapshot is the pneumonia chart scored for unknown encounters in
// demo mode: vitals plus creatinine, FBS and hemoglobin.
func DemoChartSnapshot(encounterID string) *Snapshot {
	return demoBase(encounterID, "ผู้ป่วยยังมีไข้ ไอมีเสมหะ", []*Observation{
		demoObs(ObsVital, "temperature", "38.5", true),
		demoObs(ObsVital, "heart_rate", "98", false),
		demoObs(ObsVital, "respiratory_rate", "24", true),
		demoObs(ObsVital, "systolic_bp", "150", true),
		demoObs(ObsLab, "Creatinine", "1.8", true),
		demoObs(ObsLab, "FBS", "180", true),
		demoObs(ObsLab, "Hemoglobin", "9.5", true),
	})
}

// DemoSnapshot is the pneumonia chart code suggestions run against for
// unknown encounters in demo mode. It adds potassium and procalcitonin to
// the labs of DemoChartSnapshot.
func DemoSnapshot(encounterID string) *Snapshot {
	return demoBase(encounterID, "ผู้ป่วยมีไข้ ไอมีเสมหะ เหนื่อยหอบ", []*Observation{
		demoObs(ObsLab, "Creatinine", "1.8", true),
		demoObs(ObsLab, "FBS", "180", true),
		demoObs(ObsLab, "Hemoglobin", "9.5", true),
		demoObs(ObsLab, "Potassium", "3.2", true),
		demoObs(ObsLab, "Procalcitonin", "3.5", true),
	})
}
