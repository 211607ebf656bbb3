// Package knowledge holds the in-memory disease knowledge graph used for
// differential diagnosis and the keyword symptom extractor for Thai clinical
// text.
package knowledge

// Disease groups. GroupGeneral is only reported when nothing matched.
const (
	GroupCAP     = "CAP"
	GroupDM      = "DM"
	GroupHF      = "HF"
	GroupGeneral = "GENERAL"
)

// RiskAgeOver65 is matched against the patient's age rather than the PMH.
const RiskAgeOver65 = "age_over_65"

const defaultSymptomWeight = 0.4

// Disease is a node of the knowledge graph. Slices keep their declared order,
// which also orders the evidence lines.
type Disease struct {
	ICD           string   `json:"icd_code"`
	Name          string   `json:"name"`
	NameTH        string   `json:"name_th"`
	Group         string   `json:"group"`
	Symptoms      []string `json:"symptoms"`
	Labs          []string `json:"labs"`
	RiskFactors   []string `json:"risk_factors"`
	Complications []string `json:"complications"`
}

// diseases is iterated in this order; ties in probability keep it.
var diseases = []Disease{
	{
		ICD: "J18.9", Name: "Community-Acquired Pneumonia", NameTH: "ปอดอักเสบชุมชน", Group: GroupCAP,
		Symptoms:      []string{"fever", "cough", "dyspnea", "sputum", "chest_pain", "tachypnea"},
		Labs:          []string{"CBC", "CXR", "Blood_culture", "Sputum_culture", "Procalcitonin", "BUN", "Creatinine"},
		RiskFactors:   []string{RiskAgeOver65, "diabetes", "copd", "smoking", "immunosuppressed"},
		Complications: []string{"sepsis", "respiratory_failure", "pleural_effusion", "empyema"},
	},
	{
		ICD: "E11.65", Name: "DM Type 2 with Hyperglycemia", NameTH: "เบาหวานชนิดที่ 2 มีน้ำตาลสูง", Group: GroupDM,
		Symptoms:      []string{"polyuria", "polydipsia", "weight_loss", "fatigue", "blurred_vision", "nausea"},
		Labs:          []string{"FBS", "HbA1c", "BUN", "Creatinine", "Electrolytes", "UA", "Ketone"},
		RiskFactors:   []string{"obesity", "family_history_dm", "hypertension", "dyslipidemia"},
		Complications: []string{"dka", "hhs", "aki", "neuropathy", "retinopathy"},
	},
	{
		ICD: "E11.69", Name: "DM Type 2 with Other Complications", NameTH: "เบาหวานชนิดที่ 2 มีภาวะแทรกซ้อนอื่น", Group: GroupDM,
		Symptoms:      []string{"polyuria", "polydipsia", "numbness", "foot_ulcer", "fatigue"},
		Labs:          []string{"FBS", "HbA1c", "Lipid_profile", "Creatinine", "Urine_albumin"},
		RiskFactors:   []string{"long_duration_dm", "poor_control", "smoking"},
		Complications: []string{"nephropathy", "neuropathy", "pvd"},
	},
	{
		ICD: "I50.9", Name: "Heart Failure, Unspecified", NameTH: "ภาวะหัวใจล้มเหลว", Group: GroupHF,
		Symptoms:      []string{"dyspnea", "orthopnea", "pnd", "edema", "fatigue", "weight_gain", "jvd"},
		Labs:          []string{"BNP", "NT-proBNP", "CXR", "ECG", "Echo", "CBC", "BUN", "Creatinine", "Electrolytes"},
		RiskFactors:   []string{"hypertension", "cad", "diabetes", "valvular_disease", RiskAgeOver65},
		Complications: []string{"pulmonary_edema", "cardiogenic_shock", "arrhythmia", "renal_failure"},
	},
	{
		ICD: "I50.1", Name: "Left Ventricular Failure", NameTH: "หัวใจห้องล่างซ้ายล้มเหลว", Group: GroupHF,
		Symptoms:      []string{"dyspnea", "orthopnea", "pnd", "cough", "fatigue", "tachycardia"},
		Labs:          []string{"BNP", "CXR", "Echo", "ECG"},
		RiskFactors:   []string{"hypertension", "cad", "mi"},
		Complications: []string{"pulmonary_edema", "cardiogenic_shock"},
	},
	{
		ICD: "N17.9", Name: "Acute Kidney Injury", NameTH: "ไตวายเฉียบพลัน", Group: GroupDM,
		Symptoms:      []string{"oliguria", "edema", "nausea", "fatigue", "confusion"},
		Labs:          []string{"Creatinine", "BUN", "Electrolytes", "UA", "Urine_output"},
		RiskFactors:   []string{"diabetes", "hypertension", "nephrotoxic_drugs", "dehydration"},
		Complications: []string{"hyperkalemia", "metabolic_acidosis", "fluid_overload"},
	},
	{
		ICD: "E87.2", Name: "Metabolic Acidosis", NameTH: "ภาวะกรดจากเมตาบอลิซึม", Group: GroupDM,
		Symptoms:      []string{"kussmaul_breathing", "nausea", "vomiting", "abdominal_pain", "confusion"},
		Labs:          []string{"ABG", "Electrolytes", "Lactate", "Ketone"},
		RiskFactors:   []string{"dka", "renal_failure", "sepsis", "toxic_ingestion"},
		Complications: []string{"cardiac_arrhythmia", "coma"},
	},
	{
		ICD: "A41.9", Name: "Sepsis, Unspecified", NameTH: "ภาวะติดเชื้อในกระแสเลือด", Group: GroupCAP,
		Symptoms:      []string{"fever", "tachycardia", "tachypnea", "hypotension", "confusion", "rigors"},
		Labs:          []string{"Blood_culture", "CBC", "Lactate", "Procalcitonin", "CRP"},
		RiskFactors:   []string{"immunosuppressed", RiskAgeOver65, "diabetes", "indwelling_catheter"},
		Complications: []string{"septic_shock", "mods", "dic"},
	},
}

var symptomWeights = map[string]map[string]float64{
	GroupCAP: {"fever": 0.8, "cough": 0.9, "dyspnea": 0.7, "sputum": 0.8, "chest_pain": 0.5, "tachypnea": 0.6},
	GroupDM: {"polyuria": 0.8, "polydipsia": 0.8, "weight_loss": 0.5, "fatigue": 0.4, "blurred_vision": 0.5,
		"nausea": 0.4, "numbness": 0.6, "foot_ulcer": 0.7},
	GroupHF: {"dyspnea": 0.9, "orthopnea": 0.8, "pnd": 0.8, "edema": 0.7, "fatigue": 0.4, "weight_gain": 0.6, "jvd": 0.7},
}

var byICD = func() map[string]*Disease {
	m := make(map[string]*Disease, len(diseases))
	for i := range diseases {
		m[diseases[i].ICD] = &diseases[i]
	}
	return m
}()

// Lookup returns the disease node for icd.
func Lookup(icd string) (Disease, bool) {
	d, ok := byICD[icd]
	if !ok {
		return Disease{}, false
	}
	return *d, true
}

// Diseases returns a copy of every node in graph order.
func Diseases() []Disease {
	out := make([]Disease, len(diseases))
	copy(out, diseases)
	return out
}

// GroupOf maps an ICD-10 code to its disease group, CAP when unknown.
func GroupOf(icd string) string {
	if d, ok := byICD[icd]; ok {
		return d.Group
	}
	return GroupCAP
}

// SymptomWeight is the weight of symptom within group, 0.4 when unlisted.
func SymptomWeight(group, symptom string) float64 {
	if w, ok := symptomWeights[group][symptom]; ok {
		return w
	}
	return defaultSymptomWeight
}
