package cds

import "time"

// Order priorities.
const (
	PriorityEssential   = "ESSENTIAL"
	PriorityRecommended = "RECOMMENDED"
	PriorityOptional    = "OPTIONAL"
)

// VitalSigns holds bedside measurements. Unmeasured values are nil.
type VitalSigns struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	HeartRate       *int     `json:"heart_rate,omitempty"`
	RespiratoryRate *int     `json:"respiratory_rate,omitempty"`
	SystolicBP      *int     `json:"systolic_bp,omitempty"`
	DiastolicBP     *int     `json:"diastolic_bp,omitempty"`
	SpO2            *float64 `json:"spo2,omitempty"`
	GCS             *int     `json:"gcs,omitempty"`
}

type LabResult struct {
	Code  string  `json:"code" validate:"required"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// -- Pre-diagnosis --

type PreDiagnosisRequest struct {
	Symptoms       []string    `json:"symptoms"`
	Vitals         *VitalSigns `json:"vitals,omitempty"`
	Labs           []LabResult `json:"labs" validate:"dive"`
	PMH            []string    `json:"pmh"`
	Age            *int        `json:"age,omitempty" validate:"omitempty,gte=0"`
	Sex            string      `json:"sex"`
	ChiefComplaint *string     `json:"chief_complaint,omitempty"`
}

type DifferentialDiagnosis struct {
	Rank          int      `json:"rank"`
	ICDCode       string   `json:"icd_code"`
	Description   string   `json:"description"`
	DescriptionTH string   `json:"description_th"`
	Probability   float64  `json:"probability"`
	Reasoning     string   `json:"reasoning"`
	Evidence      []string `json:"evidence"`
	CPGReference  *string  `json:"cpg_reference,omitempty"`
}

type PreDiagnosisResponse struct {
	Differentials       []DifferentialDiagnosis `json:"differentials"`
	PrimaryDiseaseGroup string                  `json:"primary_disease_group"`
	ConfidenceNote      string                  `json:"confidence_note"`
	ExtractedSymptoms   []string                `json:"extracted_symptoms,omitempty"`
}

// -- Order suggestion --

type OrderItem struct {
	Category    string  `json:"category"`
	Code        string  `json:"code"`
	DisplayName string  `json:"display_name"`
	Priority    string  `json:"priority"`
	Rationale   string  `json:"rationale"`
	CPGSource   *string `json:"cpg_source,omitempty"`
}

type OrderSuggestionRequest struct {
	EncounterID   *string  `json:"encounter_id,omitempty"`
	PrimaryDx     string   `json:"primary_dx" validate:"required"`
	ICDCode       string   `json:"icd_code" validate:"required"`
	Age           *int     `json:"age,omitempty" validate:"omitempty,gte=0"`
	Sex           string   `json:"sex"`
	Comorbidities []string `json:"comorbidities"`
	Creatinine    *float64 `json:"creatinine,omitempty"`
	GFR           *float64 `json:"gfr,omitempty"`
}

type OrderSuggestionResponse struct {
	Orders               []OrderItem `json:"orders"`
	DiseaseGroup         string      `json:"disease_group"`
	PersonalizationNotes []string    `json:"personalization_notes"`
}

// -- Admission decision --

type AdmissionDecisionRequest struct {
	EncounterID *string     `json:"encounter_id,omitempty"`
	PrimaryDx   string      `json:"primary_dx" validate:"required"`
	ICDCode     string      `json:"icd_code" validate:"required"`
	Vitals      VitalSigns  `json:"vitals"`
	Labs        []LabResult `json:"labs" validate:"dive"`
	Age         *int        `json:"age,omitempty" validate:"omitempty,gte=0"`
	Confusion   bool        `json:"confusion"`
	Urea        *float64    `json:"urea,omitempty"`
	NursingHome bool        `json:"nursing_home"`
}

// RiskScoreDetail is the result of one bedside scoring tool.
type RiskScoreDetail struct {
	ToolName       string         `json:"tool_name"`
	Score          int            `json:"score"`
	MaxScore       int            `json:"max_score"`
	Components     map[string]int `json:"components"`
	Interpretation string         `json:"interpretation"`
	MortalityRisk  *string        `json:"mortality_risk,omitempty"`
}

type AdmissionDecisionResponse struct {
	Recommendation string            `json:"recommendation"`
	RiskLevel      string            `json:"risk_level"`
	RiskScores     []RiskScoreDetail `json:"risk_scores"`
	Reasoning      string            `json:"reasoning"`
	SuggestedWard  string            `json:"suggested_ward"`
}

// -- CPG templates --

// CPGTemplate maps to the cpg_templates table. Orders and Criteria are
// stored as JSONB.
type CPGTemplate struct {
	ID           int64                  `db:"id" json:"id"`
	TemplateID   string                 `db:"template_id" json:"template_id"`
	DiseaseGroup string                 `db:"disease_group" json:"disease_group"`
	Name         string                 `db:"name" json:"name"`
	Description  *string                `db:"description" json:"description,omitempty"`
	Orders       []TemplateOrder        `db:"orders" json:"orders"`
	Criteria     map[string]interface{} `db:"criteria" json:"criteria"`
	Version      string                 `db:"version" json:"version"`
	CreatedAt    time.Time              `db:"created_at" json:"-"`
}

type TemplateOrder struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Priority string `json:"priority"`
}

const defaultAge = 60

func ageOrDefault(age *int) int {
	if age == nil {
		return defaultAge
	}
	return *age
}
