package patient

import (
	"strconv"
	"time"
)

// Encounter statuses.
const (
	StatusActive     = "ACTIVE"
	StatusDischarged = "DISCHARGED"
)

// Diagnosis types and sources.
const (
	DxPrimary   = "PDx"
	DxSecondary = "SDx"
	SourceMD    = "MD"
	SourceAI    = "AI"
)

// Observation types.
const (
	ObsVital   = "vital"
	ObsLab     = "lab"
	ObsImaging = "imaging"
)

// Patient maps to the patients table.
type Patient struct {
	ID        int64     `db:"id" json:"id"`
	HN        string    `db:"hn" json:"hn"`
	Name      string    `db:"name" json:"name"`
	Age       int       `db:"age" json:"age"`
	Sex       string    `db:"sex" json:"sex"`
	PMH       []string  `db:"pmh" json:"pmh"`
	Allergies []string  `db:"allergies" json:"allergies"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// Encounter maps to the encounters table. EncounterID is the public key
// used by every clinical endpoint.
type Encounter struct {
	ID             int64      `db:"id" json:"id"`
	EncounterID    string     `db:"encounter_id" json:"encounter_id"`
	PatientID      int64      `db:"patient_id" json:"patient_id"`
	AdmitDate      time.Time  `db:"admit_date" json:"admit_date"`
	DCDate         *time.Time `db:"dc_date" json:"dc_date,omitempty"`
	Ward           string     `db:"ward" json:"ward"`
	LOS            int        `db:"los" json:"los"`
	Status         string     `db:"status" json:"status"`
	ChiefComplaint *string    `db:"chief_complaint" json:"chief_complaint,omitempty"`
}

type Diagnosis struct {
	ID          int64    `db:"id" json:"id"`
	EncounterID int64    `db:"encounter_id" json:"-"`
	ICDCode     string   `db:"icd_code" json:"icd_code"`
	Description string   `db:"description" json:"description"`
	DxType      string   `db:"dx_type" json:"dx_type"`
	Source      string   `db:"source" json:"source"`
	Confidence  *float64 `db:"confidence" json:"confidence,omitempty"`
	Evidence    []string `db:"evidence" json:"evidence,omitempty"`
}

// Observation values are stored as text; non-numeric values (imaging reads,
// "positive") are skipped by threshold checks.
type Observation struct {
	ID             int64     `db:"id" json:"id"`
	EncounterID    int64     `db:"encounter_id" json:"-"`
	ObsType        string    `db:"obs_type" json:"obs_type"`
	Code           string    `db:"code" json:"code"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	Value          string    `db:"value" json:"value"`
	Unit           *string   `db:"unit" json:"unit,omitempty"`
	DateTime       time.Time `db:"date_time" json:"date_time"`
	AbnormalFlag   bool      `db:"abnormal_flag" json:"abnormal_flag"`
	ReferenceRange *string   `db:"reference_range" json:"reference_range,omitempty"`
}

// Numeric parses Value, reporting false for non-numeric observations.
func (o *Observation) Numeric() (float64, bool) {
	v, err := strconv.ParseFloat(o.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type OrderRecord struct {
	ID           int64   `db:"id" json:"id"`
	EncounterID  int64   `db:"encounter_id" json:"-"`
	Category     string  `db:"category" json:"category"`
	StandardCode string  `db:"standard_code" json:"standard_code"`
	DisplayName  string  `db:"display_name" json:"display_name"`
	Status       string  `db:"status" json:"status"`
	CPGSource    *string `db:"cpg_source" json:"cpg_source,omitempty"`
	Priority     string  `db:"priority" json:"priority"`
}

type ProgressNote struct {
	ID          int64     `db:"id" json:"id"`
	EncounterID int64     `db:"encounter_id" json:"-"`
	DateTime    time.Time `db:"date_time" json:"date_time"`
	Text        string    `db:"text" json:"text"`
	Author      *string   `db:"author" json:"author,omitempty"`
}

// Snapshot is everything recorded for one encounter. It is the input of the
// chart completeness and code suggestion engines.
type Snapshot struct {
	Encounter    *Encounter      `json:"encounter"`
	Patient      *Patient        `json:"patient"`
	Diagnoses    []*Diagnosis    `json:"diagnoses"`
	Observations []*Observation  `json:"observations"`
	Orders       []*OrderRecord  `json:"orders"`
	Notes        []*ProgressNote `json:"progress_notes"`
}

// EncounterCode returns the public encounter id.
func (s *Snapshot) EncounterCode() string {
	if s.Encounter == nil {
		return ""
	}
	return s.Encounter.EncounterID
}

// Status defaults to ACTIVE when the encounter is missing or unset.
func (s *Snapshot) Status() string {
	if s.Encounter == nil || s.Encounter.Status == "" {
		return StatusActive
	}
	return s.Encounter.Status
}

// DiagnosisCodes returns the ICD codes of the encounter in recorded order,
// duplicates included.
func (s *Snapshot) DiagnosisCodes() []string {
	codes := make([]string, 0, len(s.Diagnoses))
	for _, d := range s.Diagnoses {
		codes = append(codes, d.ICDCode)
	}
	return codes
}

func (s *Snapshot) HasDiagnosis(icd string) bool {
	for _, d := range s.Diagnoses {
		if d.ICDCode == icd {
			return true
		}
	}
	return false
}

func (s *Snapshot) HasPrimaryDiagnosis() bool {
	for _, d := range s.Diagnoses {
		if d.DxType == DxPrimary {
			return true
		}
	}
	return false
}

// LabValues maps lab codes to their numeric value. A later observation of
// the same code replaces an earlier one.
func (s *Snapshot) LabValues() map[string]float64 {
	return s.numericValues(ObsLab)
}

func (s *Snapshot) VitalValues() map[string]float64 {
	return s.numericValues(ObsVital)
}

func (s *Snapshot) numericValues(obsType string) map[string]float64 {
	out := make(map[string]float64)
	for _, o := range s.Observations {
		if o.ObsType != obsType {
			continue
		}
		if v, ok := o.Numeric(); ok {
			out[o.Code] = v
		}
	}
	return out
}

// EncounterDetail is the admin view of one encounter.
type EncounterDetail struct {
	Encounter
	Patient       *Patient        `json:"patient"`
	Diagnoses     []*Diagnosis    `json:"diagnoses"`
	Observations  []*Observation  `json:"observations"`
	Orders        []*OrderRecord  `json:"orders"`
	ProgressNotes []*ProgressNote `json:"progress_notes"`
}

// WorklistRow is one line of the encounter worklist.
type WorklistRow struct {
	EncounterID    string    `db:"encounter_id" json:"encounter_id"`
	HN             string    `db:"hn" json:"hn"`
	Name           string    `db:"name" json:"name"`
	Age            int       `db:"age" json:"age"`
	Sex            string    `db:"sex" json:"sex"`
	Ward           string    `db:"ward" json:"ward"`
	Status         string    `db:"status" json:"status"`
	AdmitDate      time.Time `db:"admit_date" json:"admit_date"`
	ChiefComplaint *string   `db:"chief_complaint" json:"chief_complaint,omitempty"`
	DiseaseGroup   string    `json:"disease_group"`
}
