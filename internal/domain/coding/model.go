package coding

import "time"

// Suggestion statuses.
const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Suggestion maps to the code_suggestions table.
type Suggestion struct {
	ID          int64     `db:"id" json:"id"`
	EncounterID string    `db:"encounter_id" json:"-"`
	ICDCode     string    `db:"icd_code" json:"icd_code"`
	Description string    `db:"description" json:"description"`
	DxType      string    `db:"dx_type" json:"dx_type"`
	Confidence  float64   `db:"confidence" json:"confidence"`
	Evidence    []string  `db:"evidence" json:"evidence"`
	RWImpact    float64   `db:"rw_impact" json:"rw_impact"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

// RWCalculation maps to the rw_calculations table.
type RWCalculation struct {
	ID            int64     `db:"id" json:"id"`
	EncounterID   string    `db:"encounter_id" json:"encounter_id"`
	DRG           *string   `db:"drg" json:"drg"`
	RWBefore      float64   `db:"rw_before" json:"rw_before"`
	RWAfter       float64   `db:"rw_after" json:"rw_after"`
	Delta         float64   `db:"delta" json:"delta"`
	RevenueImpact float64   `db:"revenue_impact" json:"revenue_impact"`
	CalculatedAt  time.Time `db:"calculated_at" json:"calculated_at"`
}

type SuggestionResponse struct {
	EncounterID      string        `json:"encounter_id"`
	Suggestions      []*Suggestion `json:"suggestions"`
	RWBefore         float64       `json:"rw_before"`
	RWAfter          float64       `json:"rw_after"`
	RWDelta          float64       `json:"rw_delta"`
	RevenueImpactTHB float64       `json:"revenue_impact_thb"`
	RevenueDisplay   string        `json:"revenue_impact_display"`
	DRG              *string       `json:"drg"`
	Demo             bool          `json:"demo,omitempty"`
}

type DecisionRequest struct {
	SuggestionIDs []int64 `json:"suggestion_ids" validate:"required,min=1"`
}

type AcceptResponse struct {
	Status         string   `json:"status"`
	EncounterID    string   `json:"encounter_id"`
	AcceptedIDs    []int64  `json:"accepted_ids"`
	NotFoundIDs    []int64  `json:"not_found_ids,omitempty"`
	AddedCodes     []string `json:"added_codes"`
	RWDelta        float64  `json:"rw_delta"`
	RevenueDisplay string   `json:"revenue_impact_display"`
	Message        string   `json:"message"`
}

type RejectResponse struct {
	Status      string  `json:"status"`
	EncounterID string  `json:"encounter_id"`
	RejectedIDs []int64 `json:"rejected_ids"`
	NotFoundIDs []int64 `json:"not_found_ids,omitempty"`
}
