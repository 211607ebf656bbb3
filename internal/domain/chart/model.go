package chart

import "time"

// Rule categories.
const (
	CategoryDiagnosis     = "DIAGNOSIS"
	CategoryProcedure     = "PROCEDURE"
	CategoryConsistency   = "CONSISTENCY"
	CategoryDocumentation = "DOCUMENTATION"
)

// Condition types.
const (
	CondRequiredField    = "REQUIRED_FIELD"
	CondLabThreshold     = "LAB_THRESHOLD"
	CondVitalThreshold   = "VITAL_THRESHOLD"
	CondRequiredIf       = "REQUIRED_IF"
	CondConsistencyCheck = "CONSISTENCY_CHECK"
	CondScoreThreshold   = "SCORE_THRESHOLD"
)

// OpIncreaseFromBaseline flags a lab whose presence alone requires the code.
const OpIncreaseFromBaseline = "INCREASE_FROM_BASELINE"

const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
)

// categoryWeights fixes both the weight of each category in the total and
// the order of the breakdown.
var categoryWeights = []struct {
	category string
	weight   float64
}{
	{CategoryDiagnosis, 0.30},
	{CategoryProcedure, 0.20},
	{CategoryConsistency, 0.25},
	{CategoryDocumentation, 0.25},
}

// Condition is the JSON rule predicate stored in rules.condition. Which
// fields apply depends on Type.
type Condition struct {
	Type           string   `json:"type" validate:"required"`
	Field          string   `json:"field,omitempty"`
	LabCode        string   `json:"labCode,omitempty"`
	VitalCode      string   `json:"vitalCode,omitempty"`
	ScoreCode      string   `json:"scoreCode,omitempty"`
	Operator       string   `json:"operator,omitempty"`
	Threshold      *float64 `json:"threshold,omitempty"`
	Trigger        string   `json:"trigger,omitempty"`
	Check          string   `json:"check,omitempty"`
	RequiredAction string   `json:"requiredAction,omitempty"`
	SuggestedCode  string   `json:"suggestedCode,omitempty"`
}

// Rule maps to the rules table.
type Rule struct {
	ID          int64     `db:"id" json:"id"`
	RuleID      string    `db:"rule_id" json:"rule_id"`
	Category    string    `db:"category" json:"category"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Weight      float64   `db:"weight" json:"weight"`
	Condition   Condition `db:"condition" json:"condition"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

type RuleCreateRequest struct {
	RuleID      string    `json:"rule_id" validate:"required"`
	Category    string    `json:"category" validate:"required,oneof=DIAGNOSIS PROCEDURE CONSISTENCY DOCUMENTATION"`
	Name        string    `json:"name" validate:"required"`
	Description *string   `json:"description,omitempty"`
	Weight      *float64  `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Condition   Condition `json:"condition"`
	Active      *bool     `json:"active,omitempty"`
}

// RuleUpdateRequest carries a partial update; nil fields are left alone.
type RuleUpdateRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Weight      *float64   `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Condition   *Condition `json:"condition,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

// Gap is a failed rule.
type Gap struct {
	RuleID          string  `db:"rule_id" json:"rule_id"`
	Category        string  `db:"category" json:"category"`
	Description     string  `db:"description" json:"description"`
	Severity        string  `db:"severity" json:"severity"`
	SuggestedAction *string `db:"suggested_action" json:"suggested_action,omitempty"`
	SuggestedCode   *string `db:"suggested_code" json:"suggested_code,omitempty"`
}

type CategoryBreakdown struct {
	Category      string  `json:"category"`
	Score         float64 `json:"score"`
	MaxScore      float64 `json:"max_score"`
	Weight        float64 `json:"weight"`
	ItemsFound    int     `json:"items_found"`
	ItemsExpected int     `json:"items_expected"`
}

// Score is one chart completeness evaluation. ID is zero until persisted.
type Score struct {
	ID          int64               `db:"id" json:"id,omitempty"`
	EncounterID string              `db:"encounter_id" json:"encounter_id"`
	TotalScore  float64             `db:"total_score" json:"total_score"`
	Grade       string              `db:"grade" json:"grade"`
	Breakdown   []CategoryBreakdown `db:"breakdown" json:"breakdown"`
	Gaps        []Gap               `json:"gaps"`
	EvaluatedAt time.Time           `db:"evaluated_at" json:"evaluated_at"`
	Demo        bool                `json:"demo,omitempty"`
	Cached      bool                `json:"cached"`
}

// CategoryScore returns the breakdown percentage of category, 0 when absent.
func (s *Score) CategoryScore(category string) float64 {
	for _, b := range s.Breakdown {
		if b.Category == category {
			return b.Score
		}
	}
	return 0
}

type EvaluateRequest struct {
	EncounterID  string `json:"encounter_id" validate:"required"`
	ForceRefresh bool   `json:"force_refresh"`
}
