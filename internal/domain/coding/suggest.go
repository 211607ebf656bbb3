package coding

import (
	"fmt"
	"strconv"

	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/pkg/format"
)

// limit is kept as written so evidence quotes it verbatim ("126", "2.0").
type labRule struct {
	lab         string
	op          string
	limit       string
	code        string
	description string
	confidence  float64
}

// labRules are checked in order; each yields at most one suggestion.
var labRules = []labRule{
	{"Creatinine", ">=", "1.5", "N17.9", "Acute Kidney Injury", 0.75},
	{"FBS", ">=", "126", "E11.9", "DM Type 2", 0.70},
	{"HbA1c", ">=", "6.5", "E11.65", "DM with Hyperglycemia", 0.80},
	{"Potassium", "<", "3.5", "E87.6", "Hypokalemia", 0.85},
	{"Potassium", ">", "5.5", "E87.5", "Hyperkalemia", 0.85},
	{"Hemoglobin", "<", "10", "D64.9", "Anemia, Unspecified", 0.70},
	{"BNP", ">", "400", "I50.9", "Heart Failure", 0.80},
	{"Procalcitonin", ">", "2.0", "A41.9", "Sepsis", 0.75},
}

const (
	supportBonus  = 0.05
	maxConfidence = 0.95
)

func (r labRule) triggered(v float64) bool {
	threshold, err := strconv.ParseFloat(r.limit, 64)
	if err != nil {
		return false
	}
	switch r.op {
	case ">=":
		return v >= threshold
	case ">":
		return v > threshold
	case "<":
		return v < threshold
	}
	return false
}

// Suggest proposes secondary diagnoses the labs support but the chart does
// not carry yet. Notes and orders on the encounter each add confidence.
// IDs are numbered from 1 in rule order.
func Suggest(snap *patient.Snapshot) []*Suggestion {
	labs := snap.LabValues()
	hasNotes := len(snap.Notes) > 0
	hasOrders := len(snap.Orders) > 0

	out := []*Suggestion{}
	for _, r := range labRules {
		v, ok := labs[r.lab]
		if !ok || !r.triggered(v) || snap.HasDiagnosis(r.code) {
			continue
		}
		conf := r.confidence
		evidence := []string{
			fmt.Sprintf("%s = %s (%s %s)", r.lab, format.Decimal(v), r.op, r.limit),
			"พบจากผลตรวจทางห้องปฏิบัติการ",
		}
		if hasNotes {
			conf += supportBonus
			evidence = append(evidence, "มี Progress Note สนับสนุน")
		}
		if hasOrders {
			conf += supportBonus
			evidence = append(evidence, "มีการสั่งยา/การรักษาที่สอดคล้อง")
		}
		out = append(out, &Suggestion{
			ID:          int64(len(out) + 1),
			EncounterID: snap.EncounterCode(),
			ICDCode:     r.code,
			Description: r.description,
			DxType:      patient.DxSecondary,
			Confidence:  round(min(conf, maxConfidence), 3),
			Evidence:    evidence,
			RWImpact:    round(RW(r.code), 4),
			Status:      StatusPending,
		})
	}
	return out
}

func primaryCode(snap *patient.Snapshot) string {
	for _, d := range snap.Diagnoses {
		if d.DxType == patient.DxPrimary {
			return d.ICDCode
		}
	}
	return ""
}
