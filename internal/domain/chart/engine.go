package chart

import (
	"math"

	"github.com/chartsense/chartsense/internal/domain/patient"
)

// minVitals is how many distinct numeric vitals make a complete set.
const minVitals = 3

// facts is the snapshot reduced to what rule conditions look at.
type facts struct {
	snap   *patient.Snapshot
	labs   map[string]float64
	vitals map[string]float64
}

func newFacts(snap *patient.Snapshot) *facts {
	return &facts{snap: snap, labs: snap.LabValues(), vitals: snap.VitalValues()}
}

func compare(op string, v, threshold float64) (triggered, known bool) {
	switch op {
	case ">=":
		return v >= threshold, true
	case ">":
		return v > threshold, true
	case "<":
		return v < threshold, true
	case "<=":
		return v <= threshold, true
	}
	return false, false
}

func (f *facts) threshold(c Condition, values map[string]float64, code string) bool {
	v, measured := values[code]
	if !measured {
		return true
	}
	if c.Operator == OpIncreaseFromBaseline {
		return f.snap.HasDiagnosis(c.SuggestedCode)
	}
	var threshold float64
	if c.Threshold != nil {
		threshold = *c.Threshold
	}
	op := c.Operator
	if op == "" {
		op = ">="
	}
	triggered, known := compare(op, v, threshold)
	if !known || !triggered {
		return true
	}
	return f.snap.HasDiagnosis(c.SuggestedCode)
}

// passes reports whether the chart satisfies c. Unknown fields, triggers,
// checks and condition types pass.
func (f *facts) passes(c Condition) bool {
	switch c.Type {
	case CondRequiredField:
		switch c.Field {
		case "primary_dx":
			return f.snap.HasPrimaryDiagnosis()
		case "daily_notes":
			return len(f.snap.Notes) > 0
		case "vitals_complete":
			return len(f.vitals) >= minVitals
		}
	case CondLabThreshold:
		return f.threshold(c, f.labs, c.LabCode)
	case CondVitalThreshold:
		return f.threshold(c, f.vitals, c.VitalCode)
	case CondRequiredIf:
		if c.Trigger == "discharged" && f.snap.Status() == patient.StatusDischarged {
			return len(f.snap.Notes) > 0
		}
	case CondConsistencyCheck:
		switch c.Check {
		case "dx_lab_match":
			return len(f.snap.Diagnoses) > 0 && len(f.snap.Observations) > 0
		case "dx_med_match":
			return len(f.snap.Diagnoses) > 0 && len(f.snap.Orders) > 0
		}
	}
	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Grade maps a total score to a letter.
func Grade(total float64) string {
	switch {
	case total >= 90:
		return "A"
	case total >= 75:
		return "B"
	case total >= 60:
		return "C"
	case total >= 40:
		return "D"
	}
	return "F"
}

// Evaluate scores snap against the active rules. Each category scores the
// share of its rule weight that passed, 100 when it has no rules, and the
// total is the weighted sum of the category scores.
func Evaluate(snap *patient.Snapshot, rules []*Rule) *Score {
	f := newFacts(snap)

	type tally struct{ earned, possible float64 }
	tallies := make(map[string]*tally, len(categoryWeights))
	for _, cw := range categoryWeights {
		tallies[cw.category] = &tally{}
	}

	gaps := []Gap{}
	for _, r := range rules {
		t, ok := tallies[r.Category]
		if !r.Active || !ok {
			continue
		}
		t.possible += r.Weight
		if f.passes(r.Condition) {
			t.earned += r.Weight
			continue
		}
		severity := SeverityWarning
		if r.Weight >= 10 {
			severity = SeverityCritical
		}
		gaps = append(gaps, Gap{
			RuleID:          r.RuleID,
			Category:        r.Category,
			Description:     r.Name,
			Severity:        severity,
			SuggestedAction: optional(r.Condition.RequiredAction),
			SuggestedCode:   optional(r.Condition.SuggestedCode),
		})
	}

	var total float64
	breakdown := make([]CategoryBreakdown, 0, len(categoryWeights))
	for _, cw := range categoryWeights {
		t := tallies[cw.category]
		pct := 100.0
		if t.possible > 0 {
			pct = t.earned / t.possible * 100
		}
		total += pct * cw.weight
		breakdown = append(breakdown, CategoryBreakdown{
			Category:      cw.category,
			Score:         round1(pct),
			MaxScore:      100,
			Weight:        cw.weight,
			ItemsFound:    int(t.earned),
			ItemsExpected: int(t.possible),
		})
	}

	return &Score{
		EncounterID: snap.EncounterCode(),
		TotalScore:  round1(total),
		Grade:       Grade(total),
		Breakdown:   breakdown,
		Gaps:        gaps,
	}
}
