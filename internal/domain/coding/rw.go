package coding

import "math"

type rwEntry struct {
	rw   float64
	name string
}

var rwTable = map[string]rwEntry{
	"J18.9":  {0.8956, "Pneumonia"},
	"J18.0":  {0.9234, "Bronchopneumonia"},
	"A41.9":  {2.1543, "Sepsis"},
	"R65.20": {3.2100, "Severe sepsis"},
	"I50.9":  {1.0245, "Heart failure"},
	"I50.1":  {1.1500, "Left ventricular failure"},
	"I50.21": {1.3200, "Acute systolic HF"},
	"E11.65": {0.7823, "DM with hyperglycemia"},
	"E11.69": {0.8100, "DM with complications"},
	"E11.22": {1.4500, "DM with CKD"},
	"N17.9":  {1.2345, "AKI"},
	"N18.3":  {0.9500, "CKD stage 3"},
	"E87.2":  {0.6700, "Metabolic acidosis"},
	"E87.6":  {0.5500, "Hypokalemia"},
	"E87.5":  {0.6800, "Hyperkalemia"},
	"I10":    {0.4500, "Hypertension"},
	"E78.5":  {0.3200, "Dyslipidemia"},
	"D64.9":  {0.5000, "Anemia"},
	"J96.0":  {2.5600, "Acute respiratory failure"},
	"J90":    {0.7800, "Pleural effusion"},
}

// RW returns the relative weight of an ICD code, 0 when unknown.
func RW(code string) float64 {
	return rwTable[code].rw
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// RWResult is the reimbursement impact of adding codes to an encounter.
type RWResult struct {
	Before  float64
	After   float64
	Delta   float64
	Revenue float64
}

// CalculateRW sums the weights of current (duplicates counted) against the
// distinct union of current and suggested.
func CalculateRW(current, suggested []string, baseRate float64) RWResult {
	var before float64
	for _, c := range current {
		before += RW(c)
	}
	seen := make(map[string]bool, len(current)+len(suggested))
	var after float64
	for _, list := range [][]string{current, suggested} {
		for _, c := range list {
			if seen[c] {
				continue
			}
			seen[c] = true
			after += RW(c)
		}
	}
	delta := after - before
	return RWResult{
		Before:  round(before, 4),
		After:   round(after, 4),
		Delta:   round(delta, 4),
		Revenue: round(delta*baseRate, 2),
	}
}

// DRG labels the case with its primary diagnosis when that code is weighted,
// else with the heaviest weighted code among codes. Nil when none is known.
func DRG(primary string, codes []string) *string {
	if _, ok := rwTable[primary]; ok {
		return &primary
	}
	var (
		best   string
		bestRW float64
	)
	for _, c := range codes {
		if rw := RW(c); rw > bestRW {
			best, bestRW = c, rw
		}
	}
	if best == "" {
		return nil
	}
	return &best
}
