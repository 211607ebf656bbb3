package knowledge

import (
	"fmt"
	"math"
	"sort"
)

const (
	riskFactorBonus = 0.3
	labBonus        = 0.2
	maxSymptomShare = 0.9
	probabilityCap  = 0.95
	maxResults      = 6
)

// Differential is a scored candidate diagnosis.
type Differential struct {
	ICD         string   `json:"icd_code"`
	Description string   `json:"description"`
	DescTH      string   `json:"description_th"`
	Group       string   `json:"group"`
	Probability float64  `json:"probability"`
	Evidence    []string `json:"evidence"`
}

// Query describes the patient presentation being matched.
type Query struct {
	Symptoms []string
	Age      int
	Sex      string
	PMH      []string
	LabCodes []string
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// FindDifferentials ranks graph diseases against q. Diseases sharing no
// symptom with q are skipped. At most six results are returned, highest
// probability first; equal probabilities keep graph order.
func FindDifferentials(q Query) []Differential {
	symptoms := toSet(q.Symptoms)
	pmh := toSet(q.PMH)
	labs := toSet(q.LabCodes)

	var out []Differential
	for _, d := range diseases {
		var score float64
		var evidence []string

		matched := 0
		for _, s := range d.Symptoms {
			if !symptoms[s] {
				continue
			}
			matched++
			w := SymptomWeight(d.Group, s)
			score += w
			evidence = append(evidence, fmt.Sprintf("อาการ: %s (น้ำหนัก %v)", s, w))
		}
		if matched == 0 {
			continue
		}

		for _, rf := range d.RiskFactors {
			if pmh[rf] {
				score += riskFactorBonus
				evidence = append(evidence, "ปัจจัยเสี่ยง: "+rf)
			}
		}
		if q.Age >= 65 && contains(d.RiskFactors, RiskAgeOver65) {
			score += riskFactorBonus
			evidence = append(evidence, "อายุ ≥ 65 ปี")
		}
		for _, l := range d.Labs {
			if labs[l] {
				score += labBonus
				evidence = append(evidence, "ผลตรวจ: "+l)
			}
		}

		maxPossible := float64(len(d.Symptoms))*maxSymptomShare +
			float64(len(d.RiskFactors))*riskFactorBonus +
			float64(len(d.Labs))*labBonus
		p := math.Min(score/math.Max(maxPossible, 1), probabilityCap)

		out = append(out, Differential{
			ICD:         d.ICD,
			Description: d.Name,
			DescTH:      d.NameTH,
			Group:       d.Group,
			Probability: round(p, 3),
			Evidence:    evidence,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Probability > out[j].Probability })
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
