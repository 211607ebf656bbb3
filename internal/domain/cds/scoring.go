package cds

import (
	"fmt"

	"github.com/chartsense/chartsense/pkg/format"
)

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func strRef(s string) *string { return &s }

var curb65Mortality = map[int]string{0: "<1%", 1: "2.7%", 2: "6.8%", 3: "14%", 4: "27.8%", 5: "27.8%"}

// CURB65 scores pneumonia severity. Unmeasured vitals and urea score 0.
func CURB65(req *AdmissionDecisionRequest) RiskScoreDetail {
	v := req.Vitals
	c := b2i(req.Confusion)
	u := b2i(req.Urea != nil && *req.Urea > 7)
	r := b2i(v.RespiratoryRate != nil && *v.RespiratoryRate >= 30)
	b := b2i((v.SystolicBP != nil && *v.SystolicBP < 90) || (v.DiastolicBP != nil && *v.DiastolicBP <= 60))
	a := b2i(ageOrDefault(req.Age) >= 65)
	score := c + u + r + b + a

	interp := "High risk"
	switch {
	case score <= 1:
		interp = "Low risk"
	case score == 2:
		interp = "Moderate risk"
	}
	return RiskScoreDetail{
		ToolName:       "CURB-65",
		Score:          score,
		MaxScore:       5,
		Components:     map[string]int{"Confusion": c, "Urea>7": u, "RR≥30": r, "BP<90/60": b, "Age≥65": a},
		Interpretation: interp,
		MortalityRisk:  strRef(curb65Mortality[score]),
	}
}

// QSOFA scores sepsis risk. Altered mentation is a GCS below 15 or the
// confusion flag.
func QSOFA(req *AdmissionDecisionRequest) RiskScoreDetail {
	v := req.Vitals
	rr := b2i(v.RespiratoryRate != nil && *v.RespiratoryRate >= 22)
	bp := b2i(v.SystolicBP != nil && *v.SystolicBP <= 100)
	mentation := b2i((v.GCS != nil && *v.GCS < 15) || req.Confusion)
	score := rr + bp + mentation

	d := RiskScoreDetail{
		ToolName:       "qSOFA",
		Score:          score,
		MaxScore:       3,
		Components:     map[string]int{"RR≥22": rr, "SBP≤100": bp, "Altered mentation": mentation},
		Interpretation: "Low risk",
		MortalityRisk:  strRef("<10%"),
	}
	if score >= 2 {
		d.Interpretation = "High risk — evaluate for sepsis"
		d.MortalityRisk = strRef(">10%")
	}
	return d
}

type disposition struct {
	minRatio       float64
	recommendation string
	riskLevel      string
	ward           string
	reasoning      string
}

// dispositions are checked in order; the first whose threshold the score
// ratio reaches applies.
var dispositions = []disposition{
	{0.6, "ICU", "CRITICAL", "ICU / CCU", "คะแนนความเสี่ยงสูง ควรรับ ICU เพื่อเฝ้าระวังใกล้ชิด"},
	{0.4, "WARD", "HIGH", "อายุรกรรม (Medicine Ward)", "คะแนนความเสี่ยงปานกลาง-สูง ควรรับไว้ในหอผู้ป่วย"},
	{0.2, "OBSERVATION", "MODERATE", "ห้องสังเกตอาการ (Observation)", "คะแนนความเสี่ยงปานกลาง อาจสังเกตอาการก่อน"},
	{0, "OUTPATIENT", "LOW", "OPD Follow-up", "คะแนนความเสี่ยงต่ำ สามารถรักษาแบบผู้ป่วยนอกได้"},
}

// Recommend turns risk scores into a disposition. The ratio is the highest
// score over the highest maximum among scores, so a 3/3 qSOFA next to a 1/5
// CURB-65 reads as 3/5.
func Recommend(scores []RiskScoreDetail) AdmissionDecisionResponse {
	var maxScore, maxOf int
	for _, s := range scores {
		if s.Score > maxScore {
			maxScore = s.Score
		}
		if s.MaxScore > maxOf {
			maxOf = s.MaxScore
		}
	}
	var ratio float64
	if maxOf > 0 {
		ratio = float64(maxScore) / float64(maxOf)
	}

	d := dispositions[len(dispositions)-1]
	for _, cand := range dispositions {
		if ratio >= cand.minRatio {
			d = cand
			break
		}
	}
	return AdmissionDecisionResponse{
		Recommendation: d.recommendation,
		RiskLevel:      d.riskLevel,
		RiskScores:     scores,
		Reasoning:      d.reasoning,
		SuggestedWard:  d.ward,
	}
}

// PersonalizationNotes adapts a template order set to the patient.
func PersonalizationNotes(req *OrderSuggestionRequest) []string {
	notes := []string{}
	if ageOrDefault(req.Age) >= 65 {
		notes = append(notes, "ผู้สูงอายุ ≥65 ปี: ปรับขนาดยาตามไต")
	}
	if req.Creatinine != nil && *req.Creatinine > 1.5 {
		notes = append(notes, fmt.Sprintf("Cr=%s: หลีกเลี่ยงยาทำลายไต, ปรับขนาด", format.Decimal(*req.Creatinine)))
	}
	if req.GFR != nil && *req.GFR < 30 {
		notes = append(notes, fmt.Sprintf("eGFR=%s (<30): ภาวะไตบกพร่องรุนแรง งด Metformin/NSAIDs และปรับขนาดยาทุกตัวตามไต", format.Decimal(*req.GFR)))
	}
	for _, c := range req.Comorbidities {
		if c == "diabetes" {
			notes = append(notes, "DM comorbidity: เพิ่ม DTX monitoring")
			break
		}
	}
	for _, c := range req.Comorbidities {
		if c == "ckd" {
			notes = append(notes, "CKD comorbidity: ระวังขนาดยาที่ขับทางไต")
			break
		}
	}
	return notes
}
