package knowledge

import "strings"

type symptomKeywords struct {
	code     string
	keywords []string
}

// symptomDictionary is scanned in order; extraction returns codes in this order.
var symptomDictionary = []symptomKeywords{
	{"fever", []string{"ไข้", "ตัวร้อน", "มีไข้", "febrile"}},
	{"cough", []string{"ไอ", "ไอมีเสมหะ", "ไอแห้ง"}},
	{"dyspnea", []string{"หอบ", "เหนื่อย", "หายใจลำบาก", "หายใจเร็ว", "SOB"}},
	{"sputum", []string{"เสมหะ", "มีเสมหะ", "เสมหะเหลือง"}},
	{"chest_pain", []string{"เจ็บหน้าอก", "แน่นหน้าอก"}},
	{"edema", []string{"บวม", "ขาบวม", "บวมกดบุ๋ม", "pitting edema"}},
	{"orthopnea", []string{"นอนราบไม่ได้", "หายใจไม่ออกเวลานอน"}},
	{"pnd", []string{"PND", "สะดุ้งตื่นกลางคืน"}},
	{"polyuria", []string{"ปัสสาวะบ่อย", "ปัสสาวะมาก"}},
	{"polydipsia", []string{"กระหายน้ำ", "ดื่มน้ำมาก"}},
	{"weight_loss", []string{"น้ำหนักลด", "ผอมลง"}},
	{"fatigue", []string{"อ่อนเพลีย", "เหนื่อยง่าย", "ไม่มีแรง"}},
	{"confusion", []string{"สับสน", "ซึม", "altered consciousness"}},
	{"nausea", []string{"คลื่นไส้", "อาเจียน"}},
	{"hypotension", []string{"ความดันต่ำ", "BP drop"}},
}

// Entity is a typed span found in free text.
type Entity struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// ExtractSymptoms returns the symptom codes whose keywords occur in text,
// case-insensitively, each at most once.
func ExtractSymptoms(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, entry := range symptomDictionary {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found = append(found, entry.code)
				break
			}
		}
	}
	return found
}

func ExtractEntities(text string) []Entity {
	symptoms := ExtractSymptoms(text)
	entities := make([]Entity, 0, len(symptoms))
	for _, s := range symptoms {
		entities = append(entities, Entity{Type: "SYMPTOM", Value: s, Source: "NLP"})
	}
	return entities
}

// MergeSymptoms appends the codes of extra not already in base.
func MergeSymptoms(base, extra []string) []string {
	seen := toSet(base)
	out := append([]string(nil), base...)
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
