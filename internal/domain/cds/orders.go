package cds

import "github.com/chartsense/chartsense/internal/domain/knowledge"

func cpg(s string) *string { return &s }

const (
	cpgCAP = "Thai CPG CAP 2023"
	cpgHF  = "ESC HF Guidelines 2023"
)

// orderTemplates are the CPG order sets per disease group, in display order.
var orderTemplates = map[string][]OrderItem{
	knowledge.GroupCAP: {
		{"LAB", "CBC", "Complete Blood Count", PriorityEssential, "ประเมินการติดเชื้อ (WBC, Neutrophil)", nil},
		{"LAB", "BUN_Cr", "BUN/Creatinine", PriorityEssential, "ประเมินไต (CURB-65 component)", nil},
		{"LAB", "Electrolytes", "Na/K/Cl/CO2", PriorityEssential, "ประเมิน electrolyte imbalance", nil},
		{"LAB", "Blood_culture", "Blood Culture x2", PriorityEssential, "หา causative organism (ก่อนให้ ATB)", nil},
		{"LAB", "Sputum_culture", "Sputum Culture & Gram Stain", PriorityRecommended, "ระบุเชื้อก่อโรค", nil},
		{"LAB", "Procalcitonin", "Procalcitonin", PriorityRecommended, "แยก bacterial vs viral, ติดตาม ATB response", nil},
		{"IMAGING", "CXR_PA", "Chest X-ray PA upright", PriorityEssential, "ยืนยัน infiltrate, ประเมิน severity", nil},
		{"MEDICATION", "Ceftriaxone", "Ceftriaxone 2g IV q24h", PriorityEssential, "Empiric ATB สำหรับ CAP (Thai CPG 2023)", cpg(cpgCAP)},
		{"MEDICATION", "Azithromycin", "Azithromycin 500mg IV/PO qd", PriorityEssential, "Atypical coverage (Thai CPG 2023)", cpg(cpgCAP)},
		{"MEDICATION", "Paracetamol", "Paracetamol 500mg PO q6h PRN", PriorityRecommended, "ลดไข้", nil},
		{"NURSING", "O2_monitor", "SpO2 monitoring q4h", PriorityEssential, "เฝ้าระวัง respiratory failure", nil},
		{"NURSING", "I_O", "Intake/Output monitoring", PriorityRecommended, "ประเมิน fluid balance", nil},
		{"DIET", "soft_diet", "อาหารอ่อน (Soft diet)", PriorityRecommended, "ง่ายต่อการรับประทาน", nil},
	},
	knowledge.GroupDM: {
		{"LAB", "FBS", "Fasting Blood Sugar", PriorityEssential, "ประเมินระดับน้ำตาล", nil},
		{"LAB", "HbA1c", "HbA1c", PriorityEssential, "ประเมินการควบคุมเบาหวาน 3 เดือน", nil},
		{"LAB", "BUN_Cr", "BUN/Creatinine", PriorityEssential, "ประเมิน diabetic nephropathy", nil},
		{"LAB", "Electrolytes", "Na/K/Cl/CO2", PriorityEssential, "ประเมิน DKA/HHS", nil},
		{"LAB", "UA", "Urinalysis", PriorityEssential, "ดู ketone, protein", nil},
		{"LAB", "Lipid", "Lipid Profile", PriorityRecommended, "ประเมิน cardiovascular risk", nil},
		{"LAB", "Urine_albumin", "Urine Albumin/Creatinine Ratio", PriorityRecommended, "ตรวจ microalbuminuria", nil},
		{"IMAGING", "CXR", "Chest X-ray", PriorityOptional, "ประเมินหัวใจและปอด", nil},
		{"MEDICATION", "Insulin_RI", "Regular Insulin sliding scale", PriorityEssential, "ควบคุมน้ำตาลขณะ admit", nil},
		{"MEDICATION", "NSS", "NSS 1000ml IV 100ml/hr", PriorityEssential, "แก้ไขภาวะขาดน้ำ", nil},
		{"NURSING", "DTX_q6h", "DTX monitoring q6h", PriorityEssential, "ติดตามระดับน้ำตาล", nil},
		{"DIET", "DM_diet", "อาหารเบาหวาน 1500 kcal", PriorityEssential, "ควบคุมน้ำตาลจากอาหาร", nil},
	},
	knowledge.GroupHF: {
		{"LAB", "BNP", "BNP / NT-proBNP", PriorityEssential, "ยืนยันและประเมิน severity ของ HF", nil},
		{"LAB", "CBC", "Complete Blood Count", PriorityEssential, "ประเมิน anemia (trigger factor)", nil},
		{"LAB", "BUN_Cr", "BUN/Creatinine", PriorityEssential, "ประเมิน cardiorenal syndrome", nil},
		{"LAB", "Electrolytes", "Na/K/Cl/CO2", PriorityEssential, "ประเมินก่อนให้ diuretics", nil},
		{"LAB", "Troponin", "Troponin-T hs", PriorityRecommended, "ตรวจ acute coronary syndrome", nil},
		{"LAB", "TSH", "Thyroid Function Test", PriorityRecommended, "แยก thyroid-related HF", nil},
		{"IMAGING", "CXR", "Chest X-ray PA upright", PriorityEssential, "ดู pulmonary congestion, cardiomegaly", nil},
		{"IMAGING", "Echo", "Echocardiogram", PriorityEssential, "ประเมิน EF, valvular disease, wall motion", nil},
		{"IMAGING", "ECG", "12-Lead ECG", PriorityEssential, "ดู arrhythmia, ischemia, LVH", nil},
		{"MEDICATION", "Furosemide", "Furosemide 40mg IV", PriorityEssential, "ลด fluid overload", cpg(cpgHF)},
		{"MEDICATION", "Enalapril", "Enalapril 5mg PO BID", PriorityEssential, "ACEi for HFrEF (EF<40%)", cpg(cpgHF)},
		{"MEDICATION", "Carvedilol", "Carvedilol 3.125mg PO BID", PriorityRecommended, "Beta-blocker for HFrEF", cpg(cpgHF)},
		{"NURSING", "daily_weight", "ชั่งน้ำหนักทุกเช้า", PriorityEssential, "ติดตาม fluid balance", nil},
		{"NURSING", "fluid_restrict", "จำกัดน้ำ 1500ml/วัน", PriorityEssential, "ลด fluid overload", nil},
		{"DIET", "low_salt", "อาหารจำกัดเกลือ <2g Na/วัน", PriorityEssential, "ลด fluid retention", nil},
	},
}

// OrdersFor returns a copy of the order template of group, falling back to
// the CAP set for groups without one.
func OrdersFor(group string) []OrderItem {
	tpl, ok := orderTemplates[group]
	if !ok {
		tpl = orderTemplates[knowledge.GroupCAP]
	}
	out := make([]OrderItem, len(tpl))
	copy(out, tpl)
	return out
}
