package chart

func threshold(v float64) *float64 { return &v }

func rule(id, category, name string, weight float64, c Condition) *Rule {
	return &Rule{RuleID: id, Category: category, Name: name, Weight: weight, Condition: c, Active: true}
}

// DefaultRules returns a fresh copy of the built-in rule set, used to seed
// the rules table and by tests.
func DefaultRules() []*Rule {
	return []*Rule{
		rule("DX-01", CategoryDiagnosis, "PDx ต้องมีอย่างน้อย 1 รายการ", 15,
			Condition{Type: CondRequiredField, Field: "primary_dx", RequiredAction: "ADD_PDX"}),
		rule("DX-02", CategoryDiagnosis, "SDx: Hypertension (if BP↑)", 8,
			Condition{Type: CondVitalThreshold, VitalCode: "systolic_bp", Operator: ">=", Threshold: threshold(140), RequiredAction: "ADD_SDX", SuggestedCode: "I10"}),
		rule("DX-03", CategoryDiagnosis, "SDx: DM (if FBS↑)", 8,
			Condition{Type: CondLabThreshold, LabCode: "FBS", Operator: ">=", Threshold: threshold(126), RequiredAction: "ADD_SDX", SuggestedCode: "E11.9"}),
		rule("DX-04", CategoryDiagnosis, "SDx: AKI (if Cr↑)", 10,
			Condition{Type: CondLabThreshold, LabCode: "Creatinine", Operator: OpIncreaseFromBaseline, Threshold: threshold(0.3), RequiredAction: "ADD_SDX", SuggestedCode: "N17.9"}),
		rule("DX-05", CategoryDiagnosis, "SDx: Anemia (if Hb↓)", 6,
			Condition{Type: CondLabThreshold, LabCode: "Hemoglobin", Operator: "<", Threshold: threshold(10), RequiredAction: "ADD_SDX", SuggestedCode: "D64.9"}),
		rule("DX-06", CategoryDiagnosis, "SDx: Hypokalemia (if K↓)", 7,
			Condition{Type: CondLabThreshold, LabCode: "Potassium", Operator: "<", Threshold: threshold(3.5), RequiredAction: "ADD_SDX", SuggestedCode: "E87.6"}),
		rule("DX-07", CategoryDiagnosis, "SDx: Hyperkalemia (if K↑)", 7,
			Condition{Type: CondLabThreshold, LabCode: "Potassium", Operator: ">", Threshold: threshold(5.5), RequiredAction: "ADD_SDX", SuggestedCode: "E87.5"}),
		rule("DX-08", CategoryDiagnosis, "SDx: Sepsis (if qSOFA≥2)", 12,
			Condition{Type: CondScoreThreshold, ScoreCode: "qSOFA", Operator: ">=", Threshold: threshold(2), RequiredAction: "ADD_SDX", SuggestedCode: "A41.9"}),

		rule("PR-01", CategoryProcedure, "ต้องลง Procedure ถ้ามีหัตถการ", 10,
			Condition{Type: CondRequiredIf, Trigger: "has_procedure_order", RequiredAction: "ADD_PROCEDURE"}),
		rule("PR-02", CategoryProcedure, "Ventilator procedure code", 10,
			Condition{Type: CondRequiredIf, Trigger: "ventilator_order", RequiredAction: "ADD_PROCEDURE", SuggestedCode: "5A1955Z"}),

		rule("CO-01", CategoryConsistency, "Dx สอดคล้องกับ Lab", 10,
			Condition{Type: CondConsistencyCheck, Check: "dx_lab_match"}),
		rule("CO-02", CategoryConsistency, "Dx สอดคล้องกับ Medication", 8,
			Condition{Type: CondConsistencyCheck, Check: "dx_med_match"}),
		rule("CO-03", CategoryConsistency, "PDx ตรง Chief Complaint", 7,
			Condition{Type: CondConsistencyCheck, Check: "pdx_cc_match"}),
		rule("CO-04", CategoryConsistency, "LOS สอดคล้องกับ Severity", 5,
			Condition{Type: CondConsistencyCheck, Check: "los_severity_match"}),
		rule("CO-05", CategoryConsistency, "ลำดับ Dx ถูกต้อง", 5,
			Condition{Type: CondConsistencyCheck, Check: "dx_order_correct"}),

		rule("DO-01", CategoryDocumentation, "Progress Note มีครบทุกวัน", 8,
			Condition{Type: CondRequiredField, Field: "daily_notes"}),
		rule("DO-02", CategoryDocumentation, "Discharge Summary มี", 8,
			Condition{Type: CondRequiredIf, Trigger: "discharged", RequiredAction: "ADD_DISCHARGE_SUMMARY"}),
		rule("DO-03", CategoryDocumentation, "Vital Signs บันทึกครบ", 5,
			Condition{Type: CondRequiredField, Field: "vitals_complete"}),
		rule("DO-04", CategoryDocumentation, "Allergy ระบุในแฟ้ม", 4,
			Condition{Type: CondRequiredField, Field: "allergy_documented"}),
		rule("DO-05", CategoryDocumentation, "Informed Consent บันทึก", 5,
			Condition{Type: CondRequiredIf, Trigger: "has_procedure", RequiredAction: "ADD_CONSENT"}),
	}
}
