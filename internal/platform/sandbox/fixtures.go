package sandbox

import (
	"github.com/chartsense/chartsense/internal/domain/cds"
	"github.com/chartsense/chartsense/internal/domain/patient"
)

var patientFixtures = []patientFixture{
	{hn: "HN-640001", name: "นายสมชาย ใจดี", age: 72, sex: "M", pmh: []string{"hypertension", "diabetes", "copd"}, allergies: []string{"Penicillin"}},
	{hn: "HN-640002", name: "นางสมหญิง รักษ์สุข", age: 65, sex: "F", pmh: []string{"diabetes", "ckd"}, allergies: []string{}},
	{hn: "HN-640003", name: "นายประเสริฐ มั่นคง", age: 78, sex: "M", pmh: []string{"hypertension", "cad", "diabetes"}, allergies: []string{"Sulfa"}},
	{hn: "HN-640004", name: "นางวิภา ศรีสวัสดิ์", age: 58, sex: "F", pmh: []string{"diabetes", "dyslipidemia"}, allergies: []string{}},
	{hn: "HN-640005", name: "นายบุญเลิศ แก้วมณี", age: 80, sex: "M", pmh: []string{"hypertension", "cad", "hf"}, allergies: []string{"NSAIDs"}},
	{hn: "HN-640006", name: "นางสาวพิมพ์ใจ ทองดี", age: 45, sex: "F", pmh: []string{"diabetes"}, allergies: []string{}},
	{hn: "HN-640007", name: "นายวิชัย สุขสันต์", age: 68, sex: "M", pmh: []string{"hypertension", "smoking"}, allergies: []string{}},
	{hn: "HN-640008", name: "นางนวล จันทร์เพ็ญ", age: 70, sex: "F", pmh: []string{"hypertension", "diabetes", "valvular_disease"}, allergies: []string{"Iodine"}},
	{hn: "HN-640009", name: "นายธนากร เพชรรัตน์", age: 55, sex: "M", pmh: []string{"diabetes", "obesity"}, allergies: []string{}},
	{hn: "HN-640010", name: "นางสาวอรุณี วงศ์สกุล", age: 62, sex: "F", pmh: []string{"hypertension", "copd"}, allergies: []string{"Aspirin"}},
	{hn: "HN-640011", name: "นายสุรชัย พงษ์สวัสดิ์", age: 75, sex: "M", pmh: []string{"diabetes", "cad", "ckd"}, allergies: []string{}},
	{hn: "HN-640012", name: "นางรัตนา คำแก้ว", age: 48, sex: "F", pmh: []string{"diabetes", "hypertension"}, allergies: []string{}},
}

var encounterFixtures = []encounterFixture{
	{
		patient:   0,
		id:        "ENC-2567-0001",
		ward:      "อายุรกรรมชาย 1",
		los:       5,
		status:    patient.StatusActive,
		complaint: "ไข้สูง 3 วัน ไอมีเสมหะเหลืองข้น หอบเหนื่อย",
		primary:   dxFixture{"J18.9", "Community-Acquired Pneumonia"},
		secondary: []dxFixture{{"I10", "Essential Hypertension"}, {"E11.9", "DM Type 2"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "38.8", "°C", true, ""},
			{"heart_rate", "ชีพจร", "105", "bpm", true, ""},
			{"respiratory_rate", "อัตราหายใจ", "28", "/min", true, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "145", "mmHg", true, ""},
			{"diastolic_bp", "ความดันไดแอสโตลิค", "88", "mmHg", false, ""},
			{"spo2", "SpO2", "92", "%", true, ""},
		},
		labs: []obsFixture{
			{"WBC", "WBC", "15800", "/µL", true, "4500-11000"},
			{"Neutrophil", "Neutrophil", "85", "%", true, "40-70"},
			{"Hemoglobin", "Hemoglobin", "11.2", "g/dL", false, "12-16"},
			{"Creatinine", "Creatinine", "1.8", "mg/dL", true, "0.6-1.2"},
			{"BUN", "BUN", "32", "mg/dL", true, "7-20"},
			{"FBS", "FBS", "185", "mg/dL", true, "70-100"},
			{"Potassium", "Potassium", "3.2", "mEq/L", true, "3.5-5.5"},
			{"Procalcitonin", "Procalcitonin", "4.5", "ng/mL", true, "<0.5"},
			{"CRP", "CRP", "120", "mg/L", true, "<5"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Ceftriaxone", "Ceftriaxone 2g IV q24h"},
			{"MEDICATION", "Azithromycin", "Azithromycin 500mg IV qd"},
			{"MEDICATION", "Paracetamol", "Paracetamol 500mg q6h PRN"},
			{"LAB", "Blood_culture", "Blood Culture x2"},
			{"IMAGING", "CXR", "Chest X-ray PA upright"},
		},
		notes: []noteFixture{
			{"ผู้ป่วยชายไทย อายุ 72 ปี มาด้วยอาการไข้สูง 3 วัน ไอมีเสมหะเหลืองข้น หอบเหนื่อย\nPE: T 38.8°C, HR 105, RR 28, BP 145/88, SpO2 92% RA\nLung: Crepitation Rt lower lobe\nDx: CAP, HTN, DM\nPlan: ATB, CXR, Blood culture", "นพ.สมศักดิ์ รักษาดี"},
			{"Day 2: ไข้ลดลง T 37.8, ยังไอมีเสมหะ SpO2 94% NC 3L\nCXR: RLL infiltration\nBlood culture: pending\nContinue ATB, monitor", "นพ.สมศักดิ์ รักษาดี"},
		},
	},
	{
		patient:   1,
		id:        "ENC-2567-0002",
		ward:      "อายุรกรรมหญิง 1",
		los:       3,
		status:    patient.StatusActive,
		complaint: "อ่อนเพลีย คลื่นไส้ 2 วัน ปัสสาวะน้อยลง",
		primary:   dxFixture{"E11.65", "DM Type 2 with Hyperglycemia"},
		secondary: []dxFixture{{"N17.9", "Acute Kidney Injury"}, {"E87.2", "Metabolic Acidosis"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "37.2", "°C", false, ""},
			{"heart_rate", "ชีพจร", "92", "bpm", false, ""},
			{"respiratory_rate", "อัตราหายใจ", "22", "/min", false, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "130", "mmHg", false, ""},
			{"spo2", "SpO2", "97", "%", false, ""},
		},
		labs: []obsFixture{
			{"FBS", "FBS", "320", "mg/dL", true, "70-100"},
			{"HbA1c", "HbA1c", "11.5", "%", true, "<7"},
			{"Creatinine", "Creatinine", "2.5", "mg/dL", true, "0.6-1.2"},
			{"BUN", "BUN", "45", "mg/dL", true, "7-20"},
			{"Potassium", "Potassium", "5.8", "mEq/L", true, "3.5-5.5"},
			{"Sodium", "Sodium", "132", "mEq/L", true, "136-145"},
			{"CO2", "CO2", "15", "mEq/L", true, "22-29"},
			{"Ketone", "Urine Ketone", "3+", "", true, "Negative"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Insulin_RI", "Regular Insulin sliding scale"},
			{"MEDICATION", "NSS", "NSS 1000ml IV 100ml/hr"},
			{"LAB", "DTX", "DTX q4h"},
			{"LAB", "ABG", "Arterial Blood Gas"},
		},
		notes: []noteFixture{
			{"ผู้ป่วยหญิงไทย อายุ 65 ปี DM on Metformin มาด้วยอ่อนเพลีย คลื่นไส้ 2 วัน ปัสสาวะน้อยลง\nDTX 320, Ketone 3+, Cr 2.5\nDx: DM with hyperglycemia, AKI, Metabolic acidosis\nPlan: Insulin, IV fluid, monitor renal function", "พญ.นภา แสงทอง"},
		},
	},
	{
		patient:   2,
		id:        "ENC-2567-0003",
		ward:      "CCU",
		los:       7,
		status:    patient.StatusActive,
		complaint: "หอบเหนื่อย นอนราบไม่ได้ 3 วัน ขาบวม 2 ข้าง",
		primary:   dxFixture{"I50.1", "Left Ventricular Failure"},
		secondary: []dxFixture{{"I10", "Essential Hypertension"}, {"E11.9", "DM Type 2"}, {"I25.1", "ASCVD"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "37.0", "°C", false, ""},
			{"heart_rate", "ชีพจร", "110", "bpm", true, ""},
			{"respiratory_rate", "อัตราหายใจ", "30", "/min", true, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "160", "mmHg", true, ""},
			{"diastolic_bp", "ความดันไดแอสโตลิค", "95", "mmHg", true, ""},
			{"spo2", "SpO2", "88", "%", true, ""},
		},
		labs: []obsFixture{
			{"BNP", "BNP", "1850", "pg/mL", true, "<100"},
			{"Troponin", "Troponin-T hs", "0.08", "ng/mL", true, "<0.014"},
			{"Creatinine", "Creatinine", "1.6", "mg/dL", true, "0.6-1.2"},
			{"Hemoglobin", "Hemoglobin", "10.5", "g/dL", true, "12-16"},
			{"Sodium", "Sodium", "133", "mEq/L", true, "136-145"},
			{"Potassium", "Potassium", "4.8", "mEq/L", false, "3.5-5.5"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Furosemide", "Furosemide 40mg IV q12h"},
			{"MEDICATION", "Enalapril", "Enalapril 5mg PO BID"},
			{"IMAGING", "Echo", "Echocardiogram"},
			{"IMAGING", "CXR", "Chest X-ray"},
			{"IMAGING", "ECG", "12-Lead ECG"},
			{"NURSING", "daily_weight", "ชั่งน้ำหนักทุกเช้า"},
			{"NURSING", "fluid_restrict", "จำกัดน้ำ 1500ml/วัน"},
		},
		notes: []noteFixture{
			{"ผู้ป่วยชายไทย อายุ 78 ปี HT, DM, CAD มาด้วยหอบเหนื่อย 3 วัน นอนราบไม่ได้ ขาบวม 2 ข้าง\nPE: JVP elevated, bibasilar crepitation, pitting edema 3+\nBNP 1850, CXR: cardiomegaly with pulmonary congestion\nDx: Acute decompensated HF (ADHF), HFrEF\nPlan: IV diuretics, ACEi, O2 support, Echo", "นพ.ภาณุ หัวใจเข้ม"},
		},
	},
	{
		patient:   4,
		id:        "ENC-2567-0004",
		ward:      "อายุรกรรมชาย 2",
		los:       4,
		status:    patient.StatusActive,
		complaint: "เหนื่อยง่ายขึ้น 1 สัปดาห์ ขาบวม น้ำหนักขึ้น 3 กก.",
		primary:   dxFixture{"I50.9", "Heart Failure"},
		secondary: []dxFixture{{"I10", "Essential Hypertension"}, {"I25.1", "ASCVD"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "36.8", "°C", false, ""},
			{"heart_rate", "ชีพจร", "88", "bpm", false, ""},
			{"respiratory_rate", "อัตราหายใจ", "22", "/min", false, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "148", "mmHg", true, ""},
			{"spo2", "SpO2", "94", "%", false, ""},
		},
		labs: []obsFixture{
			{"BNP", "BNP", "650", "pg/mL", true, "<100"},
			{"Creatinine", "Creatinine", "1.3", "mg/dL", true, "0.6-1.2"},
			{"Hemoglobin", "Hemoglobin", "12.0", "g/dL", false, "12-16"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Furosemide", "Furosemide 40mg PO BID"},
			{"MEDICATION", "Carvedilol", "Carvedilol 6.25mg PO BID"},
			{"DIET", "low_salt", "อาหารจำกัดเกลือ"},
		},
		notes: []noteFixture{
			{"ผู้ป่วยชาย 80 ปี known HF, CAD มาด้วยเหนื่อยง่ายขึ้น ขาบวม น้ำหนักขึ้น\nBNP 650, mild congestion on CXR\nAdjust diuretic dose, add beta-blocker", "นพ.วรพล อายุรศาสตร์"},
		},
	},
	{
		patient:   6,
		id:        "ENC-2567-0005",
		ward:      "อายุรกรรมชาย 1",
		los:       3,
		status:    patient.StatusActive,
		complaint: "ไข้ ไอ 5 วัน เจ็บหน้าอกเวลาหายใจลึก",
		primary:   dxFixture{"J18.9", "Pneumonia"},
		secondary: []dxFixture{{"J90", "Pleural Effusion"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "38.2", "°C", true, ""},
			{"heart_rate", "ชีพจร", "95", "bpm", false, ""},
			{"respiratory_rate", "อัตราหายใจ", "24", "/min", true, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "135", "mmHg", false, ""},
			{"spo2", "SpO2", "93", "%", true, ""},
		},
		labs: []obsFixture{
			{"WBC", "WBC", "14200", "/µL", true, "4500-11000"},
			{"CRP", "CRP", "85", "mg/L", true, "<5"},
			{"Procalcitonin", "Procalcitonin", "2.1", "ng/mL", true, "<0.5"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Ceftriaxone", "Ceftriaxone 2g IV q24h"},
			{"IMAGING", "CXR", "Chest X-ray"},
		},
		notes: []noteFixture{
			{"ชาย 68 ปี สูบบุหรี่ มาด้วยไข้ ไอ 5 วัน เจ็บหน้าอกขวาเวลาหายใจลึก\nCXR: RLL consolidation with small pleural effusion\nDx: CAP with parapneumonic effusion", "นพ.สมศักดิ์ รักษาดี"},
		},
	},
	{
		patient:   3,
		id:        "ENC-2567-0006",
		ward:      "อายุรกรรมหญิง 2",
		los:       2,
		status:    patient.StatusActive,
		complaint: "แผลที่เท้าซ้าย 2 สัปดาห์ น้ำตาลคุมไม่ได้",
		primary:   dxFixture{"E11.69", "DM with Complications"},
		secondary: []dxFixture{{"L97.429", "Diabetic Foot Ulcer"}, {"E78.5", "Dyslipidemia"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "37.5", "°C", false, ""},
			{"heart_rate", "ชีพจร", "82", "bpm", false, ""},
			{"respiratory_rate", "อัตราหายใจ", "18", "/min", false, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "138", "mmHg", false, ""},
			{"spo2", "SpO2", "98", "%", false, ""},
		},
		labs: []obsFixture{
			{"FBS", "FBS", "220", "mg/dL", true, "70-100"},
			{"HbA1c", "HbA1c", "9.8", "%", true, "<7"},
			{"Creatinine", "Creatinine", "1.1", "mg/dL", false, "0.6-1.2"},
			{"WBC", "WBC", "12500", "/µL", true, "4500-11000"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Insulin_RI", "Insulin sliding scale + basal insulin"},
			{"NURSING", "wound_care", "Wound care daily"},
			{"LAB", "HbA1c", "HbA1c"},
		},
		notes: []noteFixture{
			{"หญิง 58 ปี DM มาด้วยแผลที่เท้าซ้าย 2 สัปดาห์ ไม่หาย น้ำตาลคุมไม่ได้\nHbA1c 9.8, FBS 220\nWound: 3x2 cm ulcer left foot plantar, Grade 2\nDx: DM with foot ulcer, Dyslipidemia\nPlan: Insulin, wound care, consult ortho", "พญ.ปรียา เบาหวานดี"},
		},
	},
	{
		patient:   7,
		id:        "ENC-2567-0007",
		ward:      "อายุรกรรมหญิง 1",
		los:       6,
		status:    patient.StatusDischarged,
		complaint: "หอบเหนื่อย นอนราบไม่ได้",
		primary:   dxFixture{"I50.9", "Heart Failure"},
		secondary: []dxFixture{{"I10", "Essential Hypertension"}, {"E11.9", "DM Type 2"}, {"I34.0", "Mitral Regurgitation"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "36.5", "°C", false, ""},
			{"heart_rate", "ชีพจร", "78", "bpm", false, ""},
			{"respiratory_rate", "อัตราหายใจ", "18", "/min", false, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "125", "mmHg", false, ""},
			{"spo2", "SpO2", "97", "%", false, ""},
		},
		labs: []obsFixture{
			{"BNP", "BNP", "280", "pg/mL", true, "<100"},
			{"Creatinine", "Creatinine", "1.2", "mg/dL", false, "0.6-1.2"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Furosemide", "Furosemide 20mg PO qd"},
			{"MEDICATION", "Enalapril", "Enalapril 10mg PO BID"},
		},
		notes: []noteFixture{
			{"Discharge Summary: หญิง 70 ปี ADHF resolved, EF 35%, MR moderate\nDischarge on: Furosemide 20mg, Enalapril 10mg BID, Carvedilol 12.5mg BID\nF/U OPD 2 wk", "นพ.ภาณุ หัวใจเข้ม"},
		},
	},
	{
		patient:   8,
		id:        "ENC-2567-0008",
		ward:      "อายุรกรรมชาย 2",
		los:       4,
		status:    patient.StatusActive,
		complaint: "ซึม สับสน น้ำตาลสูงมาก",
		primary:   dxFixture{"E11.65", "DM with Hyperglycemia"},
		secondary: []dxFixture{{"E87.2", "Metabolic Acidosis"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "37.8", "°C", false, ""},
			{"heart_rate", "ชีพจร", "110", "bpm", true, ""},
			{"respiratory_rate", "อัตราหายใจ", "26", "/min", true, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "100", "mmHg", true, ""},
			{"spo2", "SpO2", "96", "%", false, ""},
		},
		labs: []obsFixture{
			{"FBS", "FBS", "480", "mg/dL", true, "70-100"},
			{"HbA1c", "HbA1c", "13.2", "%", true, "<7"},
			{"Creatinine", "Creatinine", "2.1", "mg/dL", true, "0.6-1.2"},
			{"Potassium", "Potassium", "5.2", "mEq/L", false, "3.5-5.5"},
			{"CO2", "CO2", "12", "mEq/L", true, "22-29"},
			{"Ketone", "Urine Ketone", "4+", "", true, "Negative"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Insulin_drip", "Insulin drip 0.1 U/kg/hr"},
			{"MEDICATION", "NSS", "NSS 1000ml IV bolus then 200ml/hr"},
			{"LAB", "DTX", "DTX q1h"},
			{"LAB", "ABG", "ABG q6h"},
		},
		notes: []noteFixture{
			{"ชาย 55 ปี DM มาด้วยซึม สับสน DTX 480\nKetone 4+, CO2 12, pH 7.18\nDx: DKA\nPlan: Insulin drip, aggressive hydration, K+ monitoring", "พญ.นภา แสงทอง"},
		},
	},
	{
		patient:   9,
		id:        "ENC-2567-0009",
		ward:      "อายุรกรรมหญิง 2",
		los:       4,
		status:    patient.StatusActive,
		complaint: "ไข้สูง ไอ หอบ 2 วัน",
		primary:   dxFixture{"J18.9", "Pneumonia"},
		secondary: []dxFixture{{"A41.9", "Sepsis"}, {"I10", "Essential Hypertension"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "39.5", "°C", true, ""},
			{"heart_rate", "ชีพจร", "115", "bpm", true, ""},
			{"respiratory_rate", "อัตราหายใจ", "32", "/min", true, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "95", "mmHg", true, ""},
			{"spo2", "SpO2", "89", "%", true, ""},
		},
		labs: []obsFixture{
			{"WBC", "WBC", "18500", "/µL", true, "4500-11000"},
			{"Procalcitonin", "Procalcitonin", "8.5", "ng/mL", true, "<0.5"},
			{"Lactate", "Lactate", "3.2", "mmol/L", true, "<2"},
			{"Creatinine", "Creatinine", "1.9", "mg/dL", true, "0.6-1.2"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Meropenem", "Meropenem 1g IV q8h"},
			{"MEDICATION", "NSS", "NSS 30ml/kg bolus"},
			{"LAB", "Blood_culture", "Blood Culture x2"},
		},
		notes: []noteFixture{
			{"หญิง 62 ปี COPD มาด้วยไข้สูง ไอ หอบรุนแรง 2 วัน\nqSOFA 3 (RR 32, SBP 95, altered mentation)\nLactate 3.2, Procalcitonin 8.5\nDx: Severe CAP with sepsis\nPlan: Broad-spectrum ATB, fluid resuscitation, ICU transfer", "นพ.สมศักดิ์ รักษาดี"},
		},
	},
	{
		patient:   10,
		id:        "ENC-2567-0010",
		ward:      "อายุรกรรมชาย 1",
		los:       5,
		status:    patient.StatusActive,
		complaint: "เท้าชา แผลเรื้อรัง ไตเสื่อม",
		primary:   dxFixture{"E11.22", "DM with CKD"},
		secondary: []dxFixture{{"N18.3", "CKD Stage 3"}, {"E11.42", "DM Neuropathy"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "36.8", "°C", false, ""},
			{"heart_rate", "ชีพจร", "78", "bpm", false, ""},
			{"respiratory_rate", "อัตราหายใจ", "18", "/min", false, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "155", "mmHg", true, ""},
			{"spo2", "SpO2", "97", "%", false, ""},
		},
		labs: []obsFixture{
			{"FBS", "FBS", "165", "mg/dL", true, "70-100"},
			{"HbA1c", "HbA1c", "8.5", "%", true, "<7"},
			{"Creatinine", "Creatinine", "2.8", "mg/dL", true, "0.6-1.2"},
			{"BUN", "BUN", "38", "mg/dL", true, "7-20"},
			{"Potassium", "Potassium", "5.1", "mEq/L", false, "3.5-5.5"},
			{"Urine_albumin", "UACR", "350", "mg/g", true, "<30"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Insulin", "Insulin Glargine 20U HS"},
			{"MEDICATION", "Losartan", "Losartan 50mg PO qd"},
			{"LAB", "GFR", "eGFR calculation"},
		},
		notes: []noteFixture{
			{"ชาย 75 ปี DM 20 ปี มาด้วย neuropathy, CKD stage 3\nCr 2.8, UACR 350, eGFR 28\nDx: DM with CKD stage 3, DM neuropathy\nPlan: adjust medication for renal function, ARB for nephroprotection", "พญ.ปรียา เบาหวานดี"},
		},
	},
	{
		patient:   11,
		id:        "ENC-2567-0011",
		ward:      "อายุรกรรมหญิง 1",
		los:       2,
		status:    patient.StatusActive,
		complaint: "น้ำตาลสูง อ่อนเพลีย ตามัว",
		primary:   dxFixture{"E11.65", "DM with Hyperglycemia"},
		secondary: []dxFixture{{"I10", "Essential Hypertension"}},
		vitals: []obsFixture{
			{"temperature", "อุณหภูมิ", "36.9", "°C", false, ""},
			{"heart_rate", "ชีพจร", "85", "bpm", false, ""},
			{"respiratory_rate", "อัตราหายใจ", "18", "/min", false, ""},
			{"systolic_bp", "ความดันซิสโตลิค", "142", "mmHg", true, ""},
			{"spo2", "SpO2", "98", "%", false, ""},
		},
		labs: []obsFixture{
			{"FBS", "FBS", "280", "mg/dL", true, "70-100"},
			{"HbA1c", "HbA1c", "10.2", "%", true, "<7"},
			{"Creatinine", "Creatinine", "0.9", "mg/dL", false, "0.6-1.2"},
		},
		orders: []orderFixture{
			{"MEDICATION", "Insulin_RI", "Insulin sliding scale"},
			{"LAB", "DTX", "DTX q6h"},
			{"LAB", "Lipid", "Lipid Profile"},
		},
		notes: []noteFixture{
			{"หญิง 48 ปี DM, HT มาด้วยน้ำตาลสูง อ่อนเพลีย ตามัว\nFBS 280, HbA1c 10.2\nDx: DM with hyperglycemia, uncontrolled\nPlan: Insulin, consult ophthalmology", "พญ.ปรียา เบาหวานดี"},
		},
	},
}

var templateFixtures = []templateFixture{
	{
		id:          "CPG-CAP-2023",
		group:       "CAP",
		name:        "Thai CPG: Community-Acquired Pneumonia 2023",
		description: "แนวทางการรักษาปอดอักเสบชุมชนในผู้ใหญ่ สมาคมอุรเวชช์แห่งประเทศไทย 2566",
		orders: []cds.TemplateOrder{
			{Category: "LAB", Code: "CBC", Name: "CBC", Priority: "ESSENTIAL"},
			{Category: "LAB", Code: "Blood_culture", Name: "Blood Culture x2", Priority: "ESSENTIAL"},
			{Category: "IMAGING", Code: "CXR", Name: "Chest X-ray", Priority: "ESSENTIAL"},
			{Category: "MEDICATION", Code: "Ceftriaxone", Name: "Ceftriaxone 2g IV q24h", Priority: "ESSENTIAL"},
			{Category: "MEDICATION", Code: "Azithromycin", Name: "Azithromycin 500mg", Priority: "ESSENTIAL"},
		},
		criteria: map[string]interface{}{
			"severity":            "CURB-65",
			"admission_threshold": 2,
		},
	},
	{
		id:          "CPG-DM-2023",
		group:       "DM",
		name:        "Thai CPG: DM Complications Management 2023",
		description: "แนวทางการดูแลผู้ป่วยเบาหวานและภาวะแทรกซ้อน สมาคมโรคเบาหวานแห่งประเทศไทย 2566",
		orders: []cds.TemplateOrder{
			{Category: "LAB", Code: "FBS", Name: "Fasting Blood Sugar", Priority: "ESSENTIAL"},
			{Category: "LAB", Code: "HbA1c", Name: "HbA1c", Priority: "ESSENTIAL"},
			{Category: "LAB", Code: "Cr", Name: "Creatinine", Priority: "ESSENTIAL"},
			{Category: "MEDICATION", Code: "Insulin", Name: "Insulin as indicated", Priority: "ESSENTIAL"},
		},
		criteria: map[string]interface{}{
			"target_hba1c":     7.0,
			"renal_monitoring": true,
		},
	},
	{
		id:          "CPG-HF-2023",
		group:       "HF",
		name:        "Thai CPG: Heart Failure Management 2023",
		description: "แนวทางการรักษาภาวะหัวใจล้มเหลว สมาคมแพทย์โรคหัวใจแห่งประเทศไทย 2566",
		orders: []cds.TemplateOrder{
			{Category: "LAB", Code: "BNP", Name: "BNP/NT-proBNP", Priority: "ESSENTIAL"},
			{Category: "IMAGING", Code: "Echo", Name: "Echocardiogram", Priority: "ESSENTIAL"},
			{Category: "IMAGING", Code: "ECG", Name: "12-Lead ECG", Priority: "ESSENTIAL"},
			{Category: "MEDICATION", Code: "Furosemide", Name: "Furosemide IV/PO", Priority: "ESSENTIAL"},
			{Category: "MEDICATION", Code: "ACEi", Name: "ACEi/ARB", Priority: "ESSENTIAL"},
			{Category: "MEDICATION", Code: "Beta-blocker", Name: "Carvedilol/Bisoprolol", Priority: "RECOMMENDED"},
		},
		criteria: map[string]interface{}{
			"ef_threshold":  40,
			"bnp_threshold": 400,
		},
	},
}
