package coding

import (
	"testing"

	"github.com/chartsense/chartsense/internal/domain/patient"
)

func TestCalculateRW(t *testing.T) {
	tests := []struct {
		name      string
		current   []string
		suggested []string
		want      RWResult
	}{
		{"adds weights", []string{"J18.9"}, []string{"N17.9", "E87.6"}, RWResult{0.8956, 2.6801, 1.7845, 21414}},
		{"unknown codes weigh nothing", []string{"Z99.9"}, []string{"E11.9"}, RWResult{0, 0, 0, 0}},
		{"suggested already present", []string{"I10"}, []string{"I10"}, RWResult{0.45, 0.45, 0, 0}},
		{"duplicates counted before only", []string{"J18.9", "J18.9"}, nil, RWResult{1.7912, 0.8956, -0.8956, -10747.2}},
		{"empty", nil, nil, RWResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateRW(tt.current, tt.suggested, 12000); got != tt.want {
				t.Errorf("CalculateRW() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateRW_BaseRate(t *testing.T) {
	got := CalculateRW(nil, []string{"A41.9"}, 10000)
	if got.Revenue != 21543 {
		t.Errorf("expected 21543, got %v", got.Revenue)
	}
}

func TestDRG(t *testing.T) {
	if got := DRG("J18.9", []string{"A41.9"}); got == nil || *got != "J18.9" {
		t.Errorf("expected primary J18.9, got %v", got)
	}
	if got := DRG("Z99.9", []string{"I10", "A41.9", "E87.6"}); got == nil || *got != "A41.9" {
		t.Errorf("expected heaviest A41.9, got %v", got)
	}
	if got := DRG("", []string{"E11.9"}); got != nil {
		t.Errorf("expected nil, got %v", *got)
	}
}

func TestSuggest_DemoSnapshot(t *testing.T) {
	items := Suggest(patient.DemoSnapshot("AN-DEMO"))

	want := []struct {
		code string
		conf float64
	}{
		{"N17.9", 0.85}, {"E11.9", 0.80}, {"E87.6", 0.95}, {"D64.9", 0.80}, {"A41.9", 0.85},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(items))
	}
	for i, w := range want {
		it := items[i]
		if it.ICDCode != w.code || it.Confidence != w.conf {
			t.Errorf("item %d: expected %s/%v, got %s/%v", i, w.code, w.conf, it.ICDCode, it.Confidence)
		}
		if it.ID != int64(i+1) || it.Status != StatusPending || it.DxType != patient.DxSecondary {
			t.Errorf("item %d: unexpected id/status/type %d/%s/%s", i, it.ID, it.Status, it.DxType)
		}
		if len(it.Evidence) != 4 {
			t.Errorf("item %d: expected 4 evidence lines, got %v", i, it.Evidence)
		}
	}
	if items[0].Evidence[0] != "Creatinine = 1.8 (>= 1.5)" {
		t.Errorf("unexpected evidence %q", items[0].Evidence[0])
	}
	if items[1].Evidence[0] != "FBS = 180.0 (>= 126)" {
		t.Errorf("unexpected evidence %q", items[1].Evidence[0])
	}
	if items[4].Evidence[0] != "Procalcitonin = 3.5 (> 2.0)" {
		t.Errorf("unexpected evidence %q", items[4].Evidence[0])
	}
	if items[4].RWImpact != 2.1543 || items[1].RWImpact != 0 {
		t.Errorf("unexpected rw impact %v %v", items[4].RWImpact, items[1].RWImpact)
	}
}

func TestSuggest_NoSupportAndDocumentedCodes(t *testing.T) {
	snap := &patient.Snapshot{
		Encounter: &patient.Encounter{EncounterID: "AN1"},
		Diagnoses: []*patient.Diagnosis{{ICDCode: "E87.5"}},
		Observations: []*patient.Observation{
			{ObsType: patient.ObsLab, Code: "Potassium", Value: "6.1"},
			{ObsType: patient.ObsLab, Code: "HbA1c", Value: "8.2"},
			{ObsType: patient.ObsLab, Code: "BNP", Value: "400"},
			{ObsType: patient.ObsVital, Code: "FBS", Value: "300"},
		},
	}
	items := Suggest(snap)
	if len(items) != 1 {
		t.Fatalf("expected only HbA1c suggestion, got %+v", items)
	}
	if items[0].ICDCode != "E11.65" || items[0].Confidence != 0.8 || len(items[0].Evidence) != 2 {
		t.Errorf("unexpected suggestion %+v", items[0])
	}
}

func TestSuggest_Empty(t *testing.T) {
	items := Suggest(&patient.Snapshot{Encounter: &patient.Encounter{EncounterID: "AN1"}})
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", items)
	}
}
