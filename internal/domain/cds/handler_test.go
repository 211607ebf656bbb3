package cds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chartsense/chartsense/internal/platform/middleware"
)

func newTestHandler() (*Handler, *echo.Echo) {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	return NewHandler(newTestService()), e
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_PreDiagnosis(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"symptoms":["fever","cough"],"age":72,"pmh":["copd"]}`)

	if err := h.PreDiagnosis(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var resp PreDiagnosisResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.PrimaryDiseaseGroup != "CAP" || resp.Differentials[0].ICDCode != "J18.9" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_PreDiagnosis_InvalidJSON(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"symptoms":`)

	err := h.PreDiagnosis(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_OrderSuggestion(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"primary_dx":"Heart failure","icd_code":"I50.9","age":70,"comorbidities":["diabetes"]}`)

	if err := h.OrderSuggestion(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp OrderSuggestionResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.DiseaseGroup != "HF" || len(resp.Orders) != 15 {
		t.Errorf("expected 15 HF orders, got %s/%d", resp.DiseaseGroup, len(resp.Orders))
	}
	if len(resp.PersonalizationNotes) != 2 {
		t.Errorf("expected 2 notes, got %v", resp.PersonalizationNotes)
	}
}

func TestHandler_OrderSuggestion_MissingFields(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"age":70}`)

	err := h.OrderSuggestion(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if msg, _ := he.Message.(string); !strings.Contains(msg, "primary_dx is required") {
		t.Errorf("expected field message, got %v", he.Message)
	}
}

func TestHandler_AdmissionDecision(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"primary_dx":"CAP","icd_code":"J18.9","age":50,"vitals":{"respiratory_rate":18,"systolic_bp":130,"diastolic_bp":80}}`)

	if err := h.AdmissionDecision(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp AdmissionDecisionResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Recommendation != "OUTPATIENT" || resp.RiskLevel != "LOW" {
		t.Errorf("expected OUTPATIENT/LOW, got %s/%s", resp.Recommendation, resp.RiskLevel)
	}
}

func TestHandler_Templates(t *testing.T) {
	h, e := newTestHandler()
	h.svc.CreateTemplate(context.Background(), &CPGTemplate{
		TemplateID: "CPG-HF-2023", DiseaseGroup: "HF", Name: "HF",
		Orders: []TemplateOrder{{Category: "LAB", Code: "BNP", Name: "BNP", Priority: PriorityEssential}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/templates", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListTemplates(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var items []CPGTemplate
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 1 || items[0].Orders[0].Code != "BNP" {
		t.Errorf("unexpected templates: %+v", items)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("template_id")
	c.SetParamValues("CPG-XX")
	err := h.GetTemplate(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
