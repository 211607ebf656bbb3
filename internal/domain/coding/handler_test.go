package coding

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

func newTestHandler() (*Handler, *echo.Echo, *testEnv) {
	env := newTestEnv()
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	return NewHandler(env.svc), e, env
}

func newContext(e *echo.Echo, method, body, encounterID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("encounter_id")
	c.SetParamValues(encounterID)
	return c, rec
}

func TestHandler_Suggest(t *testing.T) {
	h, e, _ := newTestHandler()
	c, rec := newContext(e, http.MethodPost, "", "AN001")

	if err := h.Suggest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp SuggestionResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.EncounterID != "AN001" || len(resp.Suggestions) != 5 || resp.RevenueImpactTHB != 53265.6 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_Suggest_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	c, _ := newContext(e, http.MethodPost, "", "AN404")

	err := h.Suggest(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Accept(t *testing.T) {
	h, e, _ := newTestHandler()
	c, _ := newContext(e, http.MethodPost, "", "AN001")
	h.Suggest(c)

	c, rec := newContext(e, http.MethodPost, `{"suggestion_ids":[1,2]}`, "AN001")
	if err := h.Accept(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp AcceptResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "success" || len(resp.AcceptedIDs) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_Accept_EmptyIDs(t *testing.T) {
	h, e, _ := newTestHandler()
	for _, body := range []string{`{"suggestion_ids":[]}`, `{}`, `{"suggestion_ids":`} {
		c, _ := newContext(e, http.MethodPost, body, "AN001")
		err := h.Accept(c)
		if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %v", body, err)
		}
	}
}

func TestHandler_Reject(t *testing.T) {
	h, e, env := newTestHandler()
	env.svc.Suggest(context.Background(), "AN001")

	c, rec := newContext(e, http.MethodPost, `{"suggestion_ids":[3]}`, "AN001")
	if err := h.Reject(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp RejectResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.RejectedIDs) != 1 || resp.RejectedIDs[0] != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_List(t *testing.T) {
	h, e, env := newTestHandler()
	env.svc.Suggest(context.Background(), "AN001")

	c, rec := newContext(e, http.MethodGet, "", "AN001")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var items []Suggestion
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 5 {
		t.Errorf("expected 5 suggestions, got %d", len(items))
	}
}
