package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chartsense/chartsense/internal/platform/auth"
)

// mockRecorder collects audit entries for assertions.
type mockRecorder struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error
}

func (m *mockRecorder) RecordAccess(_ context.Context, entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.err
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func newAuditContext(method, path string, userID string, roles []string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		ctx := context.WithValue(req.Context(), auth.UserIDKey, userID)
		ctx = context.WithValue(ctx, auth.UserRolesKey, roles)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestAudit_RecordsEncounterAccess(t *testing.T) {
	rec := &mockRecorder{}
	c, _ := newAuditContext(http.MethodGet, "/api/v1/chart-completeness/ENC-2567-0001", "dr-somsak", []string{auth.RolePhysician})
	c.SetParamNames("encounter_id")
	c.SetParamValues("ENC-2567-0001")
	c.Set("request_id", "req-abc")

	if err := Audit(zerolog.Nop(), rec)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != 1 {
		t.Fatalf("expected 1 audit entry, got %d", rec.count())
	}
	entry := rec.entries[0]
	if entry.UserID != "dr-somsak" {
		t.Errorf("expected user dr-somsak, got %q", entry.UserID)
	}
	if entry.Resource != "chart-completeness" {
		t.Errorf("expected resource chart-completeness, got %q", entry.Resource)
	}
	if entry.EncounterID != "ENC-2567-0001" {
		t.Errorf("expected encounter ENC-2567-0001, got %q", entry.EncounterID)
	}
	if entry.Action != "read" || entry.StatusCode != http.StatusOK || entry.RequestID != "req-abc" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestAudit_CapturesHTTPErrorStatus(t *testing.T) {
	rec := &mockRecorder{}
	c, _ := newAuditContext(http.MethodPost, "/api/v1/code-suggestion/ENC-404/accept", "coder-1", []string{auth.RoleCoder})
	c.SetParamNames("encounter_id")
	c.SetParamValues("ENC-404")

	h := Audit(zerolog.Nop(), rec)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "encounter not found")
	})
	if err := h(c); err == nil {
		t.Fatal("expected handler error to pass through")
	}
	entry := rec.entries[0]
	if entry.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", entry.StatusCode)
	}
	if entry.Action != "create" {
		t.Errorf("expected action create, got %q", entry.Action)
	}
}

func TestAudit_SkipsRecorderWithoutEncounter(t *testing.T) {
	var buf bytes.Buffer
	rec := &mockRecorder{}
	c, _ := newAuditContext(http.MethodGet, "/api/v1/analytics/dashboard", "admin-1", []string{auth.RoleAdmin})

	if err := Audit(zerolog.New(&buf), rec)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("expected no recorded entry, got %d", rec.count())
	}

	var logged map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logged); err != nil {
		t.Fatalf("expected JSON log line: %v", err)
	}
	if logged["resource"] != "analytics" || logged["message"] != "encounter_access" {
		t.Errorf("unexpected log line: %v", logged)
	}
}

func TestAudit_SkipsPublicAndNonAPIPaths(t *testing.T) {
	for _, path := range []string{"/api/v1/health", "/metrics", "/health/db"} {
		var buf bytes.Buffer
		c, _ := newAuditContext(http.MethodGet, path, "", nil)
		if err := Audit(zerolog.New(&buf), nil)(okHandler)(c); err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: expected no audit log, got %s", path, buf.String())
		}
	}
}

func TestAudit_RecorderErrorDoesNotBreakRequest(t *testing.T) {
	rec := &mockRecorder{err: errors.New("broker down")}
	c, res := newAuditContext(http.MethodGet, "/api/v1/code-suggestion/ENC-1?status=PENDING", "coder-1", []string{auth.RoleCoder})
	c.SetParamNames("encounter_id")
	c.SetParamValues("ENC-1")

	if err := Audit(zerolog.Nop(), rec)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", res.Code)
	}
}

func TestAudit_EncounterFromQuery(t *testing.T) {
	rec := &mockRecorder{}
	c, _ := newAuditContext(http.MethodGet, "/api/v1/admin/encounters?encounter_id=ENC-9", "admin-1", []string{auth.RoleAdmin})
	if err := Audit(zerolog.Nop(), rec)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != 1 || rec.entries[0].EncounterID != "ENC-9" {
		t.Fatalf("expected entry for ENC-9, got %+v", rec.entries)
	}
}

func TestResourceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/chart-completeness/ENC-1", "chart-completeness"},
		{"/api/v1/admin/rules/DX-01", "rules"},
		{"/api/v1/admin", "admin"},
		{"/api/v1/", "unknown"},
		{"/api/v1/encounters", "encounters"},
	}
	for _, tt := range tests {
		if got := resourceFromPath(tt.path); got != tt.want {
			t.Errorf("resourceFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMethodToAction(t *testing.T) {
	tests := map[string]string{
		http.MethodGet:    "read",
		http.MethodHead:   "read",
		http.MethodPost:   "create",
		http.MethodPut:    "update",
		http.MethodPatch:  "update",
		http.MethodDelete: "delete",
	}
	for method, want := range tests {
		if got := methodToAction(method); got != want {
			t.Errorf("methodToAction(%s) = %q, want %q", method, got, want)
		}
	}
}

func TestAuditRecorderFunc(t *testing.T) {
	called := false
	var r AuditRecorder = AuditRecorderFunc(func(_ context.Context, e AuditEntry) error {
		called = e.EncounterID == "ENC-1"
		return nil
	})
	if err := r.RecordAccess(context.Background(), AuditEntry{EncounterID: "ENC-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected func to be called with the entry")
	}
}
