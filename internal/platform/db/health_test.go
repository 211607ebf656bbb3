package db

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func runHealth(t *testing.T, p pinger, stats PoolStats) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health/db", nil), httptest.NewRecorder())
	rec := c.Response().Writer.(*httptest.ResponseRecorder)

	if err := healthHandler(p, func() PoolStats { return stats })(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		stats      PoolStats
		wantCode   int
		wantStatus string
	}{
		{"healthy", nil, PoolStats{Total: 3, Acquired: 1, Max: 20, Utilization: 0.05}, http.StatusOK, "healthy"},
		{"saturated pool", nil, PoolStats{Total: 20, Acquired: 19, Max: 20, Utilization: 0.95}, http.StatusOK, "degraded"},
		{"ping failure", errors.New("connection refused"), PoolStats{Total: 2, Max: 20}, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := runHealth(t, fakePinger{err: tt.err}, tt.stats)
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("expected status %s, got %v", tt.wantStatus, body["status"])
			}
			pool, ok := body["pool"].(map[string]interface{})
			if !ok {
				t.Fatalf("expected pool object, got %T", body["pool"])
			}
			if pool["max_conns"] != float64(tt.stats.Max) {
				t.Errorf("expected max_conns %d, got %v", tt.stats.Max, pool["max_conns"])
			}
			if _, ok := body["ping_latency_ms"]; !ok {
				t.Error("expected ping latency")
			}
			if tt.err != nil && body["error"] != tt.err.Error() {
				t.Errorf("unexpected error field: %v", body["error"])
			}
		})
	}
}
