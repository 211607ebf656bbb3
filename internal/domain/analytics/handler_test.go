package analytics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func get(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Endpoints(t *testing.T) {
	h := NewHandler(NewService(wardFixture()))
	e := echo.New()

	tests := []struct {
		name    string
		target  string
		handler echo.HandlerFunc
	}{
		{"dashboard", "/analytics/dashboard", h.Dashboard},
		{"weekly default", "/analytics/weekly", h.Weekly},
		{"weekly", "/analytics/weekly?weeks=8", h.Weekly},
		{"disease groups", "/analytics/disease-groups", h.DiseaseGroups},
		{"top codes", "/analytics/top-missing-codes?limit=3", h.TopMissingCodes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := get(e, tt.target)
			if err := tt.handler(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestHandler_BadParams(t *testing.T) {
	h := NewHandler(NewService(wardFixture()))
	e := echo.New()

	tests := []struct {
		target  string
		handler echo.HandlerFunc
	}{
		{"/analytics/weekly?weeks=abc", h.Weekly},
		{"/analytics/weekly?weeks=0", h.Weekly},
		{"/analytics/top-missing-codes?limit=500", h.TopMissingCodes},
	}
	for _, tt := range tests {
		c, _ := get(e, tt.target)
		err := tt.handler(c)
		if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %v", tt.target, err)
		}
	}
}
