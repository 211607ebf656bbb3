package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chartsense/chartsense/internal/platform/auth"
)

// AuditEntry records who touched which encounter through which endpoint.
type AuditEntry struct {
	UserID      string    `json:"user_id"`
	UserRoles   []string  `json:"user_roles"`
	Resource    string    `json:"resource"`
	EncounterID string    `json:"encounter_id,omitempty"`
	Action      string    `json:"action"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	IPAddress   string    `json:"ip_address"`
	RequestID   string    `json:"request_id"`
	StatusCode  int       `json:"status_code"`
	Timestamp   time.Time `json:"timestamp"`
}

// AuditRecorder persists or forwards audit entries.
type AuditRecorder interface {
	RecordAccess(ctx context.Context, entry AuditEntry) error
}

type AuditRecorderFunc func(ctx context.Context, entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(ctx context.Context, entry AuditEntry) error {
	return f(ctx, entry)
}

// Audit logs every /api/v1 request after it completes. Entries that carry an
// encounter id are also handed to recorder when one is given. Recorder
// failures are logged and never change the response.
func Audit(logger zerolog.Logger, recorder AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, "/api/v1/") || auth.IsPublicPath(req.URL.Path) {
				return next(c)
			}

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			ctx := req.Context()
			entry := AuditEntry{
				UserID:      auth.UserIDFromContext(ctx),
				UserRoles:   auth.RolesFromContext(ctx),
				Resource:    resourceFromPath(req.URL.Path),
				EncounterID: encounterID(c),
				Action:      methodToAction(req.Method),
				Method:      req.Method,
				Path:        req.URL.Path,
				IPAddress:   c.RealIP(),
				StatusCode:  status,
				Timestamp:   time.Now().UTC(),
			}
			entry.RequestID, _ = c.Get("request_id").(string)

			if recorder != nil && entry.EncounterID != "" {
				if recErr := recorder.RecordAccess(ctx, entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Strs("user_roles", entry.UserRoles).
				Str("resource", entry.Resource).
				Str("encounter_id", entry.EncounterID).
				Str("action", entry.Action).
				Int("status", entry.StatusCode).
				Msg("encounter_access")

			return err
		}
	}
}

func methodToAction(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// resourceFromPath returns the first segment after /api/v1, skipping the
// admin prefix: /api/v1/admin/rules/DX-01 -> rules.
func resourceFromPath(path string) string {
	segments := strings.Split(strings.Trim(strings.TrimPrefix(path, "/api/v1"), "/"), "/")
	if len(segments) > 1 && segments[0] == "admin" {
		return segments[1]
	}
	if segments[0] == "" {
		return "unknown"
	}
	return segments[0]
}

// encounterID prefers the route parameter; evaluate requests carry it in the
// body, which is not read here.
func encounterID(c echo.Context) string {
	if id := c.Param("encounter_id"); id != "" {
		return id
	}
	return c.QueryParam("encounter_id")
}
