package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSigningKey = []byte("test-secret-key-for-unit-tests-only")

func runWithAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/encounters", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	var seen echo.Context
	err := mw(func(c echo.Context) error {
		seen = c
		return c.String(http.StatusOK, "ok")
	})(c)
	return seen, err
}

func expectStatus(t *testing.T, err error, code int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Code != code {
		t.Errorf("expected %d, got %d", code, httpErr.Code)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	_, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey}), "")
	expectStatus(t, err, http.StatusUnauthorized)
}

func TestJWTMiddleware_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "Token abc123"},
		{"missing token", "Bearer"},
		{"empty value", "Bearer "},
		{"basic auth", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey}), tt.header)
			expectStatus(t, err, http.StatusUnauthorized)
		})
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	tok, err := IssueToken(testSigningKey, "dr-somchai", []string{RolePhysician}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	c, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Issuer: Issuer}), "Bearer "+tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := c.Request().Context()
	if got := UserIDFromContext(ctx); got != "dr-somchai" {
		t.Errorf("expected user dr-somchai, got %q", got)
	}
	roles := RolesFromContext(ctx)
	if len(roles) != 1 || roles[0] != RolePhysician {
		t.Errorf("unexpected roles: %v", roles)
	}
}

func TestJWTMiddleware_RejectsBadTokens(t *testing.T) {
	expired, _ := IssueToken(testSigningKey, "u", []string{RoleCoder}, -time.Minute)
	wrongKey, _ := IssueToken([]byte("another-key"), "u", []string{RoleCoder}, time.Hour)
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	foreignStr, _ := foreign.SignedString(testSigningKey)

	for name, tok := range map[string]string{"expired": expired, "wrong key": wrongKey, "wrong issuer": foreignStr, "garbage": "not.a.jwt"} {
		t.Run(name, func(t *testing.T) {
			_, err := runWithAuth(t, JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Issuer: Issuer}), "Bearer "+tok)
			expectStatus(t, err, http.StatusUnauthorized)
		})
	}
}

func TestJWTMiddleware_Skipper(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Skipper: func(echo.Context) bool { return true }})
	if _, err := runWithAuth(t, mw, ""); err != nil {
		t.Fatalf("expected skipped request to pass, got %v", err)
	}
}

func TestDevAuthMiddleware_DefaultsToAdmin(t *testing.T) {
	c, err := runWithAuth(t, DevAuthMiddleware(JWTConfig{SigningKey: testSigningKey}), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := UserIDFromContext(c.Request().Context()); got != "dev-user" {
		t.Errorf("expected dev-user, got %q", got)
	}
	if !HasRole(RolesFromContext(c.Request().Context()), RoleAdmin) {
		t.Error("expected admin role in dev mode")
	}
}

func TestDevAuthMiddleware_VerifiesProvidedToken(t *testing.T) {
	_, err := runWithAuth(t, DevAuthMiddleware(JWTConfig{SigningKey: testSigningKey}), "Bearer forged")
	expectStatus(t, err, http.StatusUnauthorized)

	tok, _ := IssueToken(testSigningKey, "coder-1", []string{RoleCoder}, time.Hour)
	c, err := runWithAuth(t, DevAuthMiddleware(JWTConfig{SigningKey: testSigningKey}), "Bearer "+tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := UserIDFromContext(c.Request().Context()); got != "coder-1" {
		t.Errorf("expected coder-1, got %q", got)
	}
}

func TestIssueToken_RequiresKey(t *testing.T) {
	if _, err := IssueToken(nil, "u", nil, time.Hour); err == nil {
		t.Error("expected error without signing key")
	}
}
