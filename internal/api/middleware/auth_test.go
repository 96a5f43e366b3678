package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/infrastructure/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newCodec(t *testing.T) *security.TokenCodec {
	t.Helper()
	c, err := security.NewTokenCodec("Bearer", testSecret)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return c
}

func issue(t *testing.T, c *security.TokenCodec, subject string, roles ...domain.Role) string {
	t.Helper()
	now := time.Now()
	token, err := c.Issue(subject, roles, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func runGate(t *testing.T, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(newCodec(t), zerolog.Nop())(next)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	token := issue(t, newCodec(t), "alice", domain.RoleOwner)

	called := false
	rec := runGate(t, token, func(c echo.Context) error {
		called = true
		id, ok := domain.IdentityFrom(c.Request().Context())
		if !ok {
			t.Fatalf("identity not installed")
		}
		if id.Subject != "alice" || !id.HasAnyRole(domain.RoleOwner) {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingHeaderIsAnonymous(t *testing.T) {
	called := false
	rec := runGate(t, "", func(c echo.Context) error {
		called = true
		if _, ok := domain.IdentityFrom(c.Request().Context()); ok {
			t.Fatalf("expected anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("anonymous request should continue, called=%v code=%d", called, rec.Code)
	}
}

func TestAuthenticate_ClearsStaleIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(domain.WithIdentity(req.Context(), &domain.Identity{Subject: "ghost"}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(newCodec(t), zerolog.Nop())(func(c echo.Context) error {
		if _, ok := domain.IdentityFrom(c.Request().Context()); ok {
			t.Fatalf("stale identity should be cleared")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	codec := newCodec(t)
	now := time.Now()
	expired, _ := codec.Issue("alice", []domain.Role{domain.RoleUser}, now.Add(-2*time.Hour), now.Add(-time.Hour))
	valid := issue(t, codec, "alice", domain.RoleUser)

	cases := map[string]string{
		"expired":      expired,
		"malformed":    "Bearer not-a-token",
		"wrong scheme": "Token " + valid[len("Bearer "):],
		"no scheme":    valid[len("Bearer "):],
		"tampered":     valid[:len(valid)-4] + "AAAA",
		"blank":        "   ",
		"scheme only":  "Bearer ",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := runGate(t, header, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestTokenRejection_Reasons(t *testing.T) {
	cases := map[error]string{
		domain.ErrTokenExpired:      "expired",
		domain.ErrTokenBadSignature: "bad_signature",
		domain.ErrTokenUnsupported:  "unsupported",
		domain.ErrTokenPrefix:       "prefix",
		domain.ErrTokenMalformed:    "malformed",
	}
	for err, want := range cases {
		if got, _ := tokenRejection(err); got != want {
			t.Errorf("tokenRejection(%v) = %q, want %q", err, got, want)
		}
	}
}
