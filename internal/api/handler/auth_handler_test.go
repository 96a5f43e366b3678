package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.LoginResult{Token: "token123", Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/login", `{"username":"alice","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/api/login", `{"username":"alice","password":"wrong"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/api/login", "not-json")
	expectHTTPError(t, handler.Login(c), http.StatusBadRequest)

	c, _ = newContext(http.MethodPost, "/api/login", `{"username":"alice"}`)
	expectHTTPError(t, handler.Login(c), http.StatusBadRequest)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	var got ports.ChangePasswordInput
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, input ports.ChangePasswordInput) error {
			got = input
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/change-password",
		`{"username":"alice","currentPassword":"old-pass","newPassword":"new-pass"}`)
	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got.Username != "alice" || got.CurrentPassword != "old-pass" || got.NewPassword != "new-pass" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestAuthHandler_ChangePassword_TooShort(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(http.MethodPost, "/api/change-password",
		`{"username":"alice","currentPassword":"old-pass","newPassword":"abc"}`)
	expectHTTPError(t, handler.ChangePassword(c), http.StatusBadRequest)
}
