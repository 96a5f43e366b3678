package ports

import (
	"context"
	"time"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	Username  string
	Roles     []domain.Role
	ExpiresAt time.Time
}

// ChangePasswordInput carries a self-service password change.
type ChangePasswordInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
	// VerifyLogin checks credentials without issuing a token. Unknown
	// usernames and wrong passwords both yield domain.ErrInvalidCredentials.
	VerifyLogin(ctx context.Context, username, password string) (*domain.Identity, error)
	IssueSession(username string, roles []domain.Role) (string, error)
}
