package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
	"github.com/dimermichel/quickbite/internal/infrastructure/metrics"
)

const defaultTokenTTL = 24 * time.Hour

// dummyPassword is hashed once and compared against when the username does
// not exist, so both failure paths pay for a bcrypt comparison.
const dummyPassword = "quickbite-timing-equaliser"

// fallbackDummyDigest is a cost-10 bcrypt digest of dummyPassword, used when
// the hasher cannot produce one.
const fallbackDummyDigest = "$2b$10$j7jgyeSHaUpBEH1tIcPIXe14RoaRLbztAjOzvwovEu8ZngsjWrsLi"

// AuthService implements login, session issuance and password changes.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenCodec
	tokenTTL time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenCodec, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Login verifies the credentials and issues a token carrying the user's
// current roles.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	identity, err := s.VerifyLogin(ctx, username, password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return nil, err
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenTTL)
	token, err := s.tokens.Issue(identity.Subject, identity.Roles, issuedAt, expiresAt)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", identity.Subject).Msg("user logged in")

	return &ports.LoginResult{
		Token:     token,
		Username:  identity.Subject,
		Roles:     identity.Roles,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyLogin checks username and password. An unknown username and a wrong
// password produce the same domain.ErrInvalidCredentials. Disabled accounts
// are only reported once the password matched.
func (s *AuthService) VerifyLogin(ctx context.Context, username, password string) (*domain.Identity, error) {
	user, err := s.checkPassword(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !user.Enabled() {
		s.logger.Warn().Str("username", user.Username()).Msg("login refused for disabled account")
		return nil, domain.ErrAccountDisabled
	}
	return &domain.Identity{Subject: user.Username(), Roles: user.Roles()}, nil
}

// IssueSession signs a token for username valid for the configured lifetime.
func (s *AuthService) IssueSession(username string, roles []domain.Role) (string, error) {
	issuedAt := s.now()
	return s.tokens.Issue(username, roles, issuedAt, issuedAt.Add(s.tokenTTL))
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, input ports.ChangePasswordInput) error {
	user, err := s.checkPassword(ctx, input.Username, input.CurrentPassword)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.NewPassword, s.hasher.Hash); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID()).Msg("failed to save new password")
		return err
	}
	s.logger.Info().Int64("user_id", user.ID()).Msg("password changed")
	return nil
}

func (s *AuthService) checkPassword(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Matches(password, s.dummy())
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load user for credential check")
		return nil, err
	}

	if !s.hasher.Matches(password, user.PasswordHash()) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash(dummyPassword)
		if err != nil || digest == "" {
			s.logger.Warn().Err(err).Msg("dummy digest unavailable, using fallback")
			digest = fallbackDummyDigest
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	default:
		return "error"
	}
}
