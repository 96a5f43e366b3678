package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

const (
	// MinSecretLength is the smallest accepted HS256 key, in bytes.
	MinSecretLength = 32

	authoritiesClaim = "authorities"
)

var errUnsupportedAlg = errors.New("unsupported signing method")

// TokenCodec implements ports.TokenCodec with HS256 JWTs. Issued tokens are
// "<prefix> <jwt>".
type TokenCodec struct {
	prefix string
	key    []byte
	now    func() time.Time
}

type Option func(*TokenCodec)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCodec) { c.now = now }
}

// NewTokenCodec builds a codec signing with secret.
func NewTokenCodec(prefix, secret string, opts ...Option) (*TokenCodec, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, errors.New("token codec: prefix is required")
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token codec: secret must be at least %d bytes", MinSecretLength)
	}
	c := &TokenCodec{
		prefix: prefix,
		key:    []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Prefix returns the scheme label put in front of every token.
func (c *TokenCodec) Prefix() string { return c.prefix }

// Issue signs a token for subject. Roles become "ROLE_<NAME>" authorities;
// an empty role list gives an empty authorities claim.
func (c *TokenCodec) Issue(subject string, roles []domain.Role, issuedAt, expiresAt time.Time) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", domain.NewValidationError("subject", "cannot be empty")
	}

	authorities := make([]string, 0, len(roles))
	seen := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		if _, dup := seen[r]; dup || !r.Valid() {
			continue
		}
		seen[r] = struct{}{}
		authorities = append(authorities, r.Authority())
	}

	claims := jwt.MapClaims{
		"sub":            subject,
		"iat":            issuedAt.Unix(),
		"exp":            expiresAt.Unix(),
		authoritiesClaim: authorities,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return c.prefix + " " + signed, nil
}

// Parse validates token and returns the identity it carries. Authority values
// that are not a known "ROLE_<NAME>" are dropped.
func (c *TokenCodec) Parse(token string) (*domain.Identity, error) {
	raw, ok := strings.CutPrefix(token, c.prefix+" ")
	if !ok {
		return nil, domain.ErrTokenPrefix
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, c.keyFunc,
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrTokenMalformed)
	}

	identity := &domain.Identity{
		Subject: subject,
		Roles:   rolesFromClaim(claims[authoritiesClaim]),
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		identity.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Time
	}
	return identity, nil
}

func (c *TokenCodec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("%w: %s", errUnsupportedAlg, t.Method.Alg())
	}
	return c.key, nil
}

// classify maps jwt errors onto the domain token failures. Expiry is only
// reported for tokens whose signature checked out.
func classify(err error) error {
	var kind error
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		kind = domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = domain.ErrTokenUnsupported
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		kind = domain.ErrTokenBadSignature
	default:
		kind = domain.ErrTokenMalformed
	}
	return fmt.Errorf("%w: %v", kind, err)
}

func rolesFromClaim(v any) []domain.Role {
	roles := []domain.Role{}
	list, ok := v.([]any)
	if !ok {
		return roles
	}
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			continue
		}
		r, ok := domain.RoleFromAuthority(s)
		if !ok {
			continue
		}
		dup := false
		for _, have := range roles {
			if have == r {
				dup = true
				break
			}
		}
		if !dup {
			roles = append(roles, r)
		}
	}
	return roles
}
