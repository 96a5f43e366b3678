package ports

import (
	"time"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// PasswordHasher hashes and checks passwords. Matches never fails loudly: a
// malformed digest is simply a mismatch.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, digest string) bool
}

// TokenCodec issues and parses signed, expiring tokens carrying an Identity.
type TokenCodec interface {
	Issue(subject string, roles []domain.Role, issuedAt, expiresAt time.Time) (string, error)
	Parse(token string) (*domain.Identity, error)
}
