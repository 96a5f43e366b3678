package domain

import (
	"errors"
	"fmt"
)

// Authentication failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
)

// Token failures returned by the token codec. Each one is distinct so the
// HTTP layer can report what went wrong.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenUnsupported  = errors.New("token format unsupported")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenPrefix       = errors.New("token prefix missing or invalid")
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateIdentity  = errors.New("username or email already in use")
	ErrUserHasDependents  = errors.New("user has dependent restaurants")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrValidationFailed   = errors.New("validation failed")
)

var (
	ErrRestaurantOwnerNotEligible = fmt.Errorf("%w: restaurant owner must hold OWNER or ADMIN role", ErrForbidden)
	ErrRestaurantAccessDenied     = fmt.Errorf("%w: restaurant belongs to another owner", ErrForbidden)
)

// ValidationError reports a broken entity invariant on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UserHasDependentsError is returned when deleting a user that still owns
// restaurants. Count is the number of restaurants blocking the delete.
type UserHasDependentsError struct {
	UserID int64
	Count  int64
}

func (e *UserHasDependentsError) Error() string {
	return fmt.Sprintf("cannot delete user: user owns %d restaurant(s)", e.Count)
}

func (e *UserHasDependentsError) Unwrap() error { return ErrUserHasDependents }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) error {
	return invalid(field, format, args...)
}
