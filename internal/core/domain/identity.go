package domain

import (
	"context"
	"time"
)

// Identity is the authenticated caller rebuilt from a token for one request.
// It reflects the roles granted when the token was issued.
type Identity struct {
	Subject   string
	Roles     []Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authorities returns the roles in claim form.
func (i *Identity) Authorities() []string {
	if i == nil {
		return nil
	}
	out := make([]string, 0, len(i.Roles))
	for _, r := range i.Roles {
		out = append(out, r.Authority())
	}
	return out
}

func (i *Identity) HasAnyRole(roles ...Role) bool {
	if i == nil {
		return false
	}
	for _, want := range roles {
		if containsRole(i.Roles, want) {
			return true
		}
	}
	return false
}

// RequireRole reports whether identity may act with any of roles. A nil
// identity is unauthenticated. With no roles listed any identity passes.
func RequireRole(identity *Identity, roles ...Role) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if len(roles) == 0 || identity.HasAnyRole(roles...) {
		return nil
	}
	return ErrForbidden
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying identity. A nil identity
// yields an anonymous context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity stored in ctx, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id, id != nil
}
