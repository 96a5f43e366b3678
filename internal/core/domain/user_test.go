package domain

import (
	"errors"
	"testing"
)

func fakeHash(p string) (string, error) { return "hashed:" + p, nil }

func validParams() NewUserParams {
	return NewUserParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Username: "alice",
		Password: "secret",
	}
}

func TestNewUser_DefaultsToUserRole(t *testing.T) {
	u, err := NewUser(validParams(), fakeHash)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	if roles := u.Roles(); len(roles) != 1 || roles[0] != RoleUser {
		t.Fatalf("expected [USER], got %v", roles)
	}
	if !u.Enabled() {
		t.Fatalf("expected new user to be enabled")
	}
	if u.PasswordHash() != "hashed:secret" {
		t.Fatalf("password was not hashed: %q", u.PasswordHash())
	}
	if !u.IsNew() {
		t.Fatalf("expected unsaved user to be new")
	}
}

func TestNewUser_Validation(t *testing.T) {
	cases := map[string]func(p *NewUserParams){
		"blank name":     func(p *NewUserParams) { p.Name = "  " },
		"short username": func(p *NewUserParams) { p.Username = "ab" },
		"bad email":      func(p *NewUserParams) { p.Email = "not-an-email" },
		"short password": func(p *NewUserParams) { p.Password = "abc" },
		"partial address": func(p *NewUserParams) {
			p.Address = &Address{Street: "Main St", City: "Springfield"}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			_, err := NewUser(p, fakeHash)
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestNewUser_HashNotCalledForInvalidInput(t *testing.T) {
	p := validParams()
	p.Email = "broken"
	_, err := NewUser(p, func(string) (string, error) {
		t.Fatalf("hash should not be called")
		return "", nil
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewUserWithRoles(t *testing.T) {
	u, err := NewUserWithRoles(validParams(), []Role{RoleOwner, RoleOwner, RoleAdmin}, false, fakeHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roles := u.Roles()
	if len(roles) != 2 || roles[0] != RoleOwner || roles[1] != RoleAdmin {
		t.Fatalf("expected [OWNER ADMIN], got %v", roles)
	}
	if u.Enabled() {
		t.Fatalf("expected disabled user")
	}

	u, err = NewUserWithRoles(validParams(), nil, true, fakeHash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roles := u.Roles(); len(roles) != 1 || roles[0] != RoleUser {
		t.Fatalf("expected fallback to [USER], got %v", roles)
	}

	if _, err := NewUserWithRoles(validParams(), []Role{Role(42)}, true, fakeHash); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for unknown role, got %v", err)
	}
}

func TestUser_RoleChanges(t *testing.T) {
	u, _ := NewUser(validParams(), fakeHash)

	if err := u.AssignRole(RoleOwner); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
	if err := u.AssignRole(RoleOwner); err != nil {
		t.Fatalf("AssignRole twice: %v", err)
	}
	if len(u.Roles()) != 2 {
		t.Fatalf("expected 2 roles, got %v", u.Roles())
	}
	if !u.CanOwnRestaurant() {
		t.Fatalf("owner should be able to own restaurants")
	}

	if err := u.RevokeRole(RoleUser); err != nil {
		t.Fatalf("RevokeRole: %v", err)
	}
	if err := u.RevokeRole(RoleOwner); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected last role to be kept, got %v", err)
	}
	if err := u.ReplaceRoles(nil); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected empty role set to be rejected, got %v", err)
	}
}

func TestUser_UpdateProfileKeepsAddressID(t *testing.T) {
	p := validParams()
	p.Address = &Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"}
	u, _ := NewUser(p, fakeHash)
	u.AttachAddressID(7)

	err := u.UpdateProfile("", "new@example.com", &Address{Street: "2 Oak St", City: "Springfield", State: "IL", ZipCode: "62702"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Name() != "Alice" {
		t.Fatalf("blank name should keep the current one, got %q", u.Name())
	}
	if u.Email() != "new@example.com" {
		t.Fatalf("email not updated: %q", u.Email())
	}
	addr := u.Address()
	if addr.ID != 7 || addr.Street != "2 Oak St" {
		t.Fatalf("unexpected address: %+v", addr)
	}

	if err := u.UpdateProfile("", "bad", nil); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if u.Email() != "new@example.com" {
		t.Fatalf("failed update must not change state, got %q", u.Email())
	}
}

func TestUser_ChangePassword(t *testing.T) {
	u, _ := NewUser(validParams(), fakeHash)
	if err := u.ChangePassword("xyz", fakeHash); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected short password to fail, got %v", err)
	}
	if err := u.ChangePassword("longer-secret", fakeHash); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if u.PasswordHash() != "hashed:longer-secret" {
		t.Fatalf("unexpected hash %q", u.PasswordHash())
	}
}

func TestRestoreUser_RoundTrip(t *testing.T) {
	u, _ := NewUserWithRoles(validParams(), []Role{RoleAdmin}, true, fakeHash)
	u.MarkPersisted(9, u.CreatedAt(), u.UpdatedAt())

	restored := RestoreUser(u.State())
	if restored.ID() != 9 || restored.Username() != "alice" || !restored.HasRole(RoleAdmin) {
		t.Fatalf("unexpected restored user: %+v", restored.State())
	}
}
