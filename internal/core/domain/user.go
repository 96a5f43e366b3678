package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 4
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// HashFunc turns a plaintext password into the digest that gets stored.
type HashFunc func(plaintext string) (string, error)

// User is an account together with its address and role assignments.
// Fields are only reachable through methods so invariants always hold.
type User struct {
	id           int64
	name         string
	email        string
	username     string
	passwordHash string
	address      *Address
	roles        []Role
	enabled      bool
	createdAt    time.Time
	updatedAt    time.Time
}

// UserState is the flat form of a User used by storage adapters.
type UserState struct {
	ID           int64
	Name         string
	Email        string
	Username     string
	PasswordHash string
	Address      *Address
	Roles        []Role
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserParams carries the fields needed to create an account.
type NewUserParams struct {
	Name     string
	Email    string
	Username string
	Password string
	Address  *Address
}

// NewUser creates a self-registered account. It always starts enabled with
// exactly the USER role.
func NewUser(p NewUserParams, hash HashFunc) (*User, error) {
	return NewUserWithRoles(p, []Role{RoleUser}, true, hash)
}

// NewUserWithRoles creates an account with an explicit role set, as done by
// administrators. An empty role set falls back to USER.
func NewUserWithRoles(p NewUserParams, roles []Role, enabled bool, hash HashFunc) (*User, error) {
	u := &User{
		name:     strings.TrimSpace(p.Name),
		email:    strings.TrimSpace(p.Email),
		username: strings.TrimSpace(p.Username),
		address:  copyAddress(p.Address),
		enabled:  enabled,
	}
	if err := u.validateIdentity(); err != nil {
		return nil, err
	}
	if u.address != nil {
		if err := u.address.Validate(); err != nil {
			return nil, err
		}
	}
	for _, r := range roles {
		if !r.Valid() {
			return nil, invalid("roleId", "unknown role id %d", int64(r))
		}
	}
	u.roles = normalizeRoles(roles)
	if len(u.roles) == 0 {
		u.roles = []Role{RoleUser}
	}
	if err := u.setPassword(p.Password, hash); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u.createdAt, u.updatedAt = now, now
	return u, nil
}

// RestoreUser rebuilds a User loaded from storage.
func RestoreUser(s UserState) *User {
	roles := normalizeRoles(s.Roles)
	if len(roles) == 0 {
		roles = []Role{RoleUser}
	}
	return &User{
		id:           s.ID,
		name:         s.Name,
		email:        s.Email,
		username:     s.Username,
		passwordHash: s.PasswordHash,
		address:      copyAddress(s.Address),
		roles:        roles,
		enabled:      s.Enabled,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

func (u *User) State() UserState {
	return UserState{
		ID:           u.id,
		Name:         u.name,
		Email:        u.email,
		Username:     u.username,
		PasswordHash: u.passwordHash,
		Address:      copyAddress(u.address),
		Roles:        u.Roles(),
		Enabled:      u.enabled,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}

func (u *User) ID() int64 { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() string { return u.email }
func (u *User) Username() string { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Address() *Address { return copyAddress(u.address) }
func (u *User) Enabled() bool { return u.enabled }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
func (u *User) IsNew() bool { return u.id == 0 }
func (u *User) Roles() []Role { return append([]Role(nil), u.roles...) }
func (u *User) HasRole(r Role) bool { return containsRole(u.roles, r) }
func (u *User) CanOwnRestaurant() bool { return u.HasAnyRole(RoleOwner, RoleAdmin) }

func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

// MarkPersisted records the identity and timestamps assigned by storage.
func (u *User) MarkPersisted(id int64, createdAt, updatedAt time.Time) {
	u.id = id
	u.createdAt = createdAt
	u.updatedAt = updatedAt
}

// AttachAddressID records the storage id of the user's address.
func (u *User) AttachAddressID(id int64) {
	if u.address != nil {
		u.address.ID = id
	}
}

// UpdateProfile changes name, email and address. Blank values and a nil
// address leave the current value untouched.
func (u *User) UpdateProfile(name, email string, address *Address) error {
	next := *u
	if v := strings.TrimSpace(name); v != "" {
		next.name = v
	}
	if v := strings.TrimSpace(email); v != "" {
		next.email = v
	}
	if err := next.validateIdentity(); err != nil {
		return err
	}
	if address != nil {
		if err := address.Validate(); err != nil {
			return err
		}
	}
	u.name, u.email = next.name, next.email
	u.address = replaceAddress(u.address, address)
	u.touch()
	return nil
}

// ChangePassword validates and hashes a new password.
func (u *User) ChangePassword(plaintext string, hash HashFunc) error {
	if err := u.setPassword(plaintext, hash); err != nil {
		return err
	}
	u.touch()
	return nil
}

func (u *User) AssignRole(r Role) error {
	if !r.Valid() {
		return invalid("roleId", "unknown role id %d", int64(r))
	}
	if !u.HasRole(r) {
		u.roles = append(u.roles, r)
		u.touch()
	}
	return nil
}

// RevokeRole removes a role. The last remaining role cannot be removed.
func (u *User) RevokeRole(r Role) error {
	if !u.HasRole(r) {
		return nil
	}
	if len(u.roles) == 1 {
		return invalid("roles", "user must keep at least one role")
	}
	kept := make([]Role, 0, len(u.roles)-1)
	for _, have := range u.roles {
		if have != r {
			kept = append(kept, have)
		}
	}
	u.roles = kept
	u.touch()
	return nil
}

// ReplaceRoles swaps the whole role set.
func (u *User) ReplaceRoles(roles []Role) error {
	for _, r := range roles {
		if !r.Valid() {
			return invalid("roleId", "unknown role id %d", int64(r))
		}
	}
	next := normalizeRoles(roles)
	if len(next) == 0 {
		return invalid("roles", "user must keep at least one role")
	}
	u.roles = next
	u.touch()
	return nil
}

func (u *User) Enable() {
	if !u.enabled {
		u.enabled = true
		u.touch()
	}
}

func (u *User) Disable() {
	if u.enabled {
		u.enabled = false
		u.touch()
	}
}

func (u *User) setPassword(plaintext string, hash HashFunc) error {
	if len(plaintext) < minPasswordLen {
		return invalid("password", "must be at least %d characters", minPasswordLen)
	}
	digest, err := hash(plaintext)
	if err != nil {
		return err
	}
	u.passwordHash = digest
	return nil
}

func (u *User) validateIdentity() error {
	if u.name == "" {
		return invalid("name", "cannot be empty")
	}
	if n := len([]rune(u.username)); n < minUsernameLen || n > maxUsernameLen {
		return invalid("username", "must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}
	if !emailPattern.MatchString(u.email) {
		return invalid("email", "is not a valid email address")
	}
	return nil
}

func (u *User) touch() { u.updatedAt = time.Now().UTC() }
