package domain

import (
	"fmt"
	"strings"
)

// AuthorityPrefix is prepended to role names in token claims.
const AuthorityPrefix = "ROLE_"

// Role is a fixed permission group. The numeric value is the stable id
// stored in the roles table.
type Role int64

const (
	RoleUser  Role = 1
	RoleOwner Role = 2
	RoleAdmin Role = 3
)

var roleNames = map[Role]string{
	RoleUser:  "USER",
	RoleOwner: "OWNER",
	RoleAdmin: "ADMIN",
}

// AllRoles lists every role in id order.
func AllRoles() []Role {
	return []Role{RoleUser, RoleOwner, RoleAdmin}
}

func (r Role) ID() int64 { return int64(r) }

func (r Role) Name() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int64(r))
}

func (r Role) String() string { return r.Name() }

// Authority returns the claim form of the role, e.g. "ROLE_OWNER".
func (r Role) Authority() string { return AuthorityPrefix + r.Name() }

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// RoleFromID resolves a stored role id.
func RoleFromID(id int64) (Role, error) {
	r := Role(id)
	if !r.Valid() {
		return 0, invalid("roleId", "unknown role id %d", id)
	}
	return r, nil
}

// RoleFromName resolves a role by name, ignoring case.
func RoleFromName(name string) (Role, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for r, rn := range roleNames {
		if rn == n {
			return r, nil
		}
	}
	return 0, invalid("role", "unknown role %q", name)
}

// RoleFromAuthority resolves a canonical "ROLE_<NAME>" claim value. Anything
// else, including bare role names, is rejected.
func RoleFromAuthority(authority string) (Role, bool) {
	name, ok := strings.CutPrefix(authority, AuthorityPrefix)
	if !ok {
		return 0, false
	}
	for r, rn := range roleNames {
		if rn == name {
			return r, true
		}
	}
	return 0, false
}

func containsRole(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}

// normalizeRoles drops invalid values and duplicates, keeping first-seen order.
func normalizeRoles(roles []Role) []Role {
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if r.Valid() && !containsRole(out, r) {
			out = append(out, r)
		}
	}
	return out
}
