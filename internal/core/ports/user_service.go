package ports

import (
	"context"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// AddressInput holds a postal address as received from a client.
type AddressInput struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// RegisterUserInput carries a self-registration. The new account only ever
// gets the USER role.
type RegisterUserInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Address  *AddressInput
}

// CreateUserInput carries an administrative account creation.
type CreateUserInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Address  *AddressInput
	RoleIDs  []int64 // empty means USER
	Enabled  *bool   // nil means enabled
}

// UpdateUserInput carries an administrative update. Zero values leave the
// field untouched.
type UpdateUserInput struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Address  *AddressInput
	RoleIDs  []int64
	Enabled  *bool
}

type ListUsersInput struct {
	RoleID int64 // 0 lists every user
	PageRequest
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, input ListUsersInput) (Page[*domain.User], error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
