package ports

import (
	"context"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// UserFilter narrows a user listing. A zero Role lists every user.
type UserFilter struct {
	Role domain.Role
	PageRequest
}

// UserRepository persists the User aggregate: the user row, its address and
// its role assignments.
type UserRepository interface {
	// Save inserts a new user or updates an existing one. The role
	// assignments are replaced in the same transaction.
	Save(ctx context.Context, user *domain.User) error
	// Delete removes the user and its address. It fails with
	// *domain.UserHasDependentsError while the user owns restaurants.
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
