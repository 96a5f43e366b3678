package service

import (
	"context"
	"errors"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

var (
	_ ports.AuthService       = (*AuthService)(nil)
	_ ports.UserService       = (*UserService)(nil)
	_ ports.RestaurantService = (*RestaurantService)(nil)
	_ ports.MenuItemService   = (*MenuItemService)(nil)
)

func newAddress(in *ports.AddressInput) (*domain.Address, error) {
	if in == nil {
		return nil, nil
	}
	return domain.NewAddress(in.Street, in.City, in.State, in.ZipCode)
}

func rolesFromIDs(ids []int64) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		r, err := domain.RoleFromID(id)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// ownership decides whether an actor may change a restaurant's data.
// Admins may change any restaurant; owners only their own.
type ownership struct {
	users ports.UserRepository
}

func (o ownership) authorize(ctx context.Context, actor *domain.Identity, ownerID int64) error {
	if err := domain.RequireRole(actor, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return err
	}
	if actor.HasAnyRole(domain.RoleAdmin) {
		return nil
	}
	user, err := o.users.FindByUsername(ctx, actor.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrRestaurantAccessDenied
	}
	if err != nil {
		return err
	}
	if user.ID() != ownerID {
		return domain.ErrRestaurantAccessDenied
	}
	return nil
}
