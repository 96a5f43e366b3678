package ports

import (
	"context"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// MenuItemFilter narrows the menu of one restaurant.
type MenuItemFilter struct {
	RestaurantID int64
	Available    *bool
	NameContains string
	PageRequest
}

type MenuItemRepository interface {
	Save(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	List(ctx context.Context, filter MenuItemFilter) ([]*domain.MenuItem, error)
	Count(ctx context.Context, filter MenuItemFilter) (int64, error)
}
