package ports

import (
	"context"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

type CreateMenuItemInput struct {
	Actor        *domain.Identity
	RestaurantID int64
	Name         string
	Description  string
	Price        float64
	ImageURL     string
	Available    *bool
}

type UpdateMenuItemInput struct {
	Actor       *domain.Identity
	ID          int64
	Name        string
	Description string
	ImageURL    string
	Price       *float64
	Available   *bool
}

type ListMenuItemsInput struct {
	RestaurantID int64
	Available    *bool
	Name         string
	PageRequest
}

type MenuItemService interface {
	Create(ctx context.Context, input CreateMenuItemInput) (*domain.MenuItem, error)
	Get(ctx context.Context, id int64) (*domain.MenuItem, error)
	List(ctx context.Context, input ListMenuItemsInput) (Page[*domain.MenuItem], error)
	Update(ctx context.Context, input UpdateMenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}
