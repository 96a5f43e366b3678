package ports

import (
	"context"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// RestaurantFilter narrows a restaurant listing. Cuisine matches ignoring
// case; MinRating is inclusive.
type RestaurantFilter struct {
	Cuisine   string
	MinRating *float64
	PageRequest
}

type RestaurantRepository interface {
	Save(ctx context.Context, restaurant *domain.Restaurant) error
	// Delete removes the restaurant, its menu items and its address.
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Restaurant, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	List(ctx context.Context, filter RestaurantFilter) ([]*domain.Restaurant, error)
	Count(ctx context.Context, filter RestaurantFilter) (int64, error)
}

// RestaurantCache keeps recently read restaurants. Get returns nil, nil on a
// miss.
type RestaurantCache interface {
	Get(ctx context.Context, id int64) (*domain.Restaurant, error)
	Set(ctx context.Context, restaurant *domain.Restaurant) error
	Invalidate(ctx context.Context, id int64) error
}
