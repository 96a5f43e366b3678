package ports

import (
	"context"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// CreateRestaurantInput carries a new restaurant. Actor is the caller; an
// OWNER may only open restaurants for themselves.
type CreateRestaurantInput struct {
	Actor        *domain.Identity
	OwnerID      int64
	Name         string
	Cuisine      string
	OpeningHours string
	Address      *AddressInput
	Rating       *float64
	Open         *bool
}

type UpdateRestaurantInput struct {
	Actor        *domain.Identity
	ID           int64
	Name         string
	Cuisine      string
	OpeningHours string
	Address      *AddressInput
	Rating       *float64
	Open         *bool
}

type ListRestaurantsInput struct {
	Cuisine   string
	MinRating *float64
	PageRequest
}

type RestaurantService interface {
	Create(ctx context.Context, input CreateRestaurantInput) (*domain.Restaurant, error)
	Get(ctx context.Context, id int64) (*domain.Restaurant, error)
	List(ctx context.Context, input ListRestaurantsInput) (Page[*domain.Restaurant], error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Restaurant, error)
	Update(ctx context.Context, input UpdateRestaurantInput) (*domain.Restaurant, error)
	Delete(ctx context.Context, id int64) error
}
