package handler

import (
	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

func toCreateRestaurantInput(actor *domain.Identity, req createRestaurantRequest) ports.CreateRestaurantInput {
	return ports.CreateRestaurantInput{
		Actor:        actor,
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Cuisine:      req.Cuisine,
		OpeningHours: req.OpeningHours,
		Address:      toAddressInput(req.Address),
		Rating:       req.Rating,
		Open:         req.IsOpen,
	}
}

func toUpdateRestaurantInput(actor *domain.Identity, id int64, req updateRestaurantRequest) ports.UpdateRestaurantInput {
	return ports.UpdateRestaurantInput{
		Actor:        actor,
		ID:           id,
		Name:         req.Name,
		Cuisine:      req.Cuisine,
		OpeningHours: req.OpeningHours,
		Address:      toAddressInput(req.Address),
		Rating:       req.Rating,
		Open:         req.IsOpen,
	}
}

func toRestaurantResponse(r *domain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:           r.ID(),
		OwnerID:      r.OwnerID(),
		Name:         r.Name(),
		Cuisine:      r.Cuisine(),
		OpeningHours: r.OpeningHours(),
		Address:      toAddressResponse(r.Address()),
		Rating:       r.Rating(),
		IsOpen:       r.IsOpen(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}
