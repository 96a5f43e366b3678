package handler

import (
	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

func toCreateMenuItemInput(actor *domain.Identity, req createMenuItemRequest) ports.CreateMenuItemInput {
	in := ports.CreateMenuItemInput{
		Actor:        actor,
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Available:    req.Available,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

func toUpdateMenuItemInput(actor *domain.Identity, id int64, req updateMenuItemRequest) ports.UpdateMenuItemInput {
	return ports.UpdateMenuItemInput{
		Actor:       actor,
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Available:   req.Available,
	}
}

func toMenuItemResponse(m *domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           m.ID(),
		RestaurantID: m.RestaurantID(),
		Name:         m.Name(),
		Description:  m.Description(),
		Price:        m.Price(),
		ImageURL:     m.ImageURL(),
		Available:    m.IsAvailable(),
		CreatedAt:    m.CreatedAt(),
		UpdatedAt:    m.UpdatedAt(),
	}
}
