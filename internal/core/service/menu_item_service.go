package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

type MenuItemService struct {
	items       ports.MenuItemRepository
	restaurants ports.RestaurantRepository
	owners      ownership
	logger      zerolog.Logger
}

func NewMenuItemService(items ports.MenuItemRepository, restaurants ports.RestaurantRepository, users ports.UserRepository, logger zerolog.Logger) *MenuItemService {
	return &MenuItemService{
		items:       items,
		restaurants: restaurants,
		owners:      ownership{users: users},
		logger:      logger,
	}
}

func (s *MenuItemService) Create(ctx context.Context, input ports.CreateMenuItemInput) (*domain.MenuItem, error) {
	if err := domain.RequireRole(input.Actor, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	restaurant, err := s.restaurants.FindByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if err := s.owners.authorize(ctx, input.Actor, restaurant.OwnerID()); err != nil {
		return nil, err
	}

	item, err := domain.NewMenuItem(restaurant, domain.NewMenuItemParams{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Available:   input.Available,
	})
	if err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, item); err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", restaurant.ID()).Msg("failed to create menu item")
		return nil, err
	}
	s.logger.Info().
		Int64("menu_item_id", item.ID()).
		Int64("restaurant_id", restaurant.ID()).
		Msg("menu item created")
	return item, nil
}

func (s *MenuItemService) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return s.items.FindByID(ctx, id)
}

// List returns one restaurant's menu.
func (s *MenuItemService) List(ctx context.Context, input ports.ListMenuItemsInput) (ports.Page[*domain.MenuItem], error) {
	if input.RestaurantID <= 0 {
		return ports.Page[*domain.MenuItem]{}, domain.NewValidationError("restaurantId", "is required")
	}
	if err := input.PageRequest.Validate(); err != nil {
		return ports.Page[*domain.MenuItem]{}, err
	}
	if _, err := s.restaurants.FindByID(ctx, input.RestaurantID); err != nil {
		return ports.Page[*domain.MenuItem]{}, err
	}

	filter := ports.MenuItemFilter{
		RestaurantID: input.RestaurantID,
		Available:    input.Available,
		NameContains: input.Name,
		PageRequest:  input.PageRequest,
	}
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return ports.Page[*domain.MenuItem]{}, err
	}
	total, err := s.items.Count(ctx, filter)
	if err != nil {
		return ports.Page[*domain.MenuItem]{}, err
	}
	return ports.NewPage(items, input.PageRequest, total), nil
}

func (s *MenuItemService) Update(ctx context.Context, input ports.UpdateMenuItemInput) (*domain.MenuItem, error) {
	if err := domain.RequireRole(input.Actor, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	restaurant, err := s.restaurants.FindByID(ctx, item.RestaurantID())
	if err != nil {
		return nil, err
	}
	if err := s.owners.authorize(ctx, input.Actor, restaurant.OwnerID()); err != nil {
		return nil, err
	}

	if err := item.UpdateInfo(input.Name, input.Description, input.ImageURL); err != nil {
		return nil, err
	}
	if input.Price != nil {
		if err := item.UpdatePrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Available != nil {
		if *input.Available {
			item.MarkAvailable()
		} else {
			item.MarkUnavailable()
		}
	}

	if err := s.items.Save(ctx, item); err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", item.ID()).Msg("failed to update menu item")
		return nil, err
	}
	s.logger.Info().Int64("menu_item_id", item.ID()).Msg("menu item updated")
	return item, nil
}

func (s *MenuItemService) Delete(ctx context.Context, id int64) error {
	if _, err := s.items.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to delete menu item")
		return err
	}
	s.logger.Info().Int64("menu_item_id", id).Msg("menu item deleted")
	return nil
}
