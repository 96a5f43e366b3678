package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

type RestaurantService struct {
	restaurants ports.RestaurantRepository
	users       ports.UserRepository
	cache       ports.RestaurantCache
	owners      ownership
	logger      zerolog.Logger
}

// NewRestaurantService wires the service. cache may be nil.
func NewRestaurantService(restaurants ports.RestaurantRepository, users ports.UserRepository, cache ports.RestaurantCache, logger zerolog.Logger) *RestaurantService {
	if cache == nil {
		cache = noCache{}
	}
	return &RestaurantService{
		restaurants: restaurants,
		users:       users,
		cache:       cache,
		owners:      ownership{users: users},
		logger:      logger,
	}
}

func (s *RestaurantService) Create(ctx context.Context, input ports.CreateRestaurantInput) (*domain.Restaurant, error) {
	if err := domain.RequireRole(input.Actor, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.owners.authorize(ctx, input.Actor, owner.ID()); err != nil {
		return nil, err
	}

	addr, err := newAddress(input.Address)
	if err != nil {
		return nil, err
	}
	restaurant, err := domain.NewRestaurant(owner, domain.NewRestaurantParams{
		Name:         input.Name,
		Cuisine:      input.Cuisine,
		Address:      addr,
		OpeningHours: input.OpeningHours,
	})
	if err != nil {
		return nil, err
	}
	if input.Rating != nil {
		if err := restaurant.Rate(*input.Rating); err != nil {
			return nil, err
		}
	}
	if input.Open != nil && !*input.Open {
		restaurant.Close()
	}

	if err := s.restaurants.Save(ctx, restaurant); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", owner.ID()).Msg("failed to create restaurant")
		return nil, err
	}
	s.logger.Info().
		Int64("restaurant_id", restaurant.ID()).
		Int64("owner_id", owner.ID()).
		Msg("restaurant created")
	return restaurant, nil
}

// Get reads through the cache.
func (s *RestaurantService) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("restaurant_id", id).Msg("restaurant cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, restaurant); err != nil {
		s.logger.Warn().Err(err).Int64("restaurant_id", id).Msg("restaurant cache write failed")
	}
	return restaurant, nil
}

func (s *RestaurantService) List(ctx context.Context, input ports.ListRestaurantsInput) (ports.Page[*domain.Restaurant], error) {
	if err := input.PageRequest.Validate(); err != nil {
		return ports.Page[*domain.Restaurant]{}, err
	}
	if r := input.MinRating; r != nil && (*r < domain.MinRating || *r > domain.MaxRating) {
		return ports.Page[*domain.Restaurant]{}, domain.NewValidationError("minRating", "must be between %.1f and %.1f", domain.MinRating, domain.MaxRating)
	}

	filter := ports.RestaurantFilter{
		Cuisine:     input.Cuisine,
		MinRating:   input.MinRating,
		PageRequest: input.PageRequest,
	}
	restaurants, err := s.restaurants.List(ctx, filter)
	if err != nil {
		return ports.Page[*domain.Restaurant]{}, err
	}
	total, err := s.restaurants.Count(ctx, filter)
	if err != nil {
		return ports.Page[*domain.Restaurant]{}, err
	}
	return ports.NewPage(restaurants, input.PageRequest, total), nil
}

func (s *RestaurantService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Restaurant, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	restaurants, err := s.restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []*domain.Restaurant{}
	}
	return restaurants, nil
}

func (s *RestaurantService) Update(ctx context.Context, input ports.UpdateRestaurantInput) (*domain.Restaurant, error) {
	if err := domain.RequireRole(input.Actor, domain.RoleOwner, domain.RoleAdmin); err != nil {
		return nil, err
	}
	restaurant, err := s.restaurants.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.owners.authorize(ctx, input.Actor, restaurant.OwnerID()); err != nil {
		return nil, err
	}

	addr, err := newAddress(input.Address)
	if err != nil {
		return nil, err
	}
	if err := restaurant.UpdateInfo(input.Name, input.Cuisine, addr, input.OpeningHours); err != nil {
		return nil, err
	}
	if input.Rating != nil {
		if err := restaurant.Rate(*input.Rating); err != nil {
			return nil, err
		}
	}
	if input.Open != nil {
		if *input.Open {
			restaurant.Open()
		} else {
			restaurant.Close()
		}
	}

	if err := s.restaurants.Save(ctx, restaurant); err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", restaurant.ID()).Msg("failed to update restaurant")
		return nil, err
	}
	s.invalidate(ctx, restaurant.ID())
	s.logger.Info().Int64("restaurant_id", restaurant.ID()).Msg("restaurant updated")
	return restaurant, nil
}

// Delete removes the restaurant together with its menu.
func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	if _, err := s.restaurants.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.restaurants.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to delete restaurant")
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info().Int64("restaurant_id", id).Msg("restaurant deleted")
	return nil
}

func (s *RestaurantService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("restaurant_id", id).Msg("restaurant cache invalidation failed")
	}
}

type noCache struct{}

func (noCache) Get(context.Context, int64) (*domain.Restaurant, error) { return nil, nil }
func (noCache) Set(context.Context, *domain.Restaurant) error          { return nil }
func (noCache) Invalidate(context.Context, int64) error                { return nil }
