package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

var _ ports.RestaurantRepository = (*RestaurantRepository)(nil)

type RestaurantRepository struct {
	store *Store
}

func (r *RestaurantRepository) Save(_ context.Context, rest *domain.Restaurant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	state := rest.State()
	if _, ok := s.users[state.OwnerID]; !ok {
		return domain.ErrUserNotFound
	}
	if !rest.IsNew() {
		if _, ok := s.restaurants[state.ID]; !ok {
			return domain.ErrRestaurantNotFound
		}
	}

	addressID := s.saveAddress(state.Address)
	now := s.now()
	state.UpdatedAt = now
	if rest.IsNew() {
		s.restaurantIDCounter++
		state.ID = s.restaurantIDCounter
		state.CreatedAt = now
	}
	state.Address = nil
	s.restaurants[state.ID] = restaurantRow{state: state, addressID: addressID}

	rest.MarkPersisted(state.ID, state.CreatedAt, state.UpdatedAt)
	rest.AttachAddressID(addressID)
	return nil
}

// Delete removes the restaurant, its menu items and its address.
func (r *RestaurantRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.restaurants[id]
	if !ok {
		return domain.ErrRestaurantNotFound
	}
	for itemID, item := range s.menuItems {
		if item.RestaurantID == id {
			delete(s.menuItems, itemID)
		}
	}
	delete(s.addresses, row.addressID)
	delete(s.restaurants, id)
	return nil
}

func (r *RestaurantRepository) FindByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return s.restoreRestaurant(row), nil
}

func (r *RestaurantRepository) FindByOwner(_ context.Context, ownerID int64) ([]*domain.Restaurant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*domain.Restaurant{}
	for _, row := range s.sortedRestaurants() {
		if row.state.OwnerID == ownerID {
			out = append(out, s.restoreRestaurant(row))
		}
	}
	return out, nil
}

func (r *RestaurantRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	owned, err := r.FindByOwner(ctx, ownerID)
	return int64(len(owned)), err
}

func (r *RestaurantRepository) List(_ context.Context, filter ports.RestaurantFilter) ([]*domain.Restaurant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.filterRestaurants(filter)
	out := make([]*domain.Restaurant, 0, len(rows))
	for _, row := range paginate(rows, filter.Offset(), filter.Size) {
		out = append(out, s.restoreRestaurant(row))
	}
	return out, nil
}

func (r *RestaurantRepository) Count(_ context.Context, filter ports.RestaurantFilter) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterRestaurants(filter))), nil
}

func (s *Store) sortedRestaurants() []restaurantRow {
	rows := make([]restaurantRow, 0, len(s.restaurants))
	for _, row := range s.restaurants {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].state.ID < rows[j].state.ID })
	return rows
}

func (s *Store) filterRestaurants(filter ports.RestaurantFilter) []restaurantRow {
	var rows []restaurantRow
	for _, row := range s.sortedRestaurants() {
		if filter.Cuisine != "" && !strings.EqualFold(row.state.Cuisine, filter.Cuisine) {
			continue
		}
		if filter.MinRating != nil && row.state.Rating < *filter.MinRating {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Store) restoreRestaurant(row restaurantRow) *domain.Restaurant {
	state := row.state
	state.Address = s.loadAddress(row.addressID)
	return domain.RestoreRestaurant(state)
}
