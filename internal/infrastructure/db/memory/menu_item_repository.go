package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

var _ ports.MenuItemRepository = (*MenuItemRepository)(nil)

type MenuItemRepository struct {
	store *Store
}

func (r *MenuItemRepository) Save(_ context.Context, item *domain.MenuItem) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	state := item.State()
	if _, ok := s.restaurants[state.RestaurantID]; !ok {
		return domain.ErrRestaurantNotFound
	}
	if !item.IsNew() {
		if _, ok := s.menuItems[state.ID]; !ok {
			return domain.ErrMenuItemNotFound
		}
	}

	now := s.now()
	state.UpdatedAt = now
	if item.IsNew() {
		s.menuItemIDCounter++
		state.ID = s.menuItemIDCounter
		state.CreatedAt = now
	}
	s.menuItems[state.ID] = state
	item.MarkPersisted(state.ID, state.CreatedAt, state.UpdatedAt)
	return nil
}

func (r *MenuItemRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menuItems[id]; !ok {
		return domain.ErrMenuItemNotFound
	}
	delete(s.menuItems, id)
	return nil
}

func (r *MenuItemRepository) FindByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.menuItems[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	return domain.RestoreMenuItem(state), nil
}

func (r *MenuItemRepository) List(_ context.Context, filter ports.MenuItemFilter) ([]*domain.MenuItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.filterMenuItems(filter)
	out := make([]*domain.MenuItem, 0, len(rows))
	for _, state := range paginate(rows, filter.Offset(), filter.Size) {
		out = append(out, domain.RestoreMenuItem(state))
	}
	return out, nil
}

func (r *MenuItemRepository) Count(_ context.Context, filter ports.MenuItemFilter) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterMenuItems(filter))), nil
}

func (s *Store) filterMenuItems(filter ports.MenuItemFilter) []domain.MenuItemState {
	needle := strings.ToLower(strings.TrimSpace(filter.NameContains))
	var rows []domain.MenuItemState
	for _, state := range s.menuItems {
		if state.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.Available != nil && state.Available != *filter.Available {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(state.Name), needle) {
			continue
		}
		rows = append(rows, state)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}
