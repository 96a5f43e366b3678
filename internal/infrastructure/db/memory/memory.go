// Package memory implements the repositories in process memory for local
// development and tests. Rows are kept the way the relational schema keeps
// them so that guard and role-sync behaviour matches the Postgres adapter.
package memory

import (
	"sync"
	"time"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

type userRow struct {
	id           int64
	name         string
	email        string
	username     string
	passwordHash string
	addressID    int64
	enabled      bool
	createdAt    time.Time
	updatedAt    time.Time
}

type roleAssignment struct {
	userID int64
	role   domain.Role
}

type restaurantRow struct {
	state     domain.RestaurantState
	addressID int64
}

// Store holds every table behind one mutex.
type Store struct {
	mu          sync.Mutex
	addresses   map[int64]domain.Address
	users       map[int64]userRow
	assignments []roleAssignment
	restaurants map[int64]restaurantRow
	menuItems   map[int64]domain.MenuItemState

	addressIDCounter    int64
	userIDCounter       int64
	restaurantIDCounter int64
	menuItemIDCounter   int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		addresses:   make(map[int64]domain.Address),
		users:       make(map[int64]userRow),
		restaurants: make(map[int64]restaurantRow),
		menuItems:   make(map[int64]domain.MenuItemState),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *UserRepository             { return &UserRepository{store: s} }
func (s *Store) Restaurants() *RestaurantRepository { return &RestaurantRepository{store: s} }
func (s *Store) MenuItems() *MenuItemRepository     { return &MenuItemRepository{store: s} }

// saveAddress inserts or rewrites an address row and returns its id.
// Callers hold s.mu.
func (s *Store) saveAddress(a *domain.Address) int64 {
	if a == nil {
		return 0
	}
	row := *a
	if row.ID == 0 {
		s.addressIDCounter++
		row.ID = s.addressIDCounter
	}
	s.addresses[row.ID] = row
	return row.ID
}

func (s *Store) loadAddress(id int64) *domain.Address {
	if id == 0 {
		return nil
	}
	a, ok := s.addresses[id]
	if !ok {
		return nil
	}
	return &a
}

func (s *Store) rolesOf(userID int64) []domain.Role {
	var roles []domain.Role
	for _, a := range s.assignments {
		if a.userID == userID {
			roles = append(roles, a.role)
		}
	}
	return roles
}

// syncRoles replaces every assignment of userID with one row per role.
func (s *Store) syncRoles(userID int64, roles []domain.Role) {
	kept := s.assignments[:0]
	for _, a := range s.assignments {
		if a.userID != userID {
			kept = append(kept, a)
		}
	}
	s.assignments = kept
	for _, r := range roles {
		s.assignments = append(s.assignments, roleAssignment{userID: userID, role: r})
	}
}

func paginate[T any](rows []T, offset, size int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + size
	if size <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
