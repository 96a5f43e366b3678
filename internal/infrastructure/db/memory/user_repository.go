package memory

import (
	"context"
	"sort"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
	"github.com/dimermichel/quickbite/internal/infrastructure/metrics"
)

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	store *Store
}

// Save writes the user row, its address and its role assignments as one unit.
func (r *UserRepository) Save(_ context.Context, u *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range s.users {
		if id == u.ID() {
			continue
		}
		if row.username == u.Username() || row.email == u.Email() {
			return domain.ErrDuplicateIdentity
		}
	}

	state := u.State()
	if !u.IsNew() {
		if _, ok := s.users[u.ID()]; !ok {
			return domain.ErrUserNotFound
		}
	}

	addressID := s.saveAddress(state.Address)
	now := s.now()
	row := userRow{
		id:           state.ID,
		name:         state.Name,
		email:        state.Email,
		username:     state.Username,
		passwordHash: state.PasswordHash,
		addressID:    addressID,
		enabled:      state.Enabled,
		createdAt:    state.CreatedAt,
		updatedAt:    now,
	}
	if u.IsNew() {
		s.userIDCounter++
		row.id = s.userIDCounter
		row.createdAt = now
	}
	s.users[row.id] = row
	s.syncRoles(row.id, state.Roles)

	u.MarkPersisted(row.id, row.createdAt, row.updatedAt)
	u.AttachAddressID(addressID)
	return nil
}

// Delete refuses while the user still owns restaurants.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}

	var owned int64
	for _, rest := range s.restaurants {
		if rest.state.OwnerID == id {
			owned++
		}
	}
	if owned > 0 {
		metrics.GuardedDeletesTotal.WithLabelValues("blocked").Inc()
		return &domain.UserHasDependentsError{UserID: id, Count: owned}
	}

	s.syncRoles(id, nil)
	delete(s.addresses, row.addressID)
	delete(s.users, id)
	metrics.GuardedDeletesTotal.WithLabelValues("deleted").Inc()
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.restoreUser(row), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findBy(func(row userRow) bool { return row.username == username })
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findBy(func(row userRow) bool { return row.email == email })
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *UserRepository) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.filterUsers(filter.Role)
	out := make([]*domain.User, 0, len(rows))
	for _, row := range paginate(rows, filter.Offset(), filter.Size) {
		out = append(out, s.restoreUser(row))
	}
	return out, nil
}

func (r *UserRepository) Count(_ context.Context, filter ports.UserFilter) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterUsers(filter.Role))), nil
}

func (r *UserRepository) findBy(match func(userRow) bool) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.users {
		if match(row) {
			return s.restoreUser(row), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) filterUsers(role domain.Role) []userRow {
	var rows []userRow
	for _, row := range s.users {
		if role != 0 && !hasRole(s.rolesOf(row.id), role) {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].id < rows[j].id })
	return rows
}

func (s *Store) restoreUser(row userRow) *domain.User {
	return domain.RestoreUser(domain.UserState{
		ID:           row.id,
		Name:         row.name,
		Email:        row.email,
		Username:     row.username,
		PasswordHash: row.passwordHash,
		Address:      s.loadAddress(row.addressID),
		Roles:        s.rolesOf(row.id),
		Enabled:      row.enabled,
		CreatedAt:    row.createdAt,
		UpdatedAt:    row.updatedAt,
	})
}

func hasRole(roles []domain.Role, want domain.Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
