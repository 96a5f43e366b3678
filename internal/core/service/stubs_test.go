package service

import (
	"context"
	"strings"
	"time"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[int64]domain.UserState
	nextID int64

	saveErr    error
	deleteFunc func(id int64) error
	saves      int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]domain.UserState)}
}

func (r *stubUserRepo) Save(_ context.Context, u *domain.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	if u.IsNew() {
		r.nextID++
		now := time.Now().UTC()
		u.MarkPersisted(r.nextID, now, now)
	}
	r.byID[u.ID()] = u.State()
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if r.deleteFunc != nil {
		if err := r.deleteFunc(id); err != nil {
			return err
		}
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return domain.RestoreUser(s), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, s := range r.byID {
		if s.Username == username {
			return domain.RestoreUser(s), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, s := range r.byID {
		if strings.EqualFold(s.Email, email) {
			return domain.RestoreUser(s), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) matching(filter ports.UserFilter) []*domain.User {
	var out []*domain.User
	for id := int64(1); id <= r.nextID; id++ {
		s, ok := r.byID[id]
		if !ok {
			continue
		}
		u := domain.RestoreUser(s)
		if filter.Role != 0 && !u.HasRole(filter.Role) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	all := r.matching(filter)
	start := filter.Offset()
	if start >= len(all) {
		return nil, nil
	}
	end := min(start+filter.Size, len(all))
	return all[start:end], nil
}

func (r *stubUserRepo) Count(_ context.Context, filter ports.UserFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// seed stores a persisted user with the given roles and returns it.
func (r *stubUserRepo) seed(username string, roles ...domain.Role) *domain.User {
	u, err := domain.NewUserWithRoles(domain.NewUserParams{
		Name:     strings.ToUpper(username[:1]) + username[1:],
		Email:    username + "@example.com",
		Username: username,
		Password: "secret",
	}, roles, true, fakeHash)
	if err != nil {
		panic(err)
	}
	if err := r.Save(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// ---------------------------------------------------------------------------
// Restaurants
// ---------------------------------------------------------------------------

type stubRestaurantRepo struct {
	byID   map[int64]domain.RestaurantState
	nextID int64
	finds  int
}

func newStubRestaurantRepo() *stubRestaurantRepo {
	return &stubRestaurantRepo{byID: make(map[int64]domain.RestaurantState)}
}

func (r *stubRestaurantRepo) Save(_ context.Context, rest *domain.Restaurant) error {
	if rest.IsNew() {
		r.nextID++
		now := time.Now().UTC()
		rest.MarkPersisted(r.nextID, now, now)
	}
	r.byID[rest.ID()] = rest.State()
	return nil
}

func (r *stubRestaurantRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrRestaurantNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	r.finds++
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return domain.RestoreRestaurant(s), nil
}

func (r *stubRestaurantRepo) FindByOwner(_ context.Context, ownerID int64) ([]*domain.Restaurant, error) {
	var out []*domain.Restaurant
	for id := int64(1); id <= r.nextID; id++ {
		if s, ok := r.byID[id]; ok && s.OwnerID == ownerID {
			out = append(out, domain.RestoreRestaurant(s))
		}
	}
	return out, nil
}

func (r *stubRestaurantRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	owned, _ := r.FindByOwner(ctx, ownerID)
	return int64(len(owned)), nil
}

func (r *stubRestaurantRepo) matching(filter ports.RestaurantFilter) []*domain.Restaurant {
	var out []*domain.Restaurant
	for id := int64(1); id <= r.nextID; id++ {
		s, ok := r.byID[id]
		if !ok {
			continue
		}
		if filter.Cuisine != "" && !strings.EqualFold(s.Cuisine, filter.Cuisine) {
			continue
		}
		if filter.MinRating != nil && s.Rating < *filter.MinRating {
			continue
		}
		out = append(out, domain.RestoreRestaurant(s))
	}
	return out
}

func (r *stubRestaurantRepo) List(_ context.Context, filter ports.RestaurantFilter) ([]*domain.Restaurant, error) {
	all := r.matching(filter)
	start := filter.Offset()
	if start >= len(all) {
		return nil, nil
	}
	return all[start:min(start+filter.Size, len(all))], nil
}

func (r *stubRestaurantRepo) Count(_ context.Context, filter ports.RestaurantFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

type stubCache struct {
	entries     map[int64]domain.RestaurantState
	invalidated []int64
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[int64]domain.RestaurantState)}
}

func (c *stubCache) Get(_ context.Context, id int64) (*domain.Restaurant, error) {
	s, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	return domain.RestoreRestaurant(s), nil
}

func (c *stubCache) Set(_ context.Context, r *domain.Restaurant) error {
	c.entries[r.ID()] = r.State()
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id int64) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

// ---------------------------------------------------------------------------
// Menu items
// ---------------------------------------------------------------------------

type stubMenuItemRepo struct {
	byID   map[int64]domain.MenuItemState
	nextID int64
}

func newStubMenuItemRepo() *stubMenuItemRepo {
	return &stubMenuItemRepo{byID: make(map[int64]domain.MenuItemState)}
}

func (r *stubMenuItemRepo) Save(_ context.Context, m *domain.MenuItem) error {
	if m.IsNew() {
		r.nextID++
		now := time.Now().UTC()
		m.MarkPersisted(r.nextID, now, now)
	}
	r.byID[m.ID()] = m.State()
	return nil
}

func (r *stubMenuItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrMenuItemNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubMenuItemRepo) FindByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	return domain.RestoreMenuItem(s), nil
}

func (r *stubMenuItemRepo) matching(filter ports.MenuItemFilter) []*domain.MenuItem {
	var out []*domain.MenuItem
	for id := int64(1); id <= r.nextID; id++ {
		s, ok := r.byID[id]
		if !ok || s.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.Available != nil && s.Available != *filter.Available {
			continue
		}
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		out = append(out, domain.RestoreMenuItem(s))
	}
	return out
}

func (r *stubMenuItemRepo) List(_ context.Context, filter ports.MenuItemFilter) ([]*domain.MenuItem, error) {
	all := r.matching(filter)
	start := filter.Offset()
	if start >= len(all) {
		return nil, nil
	}
	return all[start:min(start+filter.Size, len(all))], nil
}

func (r *stubMenuItemRepo) Count(_ context.Context, filter ports.MenuItemFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

// ---------------------------------------------------------------------------
// Security
// ---------------------------------------------------------------------------

func fakeHash(plain string) (string, error) { return "hashed:" + plain, nil }

type stubHasher struct {
	matches    int
	lastDigest string
	hashErr    error
}

func (h *stubHasher) Hash(plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return fakeHash(plain)
}

func (h *stubHasher) Matches(plain, digest string) bool {
	h.matches++
	h.lastDigest = digest
	return digest == "hashed:"+plain
}

type issued struct {
	subject   string
	roles     []domain.Role
	issuedAt  time.Time
	expiresAt time.Time
}

type stubTokens struct {
	last     *issued
	issueErr error
}

func (s *stubTokens) Issue(subject string, roles []domain.Role, issuedAt, expiresAt time.Time) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	s.last = &issued{subject: subject, roles: roles, issuedAt: issuedAt, expiresAt: expiresAt}
	return "Bearer token-for-" + subject, nil
}

func (s *stubTokens) Parse(string) (*domain.Identity, error) {
	return nil, domain.ErrTokenMalformed
}

func actor(subject string, roles ...domain.Role) *domain.Identity {
	return &domain.Identity{Subject: subject, Roles: roles}
}

func page(n, size int) ports.PageRequest { return ports.PageRequest{Page: n, Size: size} }
