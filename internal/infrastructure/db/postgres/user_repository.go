package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
	"github.com/dimermichel/quickbite/internal/infrastructure/metrics"
)

const selectUser = `
	SELECT u.id, u.name, u.email, u.username, u.password, u.enabled, u.created_at, u.updated_at,
	       a.id, a.street, a.city, a.state, a.zip_code,
	       ARRAY(SELECT ur.role_id FROM user_roles ur WHERE ur.user_id = u.id ORDER BY ur.role_id) AS role_ids
	FROM users u
	LEFT JOIN addresses a ON a.id = u.address_id
`

const userRoleFilter = `
	WHERE ($1::bigint = 0 OR EXISTS (
		SELECT 1 FROM user_roles ur WHERE ur.user_id = u.id AND ur.role_id = $1
	))
`

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Save writes the user row, its address and the full set of role
// assignments in one transaction.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	state := u.State()
	var (
		id                   = state.ID
		addressID            int64
		createdAt, updatedAt time.Time
	)

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		if addressID, err = saveAddress(ctx, tx, state.Address); err != nil {
			return err
		}

		if u.IsNew() {
			const insert = `
				INSERT INTO users (name, email, username, password, enabled, address_id)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, created_at, updated_at
			`
			err = tx.QueryRow(ctx, insert,
				state.Name, state.Email, state.Username, state.PasswordHash, state.Enabled, nullID(addressID),
			).Scan(&id, &createdAt, &updatedAt)
		} else {
			const update = `
				UPDATE users
				SET name = $2, email = $3, username = $4, password = $5, enabled = $6,
				    address_id = $7, updated_at = NOW()
				WHERE id = $1
				RETURNING created_at, updated_at
			`
			err = tx.QueryRow(ctx, update,
				id, state.Name, state.Email, state.Username, state.PasswordHash, state.Enabled, nullID(addressID),
			).Scan(&createdAt, &updatedAt)
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrUserNotFound
			}
		}
		if err != nil {
			return err
		}

		return syncRoles(ctx, tx, id, state.Roles)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdentity
		}
		return err
	}

	u.MarkPersisted(id, createdAt, updatedAt)
	u.AttachAddressID(addressID)
	return nil
}

// syncRoles makes user_roles hold exactly one row per role of the user.
func syncRoles(ctx context.Context, tx pgx.Tx, userID int64, roles []domain.Role) error {
	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	ids := make([]int64, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID())
	}
	const insert = `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, UNNEST($2::bigint[])
	`
	_, err := tx.Exec(ctx, insert, userID, ids)
	return err
}

// Delete removes the user, its role rows and its address. The user row is
// locked first so no restaurant can be assigned to it while the ownership
// count is taken.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var addressID *int64
		err := tx.QueryRow(ctx, `SELECT address_id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&addressID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		var owned int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants WHERE owner_id = $1`, id).Scan(&owned); err != nil {
			return err
		}
		if owned > 0 {
			return &domain.UserHasDependentsError{UserID: id, Count: owned}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
			return err
		}
		return deleteAddress(ctx, tx, addressID)
	})

	switch {
	case err == nil:
		metrics.GuardedDeletesTotal.WithLabelValues("deleted").Inc()
	case errors.Is(err, domain.ErrUserHasDependents):
		metrics.GuardedDeletesTotal.WithLabelValues("blocked").Inc()
	}
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.id = $1`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.username = $1`, username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.email = $1`, email)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	query := selectUser + userRoleFilter + ` ORDER BY u.id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, filter.Role.ID(), filter.Size, filter.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context, filter ports.UserFilter) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+userRoleFilter, filter.Role.ID()).Scan(&n)
	return n, err
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, query, arg).Scan(&ok)
	return ok, err
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		s       domain.UserState
		addr    scannedAddress
		roleIDs []int64
	)
	dest := []interface{}{&s.ID, &s.Name, &s.Email, &s.Username, &s.PasswordHash, &s.Enabled, &s.CreatedAt, &s.UpdatedAt}
	dest = append(dest, addr.dest()...)
	dest = append(dest, &roleIDs)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	s.Address = addr.address()
	for _, id := range roleIDs {
		if role, err := domain.RoleFromID(id); err == nil {
			s.Roles = append(s.Roles, role)
		}
	}
	return domain.RestoreUser(s), nil
}
