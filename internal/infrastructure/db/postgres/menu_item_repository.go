package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

const selectMenuItem = `
	SELECT id, restaurant_id, name, description, price::float8, image_url, available, created_at, updated_at
	FROM menu_items
`

const menuItemFilter = `
	WHERE restaurant_id = $1
	  AND ($2::bool IS NULL OR available = $2)
	  AND ($3::text = '' OR name ILIKE '%' || $3 || '%')
`

var _ ports.MenuItemRepository = (*MenuItemRepository)(nil)

type MenuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func (r *MenuItemRepository) Save(ctx context.Context, item *domain.MenuItem) error {
	s := item.State()
	var err error

	if item.IsNew() {
		const insert = `
			INSERT INTO menu_items (restaurant_id, name, description, price, image_url, available)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`
		err = r.pool.QueryRow(ctx, insert,
			s.RestaurantID, s.Name, s.Description, s.Price, s.ImageURL, s.Available,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	} else {
		const update = `
			UPDATE menu_items
			SET name = $2, description = $3, price = $4, image_url = $5, available = $6, updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at
		`
		err = r.pool.QueryRow(ctx, update,
			s.ID, s.Name, s.Description, s.Price, s.ImageURL, s.Available,
		).Scan(&s.CreatedAt, &s.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMenuItemNotFound
		}
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.ErrRestaurantNotFound
		}
		return err
	}

	item.MarkPersisted(s.ID, s.CreatedAt, s.UpdatedAt)
	return nil
}

func (r *MenuItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuItemRepository) FindByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.pool.QueryRow(ctx, selectMenuItem+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMenuItemNotFound
	}
	return item, err
}

func (r *MenuItemRepository) List(ctx context.Context, filter ports.MenuItemFilter) ([]*domain.MenuItem, error) {
	query := selectMenuItem + menuItemFilter + ` ORDER BY id LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(ctx, query, filter.RestaurantID, filter.Available, filter.NameContains, filter.Size, filter.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *MenuItemRepository) Count(ctx context.Context, filter ports.MenuItemFilter) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`+menuItemFilter,
		filter.RestaurantID, filter.Available, filter.NameContains,
	).Scan(&n)
	return n, err
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var s domain.MenuItemState
	if err := row.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.Description, &s.Price, &s.ImageURL, &s.Available, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return domain.RestoreMenuItem(s), nil
}
