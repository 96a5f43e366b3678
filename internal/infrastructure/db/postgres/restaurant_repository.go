package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dimermichel/quickbite/internal/core/domain"
	"github.com/dimermichel/quickbite/internal/core/ports"
)

const foreignKeyViolation = "23503"

const selectRestaurant = `
	SELECT r.id, r.owner_id, r.name, r.cuisine, r.opening_hours, r.rating, r.is_open, r.created_at, r.updated_at,
	       a.id, a.street, a.city, a.state, a.zip_code
	FROM restaurants r
	LEFT JOIN addresses a ON a.id = r.address_id
`

const restaurantFilter = `
	WHERE ($1::text = '' OR LOWER(r.cuisine) = LOWER($1))
	  AND ($2::float8 IS NULL OR r.rating >= $2)
`

var _ ports.RestaurantRepository = (*RestaurantRepository)(nil)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

func (r *RestaurantRepository) Save(ctx context.Context, rest *domain.Restaurant) error {
	state := rest.State()
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

		if rest.IsNew() {
			const insert = `
				INSERT INTO restaurants (owner_id, name, cuisine, address_id, opening_hours, rating, is_open)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id, created_at, updated_at
			`
			return tx.QueryRow(ctx, insert,
				state.OwnerID, state.Name, state.Cuisine, nullID(addressID), state.OpeningHours, state.Rating, state.Open,
			).Scan(&id, &createdAt, &updatedAt)
		}

		const update = `
			UPDATE restaurants
			SET owner_id = $2, name = $3, cuisine = $4, address_id = $5, opening_hours = $6,
			    rating = $7, is_open = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at
		`
		err = tx.QueryRow(ctx, update,
			id, state.OwnerID, state.Name, state.Cuisine, nullID(addressID), state.OpeningHours, state.Rating, state.Open,
		).Scan(&createdAt, &updatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRestaurantNotFound
		}
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.ErrUserNotFound
		}
		return err
	}

	rest.MarkPersisted(id, createdAt, updatedAt)
	rest.AttachAddressID(addressID)
	return nil
}

// Delete removes the restaurant and its address; menu items go with the
// ON DELETE CASCADE.
func (r *RestaurantRepository) Delete(ctx context.Context, id int64) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var addressID *int64
		err := tx.QueryRow(ctx, `SELECT address_id FROM restaurants WHERE id = $1 FOR UPDATE`, id).Scan(&addressID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRestaurantNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id); err != nil {
			return err
		}
		return deleteAddress(ctx, tx, addressID)
	})
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.pool.QueryRow(ctx, selectRestaurant+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRestaurantNotFound
	}
	return rest, err
}

func (r *RestaurantRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Restaurant, error) {
	rows, err := r.pool.Query(ctx, selectRestaurant+` WHERE r.owner_id = $1 ORDER BY r.id`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectRestaurants(rows)
}

func (r *RestaurantRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

func (r *RestaurantRepository) List(ctx context.Context, filter ports.RestaurantFilter) ([]*domain.Restaurant, error) {
	query := selectRestaurant + restaurantFilter + ` ORDER BY r.id LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, filter.Cuisine, filter.MinRating, filter.Size, filter.Offset())
	if err != nil {
		return nil, err
	}
	return collectRestaurants(rows)
}

func (r *RestaurantRepository) Count(ctx context.Context, filter ports.RestaurantFilter) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants r`+restaurantFilter, filter.Cuisine, filter.MinRating).Scan(&n)
	return n, err
}

func collectRestaurants(rows pgx.Rows) ([]*domain.Restaurant, error) {
	defer rows.Close()

	out := []*domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

func scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var (
		s    domain.RestaurantState
		addr scannedAddress
	)
	dest := []interface{}{&s.ID, &s.OwnerID, &s.Name, &s.Cuisine, &s.OpeningHours, &s.Rating, &s.Open, &s.CreatedAt, &s.UpdatedAt}
	dest = append(dest, addr.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.Address = addr.address()
	return domain.RestoreRestaurant(s), nil
}
