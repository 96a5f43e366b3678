package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// saveAddress rewrites the row a points at, or inserts a new one when a has
// no id yet or its row is gone. It returns the row id, 0 for a nil address.
func saveAddress(ctx context.Context, tx pgx.Tx, a *domain.Address) (int64, error) {
	if a == nil {
		return 0, nil
	}

	if a.ID != 0 {
		const update = `
			UPDATE addresses
			SET street = $2, city = $3, state = $4, zip_code = $5
			WHERE id = $1
		`
		tag, err := tx.Exec(ctx, update, a.ID, a.Street, a.City, a.State, a.ZipCode)
		if err != nil {
			return 0, err
		}
		if tag.RowsAffected() == 1 {
			return a.ID, nil
		}
	}

	const insert = `
		INSERT INTO addresses (street, city, state, zip_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := tx.QueryRow(ctx, insert, a.Street, a.City, a.State, a.ZipCode).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func deleteAddress(ctx context.Context, tx pgx.Tx, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := tx.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, *id)
	return err
}

// scannedAddress receives the nullable columns of a LEFT JOIN on addresses.
type scannedAddress struct {
	id      *int64
	street  *string
	city    *string
	state   *string
	zipCode *string
}

func (s *scannedAddress) dest() []interface{} {
	return []interface{}{&s.id, &s.street, &s.city, &s.state, &s.zipCode}
}

func (s *scannedAddress) address() *domain.Address {
	if s.id == nil {
		return nil
	}
	return &domain.Address{
		ID:      *s.id,
		Street:  deref(s.street),
		City:    deref(s.city),
		State:   deref(s.state),
		ZipCode: deref(s.zipCode),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
