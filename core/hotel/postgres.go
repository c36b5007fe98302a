package hotel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/jmoiron/sqlx"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Hotel, error) {
	const q = `SELECT * FROM hotels WHERE hotel_id = $1`

	var h Hotel
	if err := sqlx.GetContext(ctx, s.db, &h, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Hotel{}, fault.Errorf(fault.NotFound, "hotel[%s] not found", id)
		}
		return Hotel{}, fmt.Errorf("fetching hotel[%s]: %w", id, err)
	}
	return h, nil
}

func (s *PostgresStore) ListByCity(ctx context.Context, cityID string) ([]Hotel, error) {
	const q = `SELECT * FROM hotels WHERE city_id = $1 ORDER BY name`

	hotels := []Hotel{}
	if err := sqlx.SelectContext(ctx, s.db, &hotels, q, cityID); err != nil {
		return nil, fmt.Errorf("listing hotels of city[%s]: %w", cityID, err)
	}
	return hotels, nil
}

func (s *PostgresStore) Create(ctx context.Context, h Hotel) error {
	const q = `
	INSERT INTO hotels (hotel_id, city_id, name, address, stars, visits, created_at, updated_at)
	VALUES (:hotel_id, :city_id, :name, :address, :stars, :visits, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, h); err != nil {
		return fmt.Errorf("creating hotel: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, h Hotel) error {
	const q = `
	UPDATE hotels SET
		name = :name,
		address = :address,
		stars = :stars,
		updated_at = :updated_at
	WHERE hotel_id = :hotel_id`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, h); err != nil {
		return fmt.Errorf("updating hotel[%s]: %w", h.ID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM hotels WHERE hotel_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting hotel[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) IncrementVisits(ctx context.Context, id string) error {
	const q = `UPDATE hotels SET visits = visits + 1 WHERE hotel_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("incrementing visits of hotel[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) DecrementVisits(ctx context.Context, id string) error {
	const q = `UPDATE hotels SET visits = visits - 1 WHERE hotel_id = $1 AND visits > 0`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("decrementing visits of hotel[%s]: %w", id, err)
	}
	return nil
}
