package city

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

func (s *PostgresStore) GetByID(ctx context.Context, id string) (City, error) {
	const q = `SELECT * FROM cities WHERE city_id = $1`

	var c City
	if err := sqlx.GetContext(ctx, s.db, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return City{}, fault.Errorf(fault.NotFound, "city[%s] not found", id)
		}
		return City{}, fmt.Errorf("fetching city[%s]: %w", id, err)
	}
	return c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]City, error) {
	const q = `SELECT * FROM cities ORDER BY name`

	cities := []City{}
	if err := sqlx.SelectContext(ctx, s.db, &cities, q); err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}
	return cities, nil
}

func (s *PostgresStore) Create(ctx context.Context, c City) error {
	const q = `
	INSERT INTO cities (city_id, name, country, visits, created_at, updated_at)
	VALUES (:city_id, :name, :country, :visits, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, c); err != nil {
		return fmt.Errorf("creating city: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c City) error {
	const q = `
	UPDATE cities SET
		name = :name,
		country = :country,
		updated_at = :updated_at
	WHERE city_id = :city_id`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, c); err != nil {
		return fmt.Errorf("updating city[%s]: %w", c.ID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM cities WHERE city_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting city[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) IncrementVisits(ctx context.Context, id string) error {
	const q = `UPDATE cities SET visits = visits + 1 WHERE city_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("incrementing visits of city[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) DecrementVisits(ctx context.Context, id string) error {
	const q = `UPDATE cities SET visits = visits - 1 WHERE city_id = $1 AND visits > 0`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("decrementing visits of city[%s]: %w", id, err)
	}
	return nil
}
