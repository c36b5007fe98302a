package reservation

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

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Reservation, error) {
	const q = `SELECT * FROM reservations WHERE reservation_id = $1`

	var res Reservation
	if err := sqlx.GetContext(ctx, s.db, &res, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reservation{}, fault.Errorf(fault.NotFound, "reservation[%s] not found", id)
		}
		return Reservation{}, fmt.Errorf("fetching reservation[%s]: %w", id, err)
	}
	return res, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Reservation, error) {
	const q = `SELECT * FROM reservations ORDER BY start_date`

	list := []Reservation{}
	if err := sqlx.SelectContext(ctx, s.db, &list, q); err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	return list, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Reservation, error) {
	const q = `SELECT * FROM reservations WHERE user_id = $1 ORDER BY start_date`

	list := []Reservation{}
	if err := sqlx.SelectContext(ctx, s.db, &list, q, userID); err != nil {
		return nil, fmt.Errorf("listing reservations of user[%s]: %w", userID, err)
	}
	return list, nil
}

func (s *PostgresStore) Create(ctx context.Context, r Reservation) error {
	const q = `
	INSERT INTO reservations (reservation_id, room_id, user_id, start_date, end_date, price, created_at, updated_at)
	VALUES (:reservation_id, :room_id, :user_id, :start_date, :end_date, :price, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, r); err != nil {
		return fmt.Errorf("creating reservation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, r Reservation) error {
	const q = `
	UPDATE reservations SET
		start_date = :start_date,
		end_date = :end_date,
		price = :price,
		updated_at = :updated_at
	WHERE reservation_id = :reservation_id`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, r); err != nil {
		return fmt.Errorf("updating reservation[%s]: %w", r.ID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reservations WHERE reservation_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting reservation[%s]: %w", id, err)
	}
	return nil
}
