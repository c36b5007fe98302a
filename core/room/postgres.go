package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/jmoiron/sqlx"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Room, error) {
	const q = `SELECT * FROM rooms WHERE room_id = $1`

	var rm Room
	if err := sqlx.GetContext(ctx, s.db, &rm, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Room{}, fault.Errorf(fault.NotFound, "room[%s] not found", id)
		}
		return Room{}, fmt.Errorf("fetching room[%s]: %w", id, err)
	}
	return rm, nil
}

func (s *PostgresStore) ListByHotel(ctx context.Context, hotelID string) ([]Room, error) {
	const q = `SELECT * FROM rooms WHERE hotel_id = $1 ORDER BY name`

	rooms := []Room{}
	if err := sqlx.SelectContext(ctx, s.db, &rooms, q, hotelID); err != nil {
		return nil, fmt.Errorf("listing rooms of hotel[%s]: %w", hotelID, err)
	}
	return rooms, nil
}

func (s *PostgresStore) Create(ctx context.Context, rm Room) error {
	const q = `
	INSERT INTO rooms (room_id, hotel_id, name, price_per_night, available, created_at, updated_at)
	VALUES (:room_id, :hotel_id, :name, :price_per_night, :available, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, rm); err != nil {
		return fmt.Errorf("creating room: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, rm Room) error {
	const q = `
	UPDATE rooms SET
		name = :name,
		price_per_night = :price_per_night,
		updated_at = :updated_at
	WHERE room_id = :room_id`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, rm); err != nil {
		return fmt.Errorf("updating room[%s]: %w", rm.ID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM rooms WHERE room_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting room[%s]: %w", id, err)
	}
	return nil
}

// MarkUnavailable wins or loses the booking in a single conditional update.
func (s *PostgresStore) MarkUnavailable(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE rooms SET available = false, updated_at = $2 WHERE room_id = $1 AND available = true`

	res, err := s.db.ExecContext(ctx, q, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("marking room[%s] unavailable: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading affected rows: %w", err)
	}
	return n == 1, nil
}

func (s *PostgresStore) MarkAvailable(ctx context.Context, id string) error {
	const q = `UPDATE rooms SET available = true, updated_at = $2 WHERE room_id = $1`

	res, err := s.db.ExecContext(ctx, q, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("marking room[%s] available: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fault.Errorf(fault.NotFound, "room[%s] not found", id)
	}
	return nil
}
