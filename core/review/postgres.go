package review

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

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Review, error) {
	const q = `SELECT * FROM reviews WHERE review_id = $1`

	var rv Review
	if err := sqlx.GetContext(ctx, s.db, &rv, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Review{}, fault.Errorf(fault.NotFound, "review[%s] not found", id)
		}
		return Review{}, fmt.Errorf("fetching review[%s]: %w", id, err)
	}
	return rv, nil
}

func (s *PostgresStore) ListByHotel(ctx context.Context, hotelID string) ([]Review, error) {
	const q = `SELECT * FROM reviews WHERE hotel_id = $1 ORDER BY created_at DESC`

	reviews := []Review{}
	if err := sqlx.SelectContext(ctx, s.db, &reviews, q, hotelID); err != nil {
		return nil, fmt.Errorf("listing reviews of hotel[%s]: %w", hotelID, err)
	}
	return reviews, nil
}

func (s *PostgresStore) Create(ctx context.Context, rv Review) error {
	const q = `
	INSERT INTO reviews (review_id, hotel_id, user_id, rating, comment, created_at, updated_at)
	VALUES (:review_id, :hotel_id, :user_id, :rating, :comment, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, rv); err != nil {
		return fmt.Errorf("creating review: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reviews WHERE review_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting review[%s]: %w", id, err)
	}
	return nil
}
