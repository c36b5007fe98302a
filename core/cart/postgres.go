package cart

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

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Cart, error) {
	const q = `SELECT * FROM carts WHERE cart_id = $1`

	var c Cart
	if err := sqlx.GetContext(ctx, s.db, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, fault.Errorf(fault.NotFound, "cart[%s] not found", id)
		}
		return Cart{}, fmt.Errorf("fetching cart[%s]: %w", id, err)
	}
	return c, nil
}

func (s *PostgresStore) GetLatestByUser(ctx context.Context, userID string) (Cart, error) {
	const q = `SELECT * FROM carts WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	var c Cart
	if err := sqlx.GetContext(ctx, s.db, &c, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, fault.Errorf(fault.NotFound, "user[%s] has no cart", userID)
		}
		return Cart{}, fmt.Errorf("fetching latest cart of user[%s]: %w", userID, err)
	}
	return c, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Cart, error) {
	const q = `SELECT * FROM carts WHERE user_id = $1 ORDER BY created_at DESC`

	carts := []Cart{}
	if err := sqlx.SelectContext(ctx, s.db, &carts, q, userID); err != nil {
		return nil, fmt.Errorf("listing carts of user[%s]: %w", userID, err)
	}
	return carts, nil
}

func (s *PostgresStore) Create(ctx context.Context, c Cart) error {
	const q = `
	INSERT INTO carts (cart_id, user_id, status, total_price, created_at, updated_at)
	VALUES (:cart_id, :user_id, :status, :total_price, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, c); err != nil {
		return fmt.Errorf("creating cart: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM carts WHERE cart_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting cart[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) AdjustTotal(ctx context.Context, id string, delta int) error {
	const q = `UPDATE carts SET total_price = total_price + $2, updated_at = $3 WHERE cart_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id, delta, time.Now().UTC()); err != nil {
		return fmt.Errorf("adjusting total of cart[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) SetStatus(ctx context.Context, id string, status Status) error {
	const q = `UPDATE carts SET status = $2, updated_at = $3 WHERE cart_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("setting status of cart[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) BindPaymentMethod(ctx context.Context, id, paymentMethodID string) error {
	const q = `UPDATE carts SET payment_method_id = $2, updated_at = $3 WHERE cart_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id, paymentMethodID, time.Now().UTC()); err != nil {
		return fmt.Errorf("binding payment method to cart[%s]: %w", id, err)
	}
	return nil
}

type PostgresItemStore struct {
	db *sqlx.DB
}

func NewPostgresItemStore(db *sqlx.DB) *PostgresItemStore { return &PostgresItemStore{db: db} }

func (s *PostgresItemStore) GetByID(ctx context.Context, id string) (Item, error) {
	const q = `SELECT * FROM cart_items WHERE cart_item_id = $1`

	var it Item
	if err := sqlx.GetContext(ctx, s.db, &it, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, fault.Errorf(fault.NotFound, "cart item[%s] not found", id)
		}
		return Item{}, fmt.Errorf("fetching cart item[%s]: %w", id, err)
	}
	return it, nil
}

func (s *PostgresItemStore) ListByCart(ctx context.Context, cartID string) ([]Item, error) {
	const q = `SELECT * FROM cart_items WHERE cart_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, s.db, &items, q, cartID); err != nil {
		return nil, fmt.Errorf("listing items of cart[%s]: %w", cartID, err)
	}
	return items, nil
}

func (s *PostgresItemStore) Create(ctx context.Context, it Item) error {
	const q = `
	INSERT INTO cart_items (cart_item_id, cart_id, room_id, start_date, end_date, price, created_at)
	VALUES (:cart_item_id, :cart_id, :room_id, :start_date, :end_date, :price, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, it); err != nil {
		return fmt.Errorf("creating cart item: %w", err)
	}
	return nil
}

func (s *PostgresItemStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM cart_items WHERE cart_item_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresItemStore) ExistsForRoom(ctx context.Context, cartID, roomID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM cart_items WHERE cart_id = $1 AND room_id = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, q, cartID, roomID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking for room[%s] in cart[%s]: %w", roomID, cartID, err)
	}
	return exists, nil
}
