package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/jmoiron/sqlx"
)

type PostgresMethodStore struct {
	db *sqlx.DB
}

func NewPostgresMethodStore(db *sqlx.DB) *PostgresMethodStore {
	return &PostgresMethodStore{db: db}
}

func (s *PostgresMethodStore) GetByID(ctx context.Context, id string) (Method, error) {
	const q = `SELECT * FROM payment_methods WHERE payment_method_id = $1`

	var m Method
	if err := sqlx.GetContext(ctx, s.db, &m, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Method{}, fault.Errorf(fault.NotFound, "payment method[%s] not found", id)
		}
		return Method{}, fmt.Errorf("fetching payment method[%s]: %w", id, err)
	}
	return m, nil
}

func (s *PostgresMethodStore) ListByUser(ctx context.Context, userID string) ([]Method, error) {
	const q = `SELECT * FROM payment_methods WHERE user_id = $1 ORDER BY created_at`

	methods := []Method{}
	if err := sqlx.SelectContext(ctx, s.db, &methods, q, userID); err != nil {
		return nil, fmt.Errorf("listing payment methods of user[%s]: %w", userID, err)
	}
	return methods, nil
}

func (s *PostgresMethodStore) Create(ctx context.Context, m Method) error {
	const q = `
	INSERT INTO payment_methods (payment_method_id, user_id, kind, created_at)
	VALUES (:payment_method_id, :user_id, :kind, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, m); err != nil {
		return fmt.Errorf("creating payment method: %w", err)
	}
	return nil
}

func (s *PostgresMethodStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM payment_methods WHERE payment_method_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting payment method[%s]: %w", id, err)
	}
	return nil
}

type PostgresCreditCardStore struct {
	db *sqlx.DB
}

func NewPostgresCreditCardStore(db *sqlx.DB) *PostgresCreditCardStore {
	return &PostgresCreditCardStore{db: db}
}

func (s *PostgresCreditCardStore) GetByMethod(ctx context.Context, methodID string) (CreditCard, error) {
	const q = `SELECT * FROM credit_cards WHERE payment_method_id = $1`

	var c CreditCard
	if err := sqlx.GetContext(ctx, s.db, &c, q, methodID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CreditCard{}, fault.Errorf(fault.NotFound, "credit card of method[%s] not found", methodID)
		}
		return CreditCard{}, fmt.Errorf("fetching credit card of method[%s]: %w", methodID, err)
	}
	return c, nil
}

func (s *PostgresCreditCardStore) Create(ctx context.Context, c CreditCard) error {
	const q = `
	INSERT INTO credit_cards (credit_card_id, payment_method_id, holder, number, expiry_month, expiry_year)
	VALUES (:credit_card_id, :payment_method_id, :holder, :number, :expiry_month, :expiry_year)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, c); err != nil {
		return fmt.Errorf("creating credit card: %w", err)
	}
	return nil
}

func (s *PostgresCreditCardStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM credit_cards WHERE credit_card_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting credit card[%s]: %w", id, err)
	}
	return nil
}

type PostgresPaypalStore struct {
	db *sqlx.DB
}

func NewPostgresPaypalStore(db *sqlx.DB) *PostgresPaypalStore {
	return &PostgresPaypalStore{db: db}
}

func (s *PostgresPaypalStore) GetByMethod(ctx context.Context, methodID string) (PaypalAccount, error) {
	const q = `SELECT * FROM paypal_accounts WHERE payment_method_id = $1`

	var p PaypalAccount
	if err := sqlx.GetContext(ctx, s.db, &p, q, methodID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PaypalAccount{}, fault.Errorf(fault.NotFound, "paypal account of method[%s] not found", methodID)
		}
		return PaypalAccount{}, fmt.Errorf("fetching paypal account of method[%s]: %w", methodID, err)
	}
	return p, nil
}

func (s *PostgresPaypalStore) Create(ctx context.Context, p PaypalAccount) error {
	const q = `
	INSERT INTO paypal_accounts (paypal_account_id, payment_method_id, email)
	VALUES (:paypal_account_id, :payment_method_id, :email)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, p); err != nil {
		return fmt.Errorf("creating paypal account: %w", err)
	}
	return nil
}

func (s *PostgresPaypalStore) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM paypal_accounts WHERE paypal_account_id = $1`

	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting paypal account[%s]: %w", id, err)
	}
	return nil
}

func (s *PostgresPaypalStore) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM paypal_accounts WHERE email = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking paypal email: %w", err)
	}
	return exists, nil
}
