package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/database"
	"github.com/jmoiron/sqlx"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) GetByID(ctx context.Context, id string) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var u User
	if err := sqlx.GetContext(ctx, s.db, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fault.Errorf(fault.NotFound, "user[%s] not found", id)
		}
		return User{}, fmt.Errorf("fetching user[%s]: %w", id, err)
	}
	return u, nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (User, error) {
	const q = `SELECT * FROM users WHERE email = $1`

	var u User
	if err := sqlx.GetContext(ctx, s.db, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fault.Errorf(fault.NotFound, "user with email[%s] not found", email)
		}
		return User{}, fmt.Errorf("fetching user by email: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) Create(ctx context.Context, u User) error {
	const q = `
	INSERT INTO users (user_id, name, email, role, password_hash, created_at, updated_at)
	VALUES (:user_id, :name, :email, :role, :password_hash, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, u); err != nil {
		if database.IsUniqueViolation(err) {
			return fault.Errorf(fault.Creation, "email[%s] is already taken", u.Email)
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}
