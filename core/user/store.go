package user

import "context"

// Store is the persistence boundary for users. Implementations return
// fault.NotFound for lookups that match nothing.
type Store interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) error
}
