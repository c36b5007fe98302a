package reservation

import "context"

type Store interface {
	GetByID(ctx context.Context, id string) (Reservation, error)
	List(ctx context.Context) ([]Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]Reservation, error)
	Create(ctx context.Context, r Reservation) error
	Update(ctx context.Context, r Reservation) error
	Delete(ctx context.Context, id string) error
}
