package room

import "context"

// Store is the persistence boundary for rooms. MarkUnavailable is a
// conditional write: it flips the availability flag only when the flag is
// currently true and reports whether the flip happened, so a
// check-then-book race between two bookings resolves to a single winner.
type Store interface {
	GetByID(ctx context.Context, id string) (Room, error)
	ListByHotel(ctx context.Context, hotelID string) ([]Room, error)
	Create(ctx context.Context, r Room) error
	Update(ctx context.Context, r Room) error
	Delete(ctx context.Context, id string) error
	MarkUnavailable(ctx context.Context, id string) (bool, error)
	MarkAvailable(ctx context.Context, id string) error
}
