package hotel

import "context"

// Store is the persistence boundary for hotels. The visit counters are
// adjusted only by the reservation engine.
type Store interface {
	GetByID(ctx context.Context, id string) (Hotel, error)
	ListByCity(ctx context.Context, cityID string) ([]Hotel, error)
	Create(ctx context.Context, h Hotel) error
	Update(ctx context.Context, h Hotel) error
	Delete(ctx context.Context, id string) error
	IncrementVisits(ctx context.Context, id string) error
	DecrementVisits(ctx context.Context, id string) error
}
