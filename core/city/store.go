package city

import "context"

// Store is the persistence boundary for cities. The visit counters are
// adjusted only by the reservation engine.
type Store interface {
	GetByID(ctx context.Context, id string) (City, error)
	List(ctx context.Context) ([]City, error)
	Create(ctx context.Context, c City) error
	Update(ctx context.Context, c City) error
	Delete(ctx context.Context, id string) error
	IncrementVisits(ctx context.Context, id string) error
	DecrementVisits(ctx context.Context, id string) error
}
