package review

import "context"

type Store interface {
	GetByID(ctx context.Context, id string) (Review, error)
	ListByHotel(ctx context.Context, hotelID string) ([]Review, error)
	Create(ctx context.Context, rv Review) error
	Delete(ctx context.Context, id string) error
}
