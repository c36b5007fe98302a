package cart

import (
	"context"
	"time"
)

// Store is the persistence boundary for carts. GetLatestByUser returns the
// user's most recent cart regardless of status so the service can tell
// "no cart" apart from "cart already closed".
type Store interface {
	GetByID(ctx context.Context, id string) (Cart, error)
	GetLatestByUser(ctx context.Context, userID string) (Cart, error)
	ListByUser(ctx context.Context, userID string) ([]Cart, error)
	Create(ctx context.Context, c Cart) error
	Delete(ctx context.Context, id string) error
	AdjustTotal(ctx context.Context, id string, delta int) error
	SetStatus(ctx context.Context, id string, status Status) error
	BindPaymentMethod(ctx context.Context, id, paymentMethodID string) error
}

type ItemStore interface {
	GetByID(ctx context.Context, id string) (Item, error)
	ListByCart(ctx context.Context, cartID string) ([]Item, error)
	Create(ctx context.Context, it Item) error
	Delete(ctx context.Context, id string) error
	ExistsForRoom(ctx context.Context, cartID, roomID string) (bool, error)
}

// Confirmer converts a cart into reservations; the checkout orchestrator
// implements it.
type Confirmer interface {
	ConfirmCart(ctx context.Context, cartID, paymentMethodID string) error
}

// clock is overridable in tests.
type clock func() time.Time
