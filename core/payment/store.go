package payment

import "context"

type MethodStore interface {
	GetByID(ctx context.Context, id string) (Method, error)
	ListByUser(ctx context.Context, userID string) ([]Method, error)
	Create(ctx context.Context, m Method) error
	Delete(ctx context.Context, id string) error
}

type CreditCardStore interface {
	GetByMethod(ctx context.Context, methodID string) (CreditCard, error)
	Create(ctx context.Context, c CreditCard) error
	Delete(ctx context.Context, id string) error
}

type PaypalStore interface {
	GetByMethod(ctx context.Context, methodID string) (PaypalAccount, error)
	Create(ctx context.Context, p PaypalAccount) error
	Delete(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}
