package payment

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/hotel-booking/validate"
)

// CreditCardService owns the credit card option records.
type CreditCardService struct {
	cards CreditCardStore
}

func NewCreditCardService(cards CreditCardStore) *CreditCardService {
	return &CreditCardService{cards: cards}
}

func (s *CreditCardService) Kind() Kind { return KindCreditCard }

func (s *CreditCardService) OptionByMethod(ctx context.Context, methodID string) (Option, error) {
	c, err := s.cards.GetByMethod(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("fetching credit card of method[%s]: %w", methodID, err)
	}
	return c, nil
}

func (s *CreditCardService) Create(ctx context.Context, methodID string, n CreditCardNew) (CreditCard, error) {
	c := CreditCard{
		ID:              validate.GenerateID(),
		PaymentMethodID: methodID,
		Holder:          n.Holder,
		Number:          n.Number,
		ExpiryMonth:     n.ExpiryMonth,
		ExpiryYear:      n.ExpiryYear,
	}

	if err := s.cards.Create(ctx, c); err != nil {
		return CreditCard{}, fmt.Errorf("creating credit card: %w", err)
	}
	return c, nil
}
