package payment

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/validate"
)

// PaypalService owns the paypal account option records.
type PaypalService struct {
	accounts PaypalStore
}

func NewPaypalService(accounts PaypalStore) *PaypalService {
	return &PaypalService{accounts: accounts}
}

func (s *PaypalService) Kind() Kind { return KindPaypal }

func (s *PaypalService) OptionByMethod(ctx context.Context, methodID string) (Option, error) {
	p, err := s.accounts.GetByMethod(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("fetching paypal account of method[%s]: %w", methodID, err)
	}
	return p, nil
}

func (s *PaypalService) Create(ctx context.Context, methodID string, n PaypalNew) (PaypalAccount, error) {
	exists, err := s.accounts.EmailExists(ctx, n.Email)
	if err != nil {
		return PaypalAccount{}, fmt.Errorf("checking paypal email: %w", err)
	}
	if exists {
		return PaypalAccount{}, fault.Errorf(fault.Creation, "paypal email[%s] is already registered", n.Email)
	}

	p := PaypalAccount{
		ID:              validate.GenerateID(),
		PaymentMethodID: methodID,
		Email:           n.Email,
	}

	if err := s.accounts.Create(ctx, p); err != nil {
		return PaypalAccount{}, fmt.Errorf("creating paypal account: %w", err)
	}
	return p, nil
}
