package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/core/user"
	"github.com/irsalhamdi/hotel-booking/validate"
)

// Service manages payment methods and answers the aggregate option reads.
type Service struct {
	methods  MethodStore
	users    user.Store
	resolver *Resolver
	cards    *CreditCardService
	paypal   *PaypalService
}

func NewService(methods MethodStore, users user.Store, cards *CreditCardService, paypal *PaypalService) *Service {
	return &Service{
		methods:  methods,
		users:    users,
		resolver: NewResolver(cards, paypal),
		cards:    cards,
		paypal:   paypal,
	}
}

func (s *Service) Resolver() *Resolver { return s.resolver }

// Create registers a payment method together with its single kind-specific
// option record.
func (s *Service) Create(ctx context.Context, userID string, n MethodNew) (Method, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return Method{}, fmt.Errorf("fetching user[%s]: %w", userID, err)
	}

	m := Method{
		ID:        validate.GenerateID(),
		UserID:    userID,
		Kind:      n.Kind,
		CreatedAt: time.Now().UTC(),
	}

	switch n.Kind {
	case KindCreditCard:
		if n.CreditCard == nil {
			return Method{}, fault.Errorf(fault.Creation, "credit card details are required for kind[%s]", n.Kind)
		}
	case KindPaypal:
		if n.Paypal == nil {
			return Method{}, fault.Errorf(fault.Creation, "paypal details are required for kind[%s]", n.Kind)
		}
	default:
		return Method{}, fault.Errorf(fault.UnsupportedPayment, "unknown payment kind[%s]", n.Kind)
	}

	if err := s.methods.Create(ctx, m); err != nil {
		return Method{}, fmt.Errorf("creating payment method: %w", err)
	}

	var err error
	switch n.Kind {
	case KindCreditCard:
		_, err = s.cards.Create(ctx, m.ID, *n.CreditCard)
	case KindPaypal:
		_, err = s.paypal.Create(ctx, m.ID, *n.Paypal)
	}
	if err != nil {
		// The method handle is useless without its option record.
		if derr := s.methods.Delete(ctx, m.ID); derr != nil {
			return Method{}, fmt.Errorf("removing orphan method[%s]: %v (original error: %w)", m.ID, derr, err)
		}
		return Method{}, err
	}

	return m, nil
}

// Delete removes a method owned by userID; the option record goes with it.
func (s *Service) Delete(ctx context.Context, userID, methodID string) error {
	m, err := s.methods.GetByID(ctx, methodID)
	if err != nil {
		return fmt.Errorf("fetching payment method[%s]: %w", methodID, err)
	}

	if m.UserID != userID {
		return fault.Errorf(fault.NotFound, "payment method[%s] not found for user[%s]", methodID, userID)
	}

	if err := s.methods.Delete(ctx, methodID); err != nil {
		return fmt.Errorf("deleting payment method[%s]: %w", methodID, err)
	}
	return nil
}

// OptionByMethod materializes the concrete detail record behind a generic
// payment method id, whatever its kind.
func (s *Service) OptionByMethod(ctx context.Context, methodID string) (Option, error) {
	m, err := s.methods.GetByID(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("fetching payment method[%s]: %w", methodID, err)
	}

	svc, err := s.resolver.Resolve(m.Kind)
	if err != nil {
		return nil, err
	}

	return svc.OptionByMethod(ctx, m.ID)
}

// OptionsByUser lists every concrete payment option the user registered, as a
// uniform list regardless of kind.
func (s *Service) OptionsByUser(ctx context.Context, userID string) ([]Option, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("fetching user[%s]: %w", userID, err)
	}

	methods, err := s.methods.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods of user[%s]: %w", userID, err)
	}

	options := make([]Option, 0, len(methods))
	for _, m := range methods {
		svc, err := s.resolver.Resolve(m.Kind)
		if err != nil {
			return nil, err
		}

		opt, err := svc.OptionByMethod(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}

	return options, nil
}
