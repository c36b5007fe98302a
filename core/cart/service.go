package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/core/payment"
	"github.com/irsalhamdi/hotel-booking/core/pricing"
	"github.com/irsalhamdi/hotel-booking/core/room"
	"github.com/irsalhamdi/hotel-booking/validate"
)

// Service runs the cart lifecycle. The cart total always equals the sum of
// its items' prices; every mutation below keeps that in step.
type Service struct {
	carts   Store
	items   ItemStore
	rooms   room.Store
	methods payment.MethodStore
	confirm Confirmer
	now     clock
}

func NewService(carts Store, items ItemStore, rooms room.Store, methods payment.MethodStore, confirm Confirmer) *Service {
	return &Service{
		carts:   carts,
		items:   items,
		rooms:   rooms,
		methods: methods,
		confirm: confirm,
		now:     time.Now,
	}
}

// AddItem puts a room stay into the user's open cart, creating the cart if
// the user has none.
func (s *Service) AddItem(ctx context.Context, userID string, n ItemNew) (Item, error) {
	rm, err := s.rooms.GetByID(ctx, n.RoomID)
	if err != nil {
		return Item{}, fmt.Errorf("fetching room[%s]: %w", n.RoomID, err)
	}

	if !n.StartDate.Before(n.EndDate) {
		return Item{}, fault.Errorf(fault.InvalidOperation, "start date must come before end date")
	}

	now := s.now().UTC()

	c, err := s.carts.GetLatestByUser(ctx, userID)
	switch {
	case fault.IsKind(err, fault.NotFound):
		c = Cart{
			ID:        validate.GenerateID(),
			UserID:    userID,
			Status:    Open,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.carts.Create(ctx, c); err != nil {
			return Item{}, fmt.Errorf("creating cart: %w", err)
		}
	case err != nil:
		return Item{}, fmt.Errorf("fetching cart of user[%s]: %w", userID, err)
	case c.Status == Closed:
		return Item{}, fault.Errorf(fault.Creation, "cart[%s] is closed", c.ID)
	}

	exists, err := s.items.ExistsForRoom(ctx, c.ID, rm.ID)
	if err != nil {
		return Item{}, fmt.Errorf("checking for room[%s] in cart[%s]: %w", rm.ID, c.ID, err)
	}
	if exists {
		return Item{}, fault.Errorf(fault.Creation, "room[%s] is already in the cart", rm.ID)
	}

	if !rm.Available {
		return Item{}, fault.Errorf(fault.RoomUnavailable, "room[%s] is not available", rm.ID)
	}

	it := Item{
		ID:        validate.GenerateID(),
		CartID:    c.ID,
		RoomID:    rm.ID,
		StartDate: n.StartDate,
		EndDate:   n.EndDate,
		Price:     pricing.Total(rm.PricePerNight, n.StartDate, n.EndDate),
		CreatedAt: now,
	}

	if err := s.items.Create(ctx, it); err != nil {
		return Item{}, fault.New(fault.Creation, fmt.Errorf("creating cart item: %w", err))
	}

	if err := s.carts.AdjustTotal(ctx, c.ID, it.Price); err != nil {
		return Item{}, fmt.Errorf("adjusting total of cart[%s]: %w", c.ID, err)
	}

	return it, nil
}

// RemoveItem takes an item out of the user's cart; the cart itself is
// deleted once its last item is gone.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("fetching cart item[%s]: %w", itemID, err)
	}

	c, err := s.carts.GetByID(ctx, it.CartID)
	if err != nil {
		return fmt.Errorf("fetching cart[%s]: %w", it.CartID, err)
	}

	if c.UserID != userID {
		return fault.Errorf(fault.NotFound, "cart item[%s] not found for user[%s]", itemID, userID)
	}

	if c.Status == Closed {
		return fault.Errorf(fault.Creation, "cart[%s] is closed", c.ID)
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", itemID, err)
	}

	if err := s.carts.AdjustTotal(ctx, c.ID, -it.Price); err != nil {
		return fmt.Errorf("adjusting total of cart[%s]: %w", c.ID, err)
	}

	remaining, err := s.items.ListByCart(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("listing items of cart[%s]: %w", c.ID, err)
	}
	if len(remaining) == 0 {
		if err := s.carts.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("deleting empty cart[%s]: %w", c.ID, err)
		}
	}

	return nil
}

// Get returns a cart with its items populated.
func (s *Service) Get(ctx context.Context, cartID string) (Cart, error) {
	c, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return Cart{}, fmt.Errorf("fetching cart[%s]: %w", cartID, err)
	}

	items, err := s.items.ListByCart(ctx, c.ID)
	if err != nil {
		return Cart{}, fmt.Errorf("listing items of cart[%s]: %w", c.ID, err)
	}
	c.Items = items

	return c, nil
}

// Current returns the user's most recent cart with items.
func (s *Service) Current(ctx context.Context, userID string) (Cart, error) {
	c, err := s.carts.GetLatestByUser(ctx, userID)
	if err != nil {
		return Cart{}, fmt.Errorf("fetching cart of user[%s]: %w", userID, err)
	}
	return s.Get(ctx, c.ID)
}

// ListByUser returns every cart of the user, items included.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Cart, error) {
	carts, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing carts of user[%s]: %w", userID, err)
	}

	for i := range carts {
		items, err := s.items.ListByCart(ctx, carts[i].ID)
		if err != nil {
			return nil, fmt.Errorf("listing items of cart[%s]: %w", carts[i].ID, err)
		}
		carts[i].Items = items
	}

	return carts, nil
}

// Confirm checks that the payment method belongs to the user and hands the
// user's open cart to the checkout orchestrator.
func (s *Service) Confirm(ctx context.Context, userID, paymentMethodID string) error {
	m, err := s.methods.GetByID(ctx, paymentMethodID)
	if err != nil {
		return fmt.Errorf("fetching payment method[%s]: %w", paymentMethodID, err)
	}
	if m.UserID != userID {
		return fault.Errorf(fault.NotFound, "payment method[%s] not found for user[%s]", paymentMethodID, userID)
	}

	c, err := s.carts.GetLatestByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetching cart of user[%s]: %w", userID, err)
	}
	if c.Status == Closed {
		return fault.Errorf(fault.Creation, "cart[%s] is closed", c.ID)
	}

	return s.confirm.ConfirmCart(ctx, c.ID, paymentMethodID)
}
