// Package checkout turns a confirmed cart into reservations. Items are
// booked independently: one room that slipped away does not undo the stays
// that were already secured.
package checkout

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/hotel-booking/core/cart"
	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/core/payment"
	"github.com/irsalhamdi/hotel-booking/core/reservation"
	"github.com/sirupsen/logrus"
)

// Orchestrator implements cart.Confirmer.
type Orchestrator struct {
	carts    cart.Store
	items    cart.ItemStore
	methods  payment.MethodStore
	resolver *payment.Resolver
	engine   *reservation.Engine
	log      logrus.FieldLogger
}

func NewOrchestrator(carts cart.Store, items cart.ItemStore, methods payment.MethodStore, resolver *payment.Resolver, engine *reservation.Engine, log logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		carts:    carts,
		items:    items,
		methods:  methods,
		resolver: resolver,
		engine:   engine,
		log:      log,
	}
}

// ConfirmCart closes the cart against the payment method and books every
// item through the reservation engine. Bookings that fail are logged and the
// first failure is returned, but the remaining items are still attempted.
func (o *Orchestrator) ConfirmCart(ctx context.Context, cartID, paymentMethodID string) error {
	c, err := o.carts.GetByID(ctx, cartID)
	if err != nil {
		return fmt.Errorf("fetching cart[%s]: %w", cartID, err)
	}
	if c.Status == cart.Closed {
		return fault.Errorf(fault.Creation, "cart[%s] is already closed", c.ID)
	}

	m, err := o.methods.GetByID(ctx, paymentMethodID)
	if err != nil {
		return fmt.Errorf("fetching payment method[%s]: %w", paymentMethodID, err)
	}

	// Resolving the method's kind and its detail record up front rejects
	// methods whose option record is missing or whose kind nobody handles.
	svc, err := o.resolver.Resolve(m.Kind)
	if err != nil {
		return fmt.Errorf("resolving payment kind[%s]: %w", m.Kind, err)
	}
	if _, err := svc.OptionByMethod(ctx, m.ID); err != nil {
		return fmt.Errorf("fetching %s option of payment method[%s]: %w", m.Kind, m.ID, err)
	}

	items, err := o.items.ListByCart(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("listing items of cart[%s]: %w", c.ID, err)
	}
	if len(items) == 0 {
		return fault.Errorf(fault.Creation, "cart[%s] has no items", c.ID)
	}

	if err := o.carts.BindPaymentMethod(ctx, c.ID, m.ID); err != nil {
		return fmt.Errorf("binding payment method to cart[%s]: %w", c.ID, err)
	}
	if err := o.carts.SetStatus(ctx, c.ID, cart.Closed); err != nil {
		return fmt.Errorf("closing cart[%s]: %w", c.ID, err)
	}

	var firstErr error
	for _, it := range items {
		_, err := o.engine.Create(ctx, reservation.New{
			RoomID:    it.RoomID,
			UserID:    c.UserID,
			StartDate: it.StartDate,
			EndDate:   it.EndDate,
		})
		if err != nil {
			o.log.WithFields(logrus.Fields{
				"cart":  c.ID,
				"item":  it.ID,
				"room":  it.RoomID,
				"error": err,
			}).Warn("checkout: booking cart item failed")

			if firstErr == nil {
				firstErr = fmt.Errorf("booking room[%s] of cart[%s]: %w", it.RoomID, c.ID, err)
			}
		}
	}

	return firstErr
}
