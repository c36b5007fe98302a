package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/config"
	"github.com/irsalhamdi/hotel-booking/core/cart"
	"github.com/irsalhamdi/hotel-booking/core/claims"
	"github.com/irsalhamdi/hotel-booking/core/room"
	"github.com/irsalhamdi/hotel-booking/validate"
	"github.com/plutov/paypal/v4"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
)

type checkoutRequest struct {
	PaymentMethodID string `json:"paymentMethodId" validate:"required,uuid4"`
}

// HandlePaypalCheckout opens a paypal order mirroring the user's current
// cart. The caller captures it afterwards through HandlePaypalCapture.
func HandlePaypalCheckout(carts *cart.Service, rooms room.Store, pp *paypal.Client) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		c, err := carts.Current(ctx, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching current cart: %w", err)
		}

		if len(c.Items) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		items := make([]paypal.Item, 0, len(c.Items))
		for _, it := range c.Items {
			rm, err := rooms.GetByID(ctx, it.RoomID)
			if err != nil {
				return fmt.Errorf("fetching room[%s]: %w", it.RoomID, err)
			}

			items = append(items, paypal.Item{
				Quantity: "1",
				Name:     rm.Name,

				UnitAmount: &paypal.Money{
					Currency: "USD",
					Value:    strconv.Itoa(it.Price),
				},
			})
		}

		units := []paypal.PurchaseUnitRequest{{
			Items: items,

			Amount: &paypal.PurchaseUnitAmount{
				Currency: "USD",
				Value:    strconv.Itoa(c.TotalPrice),

				Breakdown: &paypal.PurchaseUnitAmountBreakdown{ItemTotal: &paypal.Money{
					Currency: "USD",
					Value:    strconv.Itoa(c.TotalPrice),
				}},
			},
		}}

		ord, err := pp.CreateOrder(ctx, "CAPTURE", units, nil, &paypal.ApplicationContext{})
		if err != nil {
			return fmt.Errorf("creating paypal order: %w", err)
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

// HandlePaypalCapture captures a paid paypal order and confirms the cart
// with the payment method named in the body.
func HandlePaypalCapture(carts *cart.Service, pp *paypal.Client) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		providerID := web.Param(r, "id")

		var cr checkoutRequest
		if err := web.Decode(w, r, &cr); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}
		if err := validate.Check(cr); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		resp, err := pp.CaptureOrder(ctx, providerID, paypal.CaptureOrderRequest{})
		if err != nil {
			return fmt.Errorf("capturing paypal order[%s]: %w", providerID, err)
		}

		if resp.Status != "COMPLETED" {
			return fmt.Errorf("captured order[%s] with status[%s] different from 'COMPLETED'", providerID, resp.Status)
		}

		if err := carts.Confirm(ctx, clm.UserID, cr.PaymentMethodID); err != nil {
			return fmt.Errorf("the order was payed but its booking failed: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleStripeCheckout opens a stripe checkout session for the user's
// current cart. The user and payment method ride along on the session so the
// webhook can confirm the right cart.
func HandleStripeCheckout(carts *cart.Service, rooms room.Store, strp *stripecl.API, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var cr checkoutRequest
		if err := web.Decode(w, r, &cr); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}
		if err := validate.Check(cr); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c, err := carts.Current(ctx, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching current cart: %w", err)
		}

		if len(c.Items) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		li := make([]*stripe.CheckoutSessionLineItemParams, 0, len(c.Items))
		for _, it := range c.Items {
			rm, err := rooms.GetByID(ctx, it.RoomID)
			if err != nil {
				return fmt.Errorf("fetching room[%s]: %w", it.RoomID, err)
			}

			li = append(li, &stripe.CheckoutSessionLineItemParams{
				Quantity: stripe.Int64(1),

				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String("usd"),
					TaxBehavior: stripe.String("inclusive"),
					UnitAmount:  stripe.Int64(int64(it.Price) * 100),

					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(rm.Name),
					},
				},
			})
		}

		params := &stripe.CheckoutSessionParams{
			SuccessURL:        stripe.String(cfg.SuccessURL),
			CancelURL:         stripe.String(cfg.CancelURL),
			Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
			LineItems:         li,
			ClientReferenceID: stripe.String(clm.UserID),
		}
		params.AddMetadata("payment_method_id", cr.PaymentMethodID)

		s, err := strp.CheckoutSessions.New(params)
		if err != nil {
			return fmt.Errorf("creating stripe session: %w", err)
		}

		return web.Respond(ctx, w, s.URL, http.StatusOK)
	}
}

// HandleStripeCapture is the stripe webhook. A completed checkout session
// confirms the cart of the user the session was opened for.
func HandleStripeCapture(carts *cart.Service, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot read the request body: %w", err))
		}

		sig := r.Header.Get("Stripe-Signature")
		if sig == "" {
			return weberr.BadRequest(errors.New("received stripe event is not signed"))
		}

		event, err := webhook.ConstructEvent(b, sig, cfg.WebhookSecret)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot construct stripe event: %w", err))
		}

		if event.Type != "checkout.session.completed" {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		var session stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode stripe event: %w", err))
		}

		if session.Mode != stripe.CheckoutSessionModePayment {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		userID := session.ClientReferenceID
		methodID := session.Metadata["payment_method_id"]
		if userID == "" || methodID == "" {
			return weberr.BadRequest(errors.New("stripe session is missing booking references"))
		}

		if err := carts.Confirm(ctx, userID, methodID); err != nil {
			return fmt.Errorf("the order was payed but its booking failed: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
