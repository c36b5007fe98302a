package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/core/claims"
	"github.com/irsalhamdi/hotel-booking/validate"
)

func HandleShow(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		c, err := svc.Current(ctx, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching current cart: %w", err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleList(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		carts, err := svc.ListByUser(ctx, clm.UserID)
		if err != nil {
			return fmt.Errorf("listing carts: %w", err)
		}

		return web.Respond(ctx, w, carts, http.StatusOK)
	}
}

func HandleCreateItem(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		it, err := svc.AddItem(ctx, clm.UserID, in)
		if err != nil {
			return fmt.Errorf("adding item to cart: %w", err)
		}

		return web.Respond(ctx, w, it, http.StatusCreated)
	}
}

func HandleDeleteItem(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := svc.RemoveItem(ctx, clm.UserID, id); err != nil {
			return fmt.Errorf("removing cart item[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

type confirmRequest struct {
	PaymentMethodID string `json:"paymentMethodId" validate:"required,uuid4"`
}

func HandleConfirm(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var cr confirmRequest
		if err := web.Decode(w, r, &cr); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cr); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := svc.Confirm(ctx, clm.UserID, cr.PaymentMethodID); err != nil {
			return fmt.Errorf("confirming cart: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
