package payment

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

func HandleCreate(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var mn MethodNew
		if err := web.Decode(w, r, &mn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(mn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}
		if mn.CreditCard != nil {
			if err := validate.Check(*mn.CreditCard); err != nil {
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
		}
		if mn.Paypal != nil {
			if err := validate.Check(*mn.Paypal); err != nil {
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
		}

		m, err := svc.Create(ctx, clm.UserID, mn)
		if err != nil {
			return fmt.Errorf("creating payment method: %w", err)
		}

		return web.Respond(ctx, w, m, http.StatusCreated)
	}
}

// HandleListOptions returns the caller's payment options as concrete detail
// records, whatever their kind.
func HandleListOptions(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		options, err := svc.OptionsByUser(ctx, clm.UserID)
		if err != nil {
			return fmt.Errorf("listing payment options: %w", err)
		}

		return web.Respond(ctx, w, options, http.StatusOK)
	}
}

func HandleDelete(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := svc.Delete(ctx, clm.UserID, id); err != nil {
			return fmt.Errorf("deleting payment method[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
