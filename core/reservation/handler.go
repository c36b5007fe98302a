package reservation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/core/claims"
	"github.com/irsalhamdi/hotel-booking/core/fault"
	"github.com/irsalhamdi/hotel-booking/validate"
)

// view decorates a reservation with its clock-derived state.
type view struct {
	Reservation
	State string `json:"state"`
}

func viewOf(r Reservation, now time.Time) view {
	return view{Reservation: r, State: r.StateAt(now).String()}
}

func HandleShow(eng *Engine) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		res, err := eng.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching reservation[%s]: %w", id, err)
		}

		if res.UserID != clm.UserID && !claims.IsAdmin(ctx) {
			return fault.Errorf(fault.NotFound, "reservation[%s] not found for user[%s]", id, clm.UserID)
		}

		return web.Respond(ctx, w, viewOf(res, eng.now().UTC()), http.StatusOK)
	}
}

func HandleList(eng *Engine) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		list, err := eng.ListByUser(ctx, clm.UserID)
		if err != nil {
			return fmt.Errorf("listing reservations: %w", err)
		}

		now := eng.now().UTC()
		views := make([]view, 0, len(list))
		for _, res := range list {
			views = append(views, viewOf(res, now))
		}

		return web.Respond(ctx, w, views, http.StatusOK)
	}
}

// HandleListAll is the admin view over every reservation.
func HandleListAll(eng *Engine) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		list, err := eng.List(ctx)
		if err != nil {
			return fmt.Errorf("listing reservations: %w", err)
		}

		now := eng.now().UTC()
		views := make([]view, 0, len(list))
		for _, res := range list {
			views = append(views, viewOf(res, now))
		}

		return web.Respond(ctx, w, views, http.StatusOK)
	}
}

func HandleCreate(eng *Engine) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var n New
		if err := web.Decode(w, r, &n); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}
		n.UserID = clm.UserID

		if err := validate.Check(n); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		res, err := eng.Create(ctx, n)
		if err != nil {
			return fmt.Errorf("creating reservation: %w", err)
		}

		return web.Respond(ctx, w, viewOf(res, eng.now().UTC()), http.StatusCreated)
	}
}

func HandleUpdate(eng *Engine) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var up Up
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		res, err := eng.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching reservation[%s]: %w", id, err)
		}
		if res.UserID != clm.UserID && !claims.IsAdmin(ctx) {
			return fault.Errorf(fault.NotFound, "reservation[%s] not found for user[%s]", id, clm.UserID)
		}

		res, err = eng.Update(ctx, id, up)
		if err != nil {
			return fmt.Errorf("updating reservation[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, viewOf(res, eng.now().UTC()), http.StatusOK)
	}
}

func HandleDelete(eng *Engine) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		res, err := eng.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching reservation[%s]: %w", id, err)
		}
		if res.UserID != clm.UserID && !claims.IsAdmin(ctx) {
			return fault.Errorf(fault.NotFound, "reservation[%s] not found for user[%s]", id, clm.UserID)
		}

		if err := eng.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting reservation[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
