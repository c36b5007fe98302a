package review

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/core/claims"
	"github.com/irsalhamdi/hotel-booking/core/hotel"
	"github.com/irsalhamdi/hotel-booking/validate"
)

func HandleListByHotel(reviews Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		hotelID := web.Param(r, "hotel_id")
		if err := validate.CheckID(hotelID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		list, err := reviews.ListByHotel(ctx, hotelID)
		if err != nil {
			return fmt.Errorf("listing reviews of hotel[%s]: %w", hotelID, err)
		}

		return web.Respond(ctx, w, list, http.StatusOK)
	}
}

func HandleCreate(reviews Store, hotels hotel.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		hotelID := web.Param(r, "hotel_id")
		if err := validate.CheckID(hotelID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var rn ReviewNew
		if err := web.Decode(w, r, &rn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(rn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if _, err := hotels.GetByID(ctx, hotelID); err != nil {
			return fmt.Errorf("fetching hotel[%s]: %w", hotelID, err)
		}

		now := time.Now().UTC()
		rv := Review{
			ID:        validate.GenerateID(),
			HotelID:   hotelID,
			UserID:    clm.UserID,
			Rating:    rn.Rating,
			Comment:   rn.Comment,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := reviews.Create(ctx, rv); err != nil {
			return fmt.Errorf("creating review: %w", err)
		}

		return web.Respond(ctx, w, rv, http.StatusCreated)
	}
}

func HandleDelete(reviews Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		rv, err := reviews.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching review[%s]: %w", id, err)
		}

		if rv.UserID != clm.UserID && !claims.IsAdmin(ctx) {
			return weberr.NotAuthorized(errors.New("review belongs to another user"))
		}

		if err := reviews.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting review[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
