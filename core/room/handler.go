package room

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/validate"
)

func HandleListByHotel(rooms Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		hotelID := web.Param(r, "hotel_id")
		if err := validate.CheckID(hotelID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		list, err := rooms.ListByHotel(ctx, hotelID)
		if err != nil {
			return fmt.Errorf("listing rooms of hotel[%s]: %w", hotelID, err)
		}

		return web.Respond(ctx, w, list, http.StatusOK)
	}
}

func HandleShow(rooms Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		rm, err := rooms.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching room[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, rm, http.StatusOK)
	}
}

func HandleCreate(rooms Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var rn RoomNew
		if err := web.Decode(w, r, &rn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(rn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		rm := Room{
			ID:            validate.GenerateID(),
			HotelID:       rn.HotelID,
			Name:          rn.Name,
			PricePerNight: rn.PricePerNight,
			Available:     true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := rooms.Create(ctx, rm); err != nil {
			return fmt.Errorf("creating room: %w", err)
		}

		return web.Respond(ctx, w, rm, http.StatusCreated)
	}
}

func HandleUpdate(rooms Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var ru RoomUp
		if err := web.Decode(w, r, &ru); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ru); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		rm, err := rooms.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching room[%s]: %w", id, err)
		}

		if ru.Name != nil {
			rm.Name = *ru.Name
		}
		if ru.PricePerNight != nil {
			rm.PricePerNight = *ru.PricePerNight
		}
		rm.UpdatedAt = time.Now().UTC()

		if err := rooms.Update(ctx, rm); err != nil {
			return fmt.Errorf("updating room[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, rm, http.StatusOK)
	}
}

func HandleDelete(rooms Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := rooms.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting room[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
