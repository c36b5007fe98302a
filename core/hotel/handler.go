package hotel

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/cache"
	"github.com/irsalhamdi/hotel-booking/validate"
	"github.com/sirupsen/logrus"
)

func listCacheKey(cityID string) string { return "hotels:city:" + cityID }

func HandleListByCity(hotels Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cityID := web.Param(r, "city_id")
		if err := validate.CheckID(cityID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		key := listCacheKey(cityID)

		var cached []Hotel
		if hit, err := cc.Get(ctx, key, &cached); err != nil {
			log.WithField("message", err).Warn("hotel list cache read failed")
		} else if hit {
			return web.Respond(ctx, w, cached, http.StatusOK)
		}

		list, err := hotels.ListByCity(ctx, cityID)
		if err != nil {
			return fmt.Errorf("listing hotels of city[%s]: %w", cityID, err)
		}

		if err := cc.Set(ctx, key, list); err != nil {
			log.WithField("message", err).Warn("hotel list cache write failed")
		}

		return web.Respond(ctx, w, list, http.StatusOK)
	}
}

func HandleShow(hotels Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		h, err := hotels.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching hotel[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, h, http.StatusOK)
	}
}

func HandleCreate(hotels Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var hn HotelNew
		if err := web.Decode(w, r, &hn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(hn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		h := Hotel{
			ID:        validate.GenerateID(),
			CityID:    hn.CityID,
			Name:      hn.Name,
			Address:   hn.Address,
			Stars:     hn.Stars,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := hotels.Create(ctx, h); err != nil {
			return fmt.Errorf("creating hotel: %w", err)
		}

		if err := cc.Drop(ctx, listCacheKey(h.CityID)); err != nil {
			log.WithField("message", err).Warn("hotel list cache drop failed")
		}

		return web.Respond(ctx, w, h, http.StatusCreated)
	}
}

func HandleUpdate(hotels Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var hu HotelUp
		if err := web.Decode(w, r, &hu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(hu); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		h, err := hotels.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching hotel[%s]: %w", id, err)
		}

		if hu.Name != nil {
			h.Name = *hu.Name
		}
		if hu.Address != nil {
			h.Address = *hu.Address
		}
		if hu.Stars != nil {
			h.Stars = *hu.Stars
		}
		h.UpdatedAt = time.Now().UTC()

		if err := hotels.Update(ctx, h); err != nil {
			return fmt.Errorf("updating hotel[%s]: %w", id, err)
		}

		if err := cc.Drop(ctx, listCacheKey(h.CityID)); err != nil {
			log.WithField("message", err).Warn("hotel list cache drop failed")
		}

		return web.Respond(ctx, w, h, http.StatusOK)
	}
}

func HandleDelete(hotels Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		h, err := hotels.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching hotel[%s]: %w", id, err)
		}

		if err := hotels.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting hotel[%s]: %w", id, err)
		}

		if err := cc.Drop(ctx, listCacheKey(h.CityID)); err != nil {
			log.WithField("message", err).Warn("hotel list cache drop failed")
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
