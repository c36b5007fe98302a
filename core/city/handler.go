package city

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

const listCacheKey = "cities:list"

func HandleList(cities Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cached []City
		if hit, err := cc.Get(ctx, listCacheKey, &cached); err != nil {
			log.WithField("message", err).Warn("city list cache read failed")
		} else if hit {
			return web.Respond(ctx, w, cached, http.StatusOK)
		}

		list, err := cities.List(ctx)
		if err != nil {
			return fmt.Errorf("listing cities: %w", err)
		}

		if err := cc.Set(ctx, listCacheKey, list); err != nil {
			log.WithField("message", err).Warn("city list cache write failed")
		}

		return web.Respond(ctx, w, list, http.StatusOK)
	}
}

func HandleShow(cities Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c, err := cities.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching city[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleCreate(cities Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cn CityNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		c := City{
			ID:        validate.GenerateID(),
			Name:      cn.Name,
			Country:   cn.Country,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := cities.Create(ctx, c); err != nil {
			return fmt.Errorf("creating city: %w", err)
		}

		if err := cc.Drop(ctx, listCacheKey); err != nil {
			log.WithField("message", err).Warn("city list cache drop failed")
		}

		return web.Respond(ctx, w, c, http.StatusCreated)
	}
}

func HandleUpdate(cities Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var cu CityUp
		if err := web.Decode(w, r, &cu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cu); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c, err := cities.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching city[%s]: %w", id, err)
		}

		if cu.Name != nil {
			c.Name = *cu.Name
		}
		if cu.Country != nil {
			c.Country = *cu.Country
		}
		c.UpdatedAt = time.Now().UTC()

		if err := cities.Update(ctx, c); err != nil {
			return fmt.Errorf("updating city[%s]: %w", id, err)
		}

		if err := cc.Drop(ctx, listCacheKey); err != nil {
			log.WithField("message", err).Warn("city list cache drop failed")
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleDelete(cities Store, cc *cache.Cache, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := cities.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting city[%s]: %w", id, err)
		}

		if err := cc.Drop(ctx, listCacheKey); err != nil {
			log.WithField("message", err).Warn("city list cache drop failed")
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
