package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/core/claims"
	"github.com/irsalhamdi/hotel-booking/rate"
)

// Ratelimit throttles by user id when the caller is authenticated and by
// remote address otherwise.
func Ratelimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			id := ""
			if clm, err := claims.Get(ctx); err == nil {
				id = clm.UserID
			} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				id = host
			} else {
				id = r.RemoteAddr
			}

			if !lim.Allow(id) {
				err := errors.New("request rate limit exceeded")
				return weberr.NewError(err, err.Error(), http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
