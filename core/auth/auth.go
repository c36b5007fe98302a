// Package auth is the session surface of the service: signup/login handlers
// and the middlewares that load the session and resolve the caller into
// claims. The booking core itself never touches sessions; it always receives
// the user id explicitly.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/irsalhamdi/hotel-booking/core/claims"
)

const (
	sessionUserID = "user_id"
	sessionRole   = "role"
)

// LoadAndSave adapts the scs middleware to the web.Handler chain.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			sh := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))
			sh.ServeHTTP(w, r)

			return err
		}
		return h
	}
	return m
}

// Authenticate rejects requests without a logged-in session and stores the
// caller's claims in the context.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := session.GetString(ctx, sessionUserID)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			c := claims.Claims{
				UserID: userID,
				Role:   session.GetString(ctx, sessionRole),
			}

			return handler(claims.Set(ctx, c), w, r)
		}
		return h
	}
	return m
}

// Admin allows only authenticated admins through.
func Admin(session *scs.SessionManager) web.Middleware {
	authen := Authenticate(session)
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !claims.IsAdmin(ctx) {
				err := errors.New("user is not an administrator")
				return weberr.NewError(err, "access restricted", http.StatusForbidden)
			}
			return handler(ctx, w, r)
		}
		return authen(h)
	}
	return m
}
