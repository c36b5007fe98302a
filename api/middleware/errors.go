package middleware

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/api/weberr"
	"github.com/sirupsen/logrus"
)

// Errors logs every failed request and turns the error into its JSON
// response. Business errors coming out of the core are mapped to their HTTP
// status first; anything without a response shape becomes a plain 500.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			err = weberr.FromBusiness(err)

			fields := map[string]interface{}{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if f, ok := weberr.Fields(err); ok {
				for k, v := range f {
					fields[k] = v
				}
			}

			log.WithFields(logrus.Fields(fields)).Error("ERROR")

			if body, code, ok := weberr.Response(err); ok {
				return web.Respond(ctx, w, body, code)
			}

			er := weberr.ErrorResponse{
				Error: http.StatusText(http.StatusInternalServerError),
			}
			return web.Respond(ctx, w, er, http.StatusInternalServerError)
		}
		return h
	}
	return m
}
