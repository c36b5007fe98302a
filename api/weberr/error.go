package weberr

import (
	"net/http"

	"github.com/irsalhamdi/hotel-booking/core/fault"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

func NewError(err error, msg string, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(
		&ErrorResponse{msg},
		status,
	))

	return Wrap(e, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(
		err,
		"the resource could not be found",
		http.StatusNotFound,
		opts...,
	)
}

func NotAuthorized(err error, opts ...Opt) error {
	return NewError(
		err,
		"not authorized to access resource",
		http.StatusUnauthorized,
		opts...,
	)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(
		err,
		"the server encountered a problem and could not process your request",
		http.StatusInternalServerError,
		opts...,
	)
}

func BadRequest(err error, opts ...Opt) error {
	return NewError(
		err,
		"bad request",
		http.StatusBadRequest,
		opts...,
	)
}

// FromBusiness maps the booking core's error taxonomy onto HTTP responses.
// Errors without a business kind pass through untouched and fall back to the
// generic 500 handling in the errors middleware.
func FromBusiness(err error) error {
	switch fault.KindOf(err) {
	case fault.NotFound:
		return NewError(err, "the resource could not be found", http.StatusNotFound)
	case fault.Creation:
		return NewError(err, err.Error(), http.StatusUnprocessableEntity)
	case fault.RoomUnavailable:
		return NewError(err, "the room is not available", http.StatusConflict)
	case fault.InvalidOperation:
		return NewError(err, err.Error(), http.StatusUnprocessableEntity)
	case fault.UnsupportedPayment:
		return NewError(err, "unsupported payment type", http.StatusBadRequest)
	}
	return err
}
