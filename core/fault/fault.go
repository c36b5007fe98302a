// Package fault carries the business error taxonomy of the booking core.
// Every rule violation raised by a core operation is one of a small set of
// kinds; callers recover the kind with KindOf and decide how to surface it.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// NotFound: a referenced room/cart/item/reservation/payment method/user
	// does not exist.
	NotFound Kind = iota + 1

	// Creation: a create or transition precondition failed, e.g. the cart is
	// already closed or the room is already in the cart.
	Creation

	// RoomUnavailable: a booking hit a room whose availability flag is false.
	RoomUnavailable

	// InvalidOperation: a date-range or timing-window rule was violated.
	InvalidOperation

	// UnsupportedPayment: the payment kind resolver was given an unregistered kind.
	UnsupportedPayment
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "entity not found"
	case Creation:
		return "entity creation"
	case RoomUnavailable:
		return "room unavailable"
	case InvalidOperation:
		return "invalid operation"
	case UnsupportedPayment:
		return "unsupported payment type"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with a business kind. The original error stays reachable
// through errors.Is/As.
func New(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a kinded error from a format string.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the business kind of err, if it carries one. The zero Kind
// means err is not a business error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
