// Package weberr decorates errors with the HTTP response and the log fields
// the errors middleware should use when one reaches it. Decorations wrap, so
// the original error stays reachable through errors.Is/As.
package weberr

// Opt adds one decoration to an error.
type Opt func(error) error

// Wrap applies the given decorations to err in order.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// WithResponse sets the body and status the middleware responds with.
func WithResponse(body interface{}, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

// WithFields attaches structured fields for the error log line.
func WithFields(fields map[string]interface{}) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}
