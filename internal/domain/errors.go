package domain

import "errors"

var (
	// ErrUnknownField indicates a display name absent from the field catalog.
	ErrUnknownField = errors.New("unknown field")

	// ErrUpdateRejected indicates the provider received a record update and
	// refused it. Transport failures are not wrapped with this error.
	ErrUpdateRejected = errors.New("update rejected by provider")
)
