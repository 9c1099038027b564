package event

import "errors"

var (
	// ErrEventNotFound indicates the event doesn't exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrForbidden indicates the caller may not perform the operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidInput indicates invalid event input.
	ErrInvalidInput = errors.New("invalid event input")
)
