package announcement

import "errors"

var (
	// ErrNotFound indicates the announcement doesn't exist.
	ErrNotFound = errors.New("announcement not found")
	// ErrForbidden indicates the caller may not perform the operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidInput indicates invalid announcement input.
	ErrInvalidInput = errors.New("invalid announcement input")
)
