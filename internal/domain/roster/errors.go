package roster

import "errors"

var (
	// ErrMemberNotFound indicates the member doesn't exist.
	ErrMemberNotFound = errors.New("member not found")
	// ErrNotPending indicates an approval decision on a member that is not pending.
	ErrNotPending = errors.New("member is not pending approval")
	// ErrForbidden indicates the caller may not perform the operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidInput indicates invalid roster input.
	ErrInvalidInput = errors.New("invalid roster input")
	// ErrDuplicateMember indicates the member id is already on the roster.
	ErrDuplicateMember = errors.New("member already on roster")
)
