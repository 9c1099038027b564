package party

import "errors"

var (
	// ErrPartyNotFound indicates the party doesn't exist.
	ErrPartyNotFound = errors.New("party not found")
	// ErrSlotNotFound indicates the slot doesn't exist within the party.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrEventNotFound indicates the parent event doesn't exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrPartyClosed indicates every slot is occupied.
	ErrPartyClosed = errors.New("party closed")
	// ErrAlreadyMember indicates the caller already occupies a slot in the party.
	ErrAlreadyMember = errors.New("already a member")
	// ErrSlotFilled indicates the slot is occupied.
	ErrSlotFilled = errors.New("slot already filled")
	// ErrNotMember indicates the caller occupies no slot in the party.
	ErrNotMember = errors.New("not a member")
	// ErrClassRequired indicates a free slot was claimed without a class choice.
	ErrClassRequired = errors.New("class selection required for free slot")
	// ErrForbidden indicates the caller may not perform the operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidInput indicates invalid party input.
	ErrInvalidInput = errors.New("invalid party input")
	// ErrInvalidComposition indicates an out-of-range or malformed composition spec.
	ErrInvalidComposition = errors.New("invalid composition spec")
	// ErrCreatorSlotMissing indicates no composition entry matches the creator's slot choice.
	ErrCreatorSlotMissing = errors.New("composition has no slot for the creator")
)
