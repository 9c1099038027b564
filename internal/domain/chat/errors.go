package chat

import "errors"

var (
	// ErrChannelNotFound indicates the channel doesn't exist.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrInvalidInput indicates invalid chat input.
	ErrInvalidInput = errors.New("invalid chat input")
)
