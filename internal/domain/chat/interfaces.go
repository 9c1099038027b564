package chat

import "context"

// Repository provides persistence for channels and messages.
type Repository interface {
	CreateChannel(ctx context.Context, ch *Channel) error
	GetChannel(ctx context.Context, id string) (*Channel, error)
	ListChannels(ctx context.Context) ([]Channel, error)
	CreateMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, channelID string, opts ListMessagesOptions) ([]Message, error)
}

// ListMessagesOptions pages a message listing backwards in time.
type ListMessagesOptions struct {
	Limit  int
	Before string // message ID; empty starts from the newest
}
