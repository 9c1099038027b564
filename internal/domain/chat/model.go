package chat

import "time"

// Channel is a discussion channel. A channel provisioned for a party carries
// its party id and is removed with the party; guild-wide channels have none.
type Channel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PartyID   *string   `json:"party_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one chat message within a channel.
type Message struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
