package event

import "context"

// Repository provides persistence for events.
type Repository interface {
	Create(ctx context.Context, ev *Event) error
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	// Delete removes the event; parties bound to it cascade.
	Delete(ctx context.Context, id string) error
}
