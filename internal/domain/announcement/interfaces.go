package announcement

import "context"

// Repository provides persistence for announcements.
type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	List(ctx context.Context) ([]Announcement, error)
	Delete(ctx context.Context, id string) error
}
