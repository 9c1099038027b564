package roster

import "context"

// Repository provides persistence for roster members.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	Get(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, opts ListOptions) ([]Member, error)
	Update(ctx context.Context, m *Member) error
}

// ListOptions filters roster listings.
type ListOptions struct {
	Status Status // empty means all statuses
}
