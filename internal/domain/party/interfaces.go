package party

import (
	"context"

	"github.com/ganot/guildhall/internal/domain/roster"
)

// Repository provides persistence for parties and their slots. Every mutating
// method treats the party+slots aggregate as one transaction.
type Repository interface {
	// Create persists a party and its expanded slots atomically. Slots may
	// arrive pre-occupied (the creator's seat).
	Create(ctx context.Context, p *Party, slots []Slot) error
	// Get returns a party and its slots in composition order.
	Get(ctx context.Context, id string) (*Party, []Slot, error)
	// List returns parties with their slots, filtered by scope.
	List(ctx context.Context, opts ListOptions) ([]PartySlots, error)
	// Claim occupies a slot, guarded so that exactly one of several racing
	// claimants succeeds. It recomputes and persists the party's closed flag
	// in the same transaction and reports whether the party closed.
	// Returns ErrSlotFilled, ErrAlreadyMember, or ErrSlotNotFound on failure.
	Claim(ctx context.Context, partyID, slotID, occupantID string, resolved *roster.Class) (closed bool, err error)
	// Release clears the caller's slot and reopens the party if it was
	// closed, in one transaction. Returns ErrNotMember if the caller
	// occupies no slot.
	Release(ctx context.Context, partyID, occupantID string) error
	// UpdateInfo changes name and description only.
	UpdateInfo(ctx context.Context, id, name, description string) error
	// Delete removes the party; slot deletion cascades.
	Delete(ctx context.Context, id string) error
}

// Roster provides read access to the guild roster.
type Roster interface {
	Get(ctx context.Context, id string) (*roster.Member, error)
}

// Notifier receives engine events after the state commit. Implementations
// must not block the calling operation on delivery.
type Notifier interface {
	PartyCreated(ctx context.Context, partyID, name string) error
	PartyFilled(ctx context.Context, partyID string, occupantIDs []string) error
}

// Provisioner creates the companion discussion channel for a new party.
type Provisioner interface {
	ProvisionChannel(ctx context.Context, partyID, name string) error
}
