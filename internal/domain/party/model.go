package party

import (
	"time"

	"github.com/ganot/guildhall/internal/domain/roster"
)

// SlotRequirement is what a slot demands of its occupant: a concrete class,
// or Free meaning any class may occupy.
type SlotRequirement string

// Free marks a slot that any class may claim. The claimant resolves it to a
// concrete class at claim time.
const Free SlotRequirement = "FREE"

// IsFree reports whether the requirement is the Free sentinel.
func (r SlotRequirement) IsFree() bool {
	return r == Free
}

// Valid reports whether r is Free or a known class.
func (r SlotRequirement) Valid() bool {
	return r.IsFree() || roster.Class(r).Valid()
}

// Class returns the concrete class a non-Free requirement demands.
func (r SlotRequirement) Class() roster.Class {
	return roster.Class(r)
}

// Party is a constrained group with a fixed set of typed membership slots.
type Party struct {
	ID          string    `json:"id"`
	EventID     *string   `json:"event_id,omitempty"` // nil for guild-wide parties
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	IsClosed    bool      `json:"is_closed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Slot is one membership position within a party. The composition shape of a
// party is immutable after creation; only occupancy churns.
type Slot struct {
	ID       string          `json:"id"`
	PartyID  string          `json:"party_id"`
	Position int             `json:"position"`
	Required SlotRequirement `json:"required"`
	// OccupantID is nil while the slot is open.
	OccupantID *string `json:"occupant_id,omitempty"`
	// ResolvedClass records which class the occupant is credited as. It is
	// set exactly when the slot is Free and occupied.
	ResolvedClass *roster.Class `json:"resolved_class,omitempty"`
}

// CreditedClass returns the class the occupant counts as, or "" for an
// open slot.
func (s *Slot) CreditedClass() roster.Class {
	if s.OccupantID == nil {
		return ""
	}
	if s.Required.IsFree() {
		if s.ResolvedClass == nil {
			return ""
		}
		return *s.ResolvedClass
	}
	return s.Required.Class()
}

// CompositionEntry is one line of a creation-time composition spec.
type CompositionEntry struct {
	Requirement SlotRequirement `json:"requirement"`
	Count       int             `json:"count"`
}

// PartySlots pairs a party with its ordered slots.
type PartySlots struct {
	Party Party
	Slots []Slot
}

// MemberRef identifies a member as seen through a party.
type MemberRef struct {
	ID          string       `json:"id"`
	DisplayName string       `json:"display_name"`
	Class       roster.Class `json:"class"`
}

// SlotView is the externally-visible shape of a slot.
type SlotView struct {
	ID            string          `json:"id"`
	Required      SlotRequirement `json:"required"`
	ResolvedClass *roster.Class   `json:"resolved_class,omitempty"`
	Occupant      *MemberRef      `json:"occupant,omitempty"`
}

// View is the externally-visible shape of a party, with slots in composition
// order and a derived flat members list (occupied slots only).
type View struct {
	ID          string      `json:"id"`
	EventID     *string     `json:"event_id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	IsClosed    bool        `json:"is_closed"`
	CreatedAt   time.Time   `json:"created_at"`
	Creator     MemberRef   `json:"creator"`
	Slots       []SlotView  `json:"slots"`
	Members     []MemberRef `json:"members"`
}
