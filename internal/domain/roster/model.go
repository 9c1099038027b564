package roster

import "time"

// Class is a playable class on the guild roster.
type Class string

const (
	ClassWarrior Class = "WARRIOR"
	ClassMage    Class = "MAGE"
	ClassArcher  Class = "ARCHER"
	ClassRogue   Class = "ROGUE"
	ClassPriest  Class = "PRIEST"
)

// Classes lists every playable class.
var Classes = []Class{ClassWarrior, ClassMage, ClassArcher, ClassRogue, ClassPriest}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	switch c {
	case ClassWarrior, ClassMage, ClassArcher, ClassRogue, ClassPriest:
		return true
	}
	return false
}

// Role is a member's guild role.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleLeader Role = "LEADER"
)

// Status is a member's approval status.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusRejected Status = "REJECTED"
)

// Member is one entry on the guild roster.
type Member struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Class       Class     `json:"class"`
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsLeader reports whether the member holds the elevated guild role.
func (m *Member) IsLeader() bool {
	return m.Role == RoleLeader
}

// IsActive reports whether the member has been approved into the guild.
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}
