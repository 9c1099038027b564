package notify

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidDevice indicates a malformed device registration.
var ErrInvalidDevice = errors.New("invalid device registration")

// Device is a registered push target for a member.
type Device struct {
	Token     string    `json:"token"`
	MemberID  string    `json:"member_id"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// DeviceRepository provides persistence for push devices.
type DeviceRepository interface {
	Register(ctx context.Context, d *Device) error
	Unregister(ctx context.Context, memberID, token string) error
	ListByMembers(ctx context.Context, memberIDs []string) ([]Device, error)
}
