package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Dispatcher resolves engine events to push fan-outs. Actual delivery is an
// external concern; the dispatcher records who would be reached and never
// lets a failure travel back into the calling operation.
type Dispatcher struct {
	devices DeviceRepository
	logger  *slog.Logger
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(devices DeviceRepository, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{devices: devices, logger: logger}
}

// PartyCreated handles the party-created event.
func (d *Dispatcher) PartyCreated(ctx context.Context, partyID, name string) error {
	d.logger.Info("party created", "party", partyID, "name", name)
	return nil
}

// PartyFilled fans a party-full notification out to every occupant's devices.
func (d *Dispatcher) PartyFilled(ctx context.Context, partyID string, occupantIDs []string) error {
	devices, err := d.devices.ListByMembers(ctx, occupantIDs)
	if err != nil {
		return fmt.Errorf("listing devices: %w", err)
	}

	d.logger.Info("party full notification dispatched",
		"party", partyID,
		"occupants", len(occupantIDs),
		"devices", len(devices),
	)
	return nil
}

// RegisterDevice stores a push token for a member. Re-registering the same
// token moves it to the member.
func (d *Dispatcher) RegisterDevice(ctx context.Context, memberID, platform, token string) error {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(platform) == "" {
		return ErrInvalidDevice
	}

	dev := &Device{
		Token:     token,
		MemberID:  memberID,
		Platform:  platform,
		CreatedAt: time.Now(),
	}
	if err := d.devices.Register(ctx, dev); err != nil {
		return fmt.Errorf("registering device: %w", err)
	}
	return nil
}

// UnregisterDevice removes a member's push token.
func (d *Dispatcher) UnregisterDevice(ctx context.Context, memberID, token string) error {
	if err := d.devices.Unregister(ctx, memberID, token); err != nil {
		return fmt.Errorf("unregistering device: %w", err)
	}
	return nil
}
