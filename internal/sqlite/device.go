package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/ganot/guildhall/internal/notify"
)

// DeviceRepository implements notify.DeviceRepository for SQLite
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates a new DeviceRepository
func NewDeviceRepository(db *DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Register stores a push token; re-registering moves the token to the member
func (r *DeviceRepository) Register(ctx context.Context, d *notify.Device) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO devices (token, member_id, platform, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET member_id = excluded.member_id, platform = excluded.platform
	`,
		d.Token,
		d.MemberID,
		d.Platform,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}

// Unregister removes a member's push token
func (r *DeviceRepository) Unregister(ctx context.Context, memberID, token string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM devices WHERE token = ? AND member_id = ?
	`, token, memberID)
	if err != nil {
		return fmt.Errorf("failed to unregister device: %w", err)
	}

	return nil
}

// ListByMembers returns devices registered by any of the given members
func (r *DeviceRepository) ListByMembers(ctx context.Context, memberIDs []string) ([]notify.Device, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(memberIDs)-1) + "?"
	args := make([]any, len(memberIDs))
	for i, id := range memberIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT token, member_id, platform, created_at
		FROM devices
		WHERE member_id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []notify.Device
	for rows.Next() {
		var d notify.Device
		err := rows.Scan(
			&d.Token,
			&d.MemberID,
			&d.Platform,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device rows: %w", err)
	}

	return devices, nil
}
