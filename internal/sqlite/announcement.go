package sqlite

import (
	"context"
	"fmt"

	"github.com/ganot/guildhall/internal/domain/announcement"
	"github.com/ganot/guildhall/internal/repository"
)

// AnnouncementRepository implements announcement.Repository for SQLite
type AnnouncementRepository struct {
	db *DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create publishes an announcement
func (r *AnnouncementRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO announcements (id, title, body, author_id, pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		a.ID,
		a.Title,
		a.Body,
		a.AuthorID,
		a.Pinned,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	return nil
}

// List returns announcements, pinned first then newest first
func (r *AnnouncementRepository) List(ctx context.Context) ([]announcement.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, body, author_id, pinned, created_at
		FROM announcements
		ORDER BY pinned DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		var a announcement.Announcement
		err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Body,
			&a.AuthorID,
			&a.Pinned,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, nil
}

// Delete removes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
