package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/repository"
)

// EventRepository implements event.Repository for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create schedules a new event
func (r *EventRepository) Create(ctx context.Context, ev *event.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, title, description, starts_at, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		ev.ID,
		ev.Title,
		ev.Description,
		ev.StartsAt,
		ev.CreatedBy,
		ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// Get retrieves an event by ID
func (r *EventRepository) Get(ctx context.Context, id string) (*event.Event, error) {
	var ev event.Event
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, starts_at, created_by, created_at
		FROM events
		WHERE id = ?
	`, id).Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.StartsAt,
		&ev.CreatedBy,
		&ev.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &ev, nil
}

// List returns all events, soonest first
func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, starts_at, created_by, created_at
		FROM events
		ORDER BY starts_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var ev event.Event
		err := rows.Scan(
			&ev.ID,
			&ev.Title,
			&ev.Description,
			&ev.StartsAt,
			&ev.CreatedBy,
			&ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// Delete removes an event; its parties cascade
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
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
