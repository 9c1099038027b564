package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/repository"
)

// RosterRepository implements roster.Repository for SQLite
type RosterRepository struct {
	db *DB
}

// NewRosterRepository creates a new RosterRepository
func NewRosterRepository(db *DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Create adds a member to the roster
func (r *RosterRepository) Create(ctx context.Context, m *roster.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (id, display_name, class, role, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		m.ID,
		m.DisplayName,
		string(m.Class),
		string(m.Role),
		string(m.Status),
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// Get retrieves a member by ID
func (r *RosterRepository) Get(ctx context.Context, id string) (*roster.Member, error) {
	var m roster.Member
	err := r.db.QueryRowContext(ctx, `
		SELECT id, display_name, class, role, status, created_at
		FROM members
		WHERE id = ?
	`, id).Scan(
		&m.ID,
		&m.DisplayName,
		&m.Class,
		&m.Role,
		&m.Status,
		&m.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}

// List returns members, optionally filtered by status
func (r *RosterRepository) List(ctx context.Context, opts roster.ListOptions) ([]roster.Member, error) {
	query := `
		SELECT id, display_name, class, role, status, created_at
		FROM members
		ORDER BY created_at ASC
	`
	args := []any{}
	if opts.Status != "" {
		query = `
			SELECT id, display_name, class, role, status, created_at
			FROM members
			WHERE status = ?
			ORDER BY created_at ASC
		`
		args = append(args, string(opts.Status))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []roster.Member
	for rows.Next() {
		var m roster.Member
		err := rows.Scan(
			&m.ID,
			&m.DisplayName,
			&m.Class,
			&m.Role,
			&m.Status,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

// Update persists member changes
func (r *RosterRepository) Update(ctx context.Context, m *roster.Member) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET display_name = ?, class = ?, role = ?, status = ?
		WHERE id = ?
	`,
		m.DisplayName,
		string(m.Class),
		string(m.Role),
		string(m.Status),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
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
