package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/repository"
)

// PartyRepository implements party.Repository for SQLite
type PartyRepository struct {
	db *DB
}

// NewPartyRepository creates a new PartyRepository
func NewPartyRepository(db *DB) *PartyRepository {
	return &PartyRepository{db: db}
}

// Create persists a party and its slots in one transaction. No partial party
// is ever visible.
func (r *PartyRepository) Create(ctx context.Context, p *party.Party, slots []party.Slot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO parties (id, event_id, name, description, created_by, is_closed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.EventID,
		p.Name,
		p.Description,
		p.CreatedBy,
		p.IsClosed,
		p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create party: %w", err)
	}

	for i := range slots {
		s := &slots[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO slots (id, party_id, position, required, occupant_id, resolved_class)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			s.ID,
			s.PartyID,
			s.Position,
			string(s.Required),
			s.OccupantID,
			classValue(s.ResolvedClass),
		)
		if err != nil {
			return fmt.Errorf("failed to create slot: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Get retrieves a party and its slots in composition order
func (r *PartyRepository) Get(ctx context.Context, id string) (*party.Party, []party.Slot, error) {
	var p party.Party
	err := r.db.QueryRowContext(ctx, `
		SELECT id, event_id, name, description, created_by, is_closed, created_at
		FROM parties
		WHERE id = ?
	`, id).Scan(
		&p.ID,
		&p.EventID,
		&p.Name,
		&p.Description,
		&p.CreatedBy,
		&p.IsClosed,
		&p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get party: %w", err)
	}

	slots, err := r.slots(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return &p, slots, nil
}

// List returns parties with their slots, scoped to an event or guild-wide
func (r *PartyRepository) List(ctx context.Context, opts party.ListOptions) ([]party.PartySlots, error) {
	query := `
		SELECT id, event_id, name, description, created_by, is_closed, created_at
		FROM parties
		WHERE event_id IS NULL
		ORDER BY created_at DESC
	`
	args := []any{}
	if opts.EventID != nil {
		query = `
			SELECT id, event_id, name, description, created_by, is_closed, created_at
			FROM parties
			WHERE event_id = ?
			ORDER BY created_at DESC
		`
		args = append(args, *opts.EventID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var result []party.PartySlots
	for rows.Next() {
		var p party.Party
		err := rows.Scan(
			&p.ID,
			&p.EventID,
			&p.Name,
			&p.Description,
			&p.CreatedBy,
			&p.IsClosed,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		result = append(result, party.PartySlots{Party: p})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}

	for i := range result {
		slots, err := r.slots(ctx, result[i].Party.ID)
		if err != nil {
			return nil, err
		}
		result[i].Slots = slots
	}

	return result, nil
}

// Claim occupies a slot with a conditional update: the write only lands if
// the slot is still empty and the claimant holds no other slot in the party.
// The party's closed flag is recomputed from committed occupancy inside the
// same transaction.
func (r *PartyRepository) Claim(ctx context.Context, partyID, slotID, occupantID string, resolved *roster.Class) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE slots
		SET occupant_id = ?, resolved_class = ?
		WHERE id = ? AND party_id = ? AND occupant_id IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM slots other
			WHERE other.party_id = slots.party_id AND other.occupant_id = ?
		  )
	`, occupantID, classValue(resolved), slotID, partyID, occupantID)
	if err != nil {
		return false, fmt.Errorf("failed to claim slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return false, r.diagnoseClaim(ctx, tx, partyID, slotID, occupantID)
	}

	closed, err := recomputeClosed(ctx, tx, partyID)
	if err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return closed, nil
}

// diagnoseClaim explains a lost claim from within the same transaction.
func (r *PartyRepository) diagnoseClaim(ctx context.Context, tx *sql.Tx, partyID, slotID, occupantID string) error {
	var occupant sql.NullString
	err := tx.QueryRowContext(ctx, `
		SELECT occupant_id FROM slots WHERE id = ? AND party_id = ?
	`, slotID, partyID).Scan(&occupant)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to inspect slot: %w", err)
	}
	if occupant.Valid {
		return party.ErrSlotFilled
	}
	return party.ErrAlreadyMember
}

// Release clears the occupant's slot and reopens the party if it was closed,
// in one transaction.
func (r *PartyRepository) Release(ctx context.Context, partyID, occupantID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE slots
		SET occupant_id = NULL, resolved_class = NULL
		WHERE party_id = ? AND occupant_id = ?
	`, partyID, occupantID)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return party.ErrNotMember
	}

	if _, err := recomputeClosed(ctx, tx, partyID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateInfo changes name and description only
func (r *PartyRepository) UpdateInfo(ctx context.Context, id, name, description string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE parties SET name = ?, description = ? WHERE id = ?
	`, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update party: %w", err)
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

// Delete removes a party; slots and the companion channel cascade
func (r *PartyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
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

func (r *PartyRepository) slots(ctx context.Context, partyID string) ([]party.Slot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, party_id, position, required, occupant_id, resolved_class
		FROM slots
		WHERE party_id = ?
		ORDER BY position ASC
	`, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var slots []party.Slot
	for rows.Next() {
		var s party.Slot
		var required string
		var resolved sql.NullString
		err := rows.Scan(
			&s.ID,
			&s.PartyID,
			&s.Position,
			&required,
			&s.OccupantID,
			&resolved,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		s.Required = party.SlotRequirement(required)
		if resolved.Valid {
			class := roster.Class(resolved.String)
			s.ResolvedClass = &class
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot rows: %w", err)
	}

	return slots, nil
}

// recomputeClosed derives the closed flag from committed occupancy and
// persists it, returning the new value.
func recomputeClosed(ctx context.Context, tx *sql.Tx, partyID string) (bool, error) {
	_, err := tx.ExecContext(ctx, `
		UPDATE parties
		SET is_closed = NOT EXISTS (
			SELECT 1 FROM slots WHERE party_id = ? AND occupant_id IS NULL
		)
		WHERE id = ?
	`, partyID, partyID)
	if err != nil {
		return false, fmt.Errorf("failed to recompute closed flag: %w", err)
	}

	var closed bool
	err = tx.QueryRowContext(ctx, `SELECT is_closed FROM parties WHERE id = ?`, partyID).Scan(&closed)
	if err != nil {
		return false, fmt.Errorf("failed to read closed flag: %w", err)
	}

	return closed, nil
}

// classValue converts an optional class for binding.
func classValue(c *roster.Class) any {
	if c == nil {
		return nil
	}
	return string(*c)
}
