package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/guildhall/internal/domain/chat"
	"github.com/ganot/guildhall/internal/repository"
)

// ChatRepository implements chat.Repository for SQLite
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateChannel opens a channel
func (r *ChatRepository) CreateChannel(ctx context.Context, ch *chat.Channel) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO channels (id, name, party_id, created_at)
		VALUES (?, ?, ?, ?)
	`,
		ch.ID,
		ch.Name,
		ch.PartyID,
		ch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create channel: %w", err)
	}

	return nil
}

// GetChannel retrieves a channel by ID
func (r *ChatRepository) GetChannel(ctx context.Context, id string) (*chat.Channel, error) {
	var ch chat.Channel
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, party_id, created_at
		FROM channels
		WHERE id = ?
	`, id).Scan(
		&ch.ID,
		&ch.Name,
		&ch.PartyID,
		&ch.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return &ch, nil
}

// ListChannels returns all channels, oldest first
func (r *ChatRepository) ListChannels(ctx context.Context) ([]chat.Channel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, party_id, created_at
		FROM channels
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []chat.Channel
	for rows.Next() {
		var ch chat.Channel
		err := rows.Scan(
			&ch.ID,
			&ch.Name,
			&ch.PartyID,
			&ch.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel rows: %w", err)
	}

	return channels, nil
}

// CreateMessage appends a message
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *chat.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, channel_id, author_id, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		msg.ID,
		msg.ChannelID,
		msg.AuthorID,
		msg.Body,
		msg.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListMessages returns channel messages newest first, optionally before a
// given message
func (r *ChatRepository) ListMessages(ctx context.Context, channelID string, opts chat.ListMessagesOptions) ([]chat.Message, error) {
	query := `
		SELECT id, channel_id, author_id, body, created_at
		FROM messages
		WHERE channel_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	args := []any{channelID, opts.Limit}
	if opts.Before != "" {
		query = `
			SELECT id, channel_id, author_id, body, created_at
			FROM messages
			WHERE channel_id = ?
			  AND created_at < (SELECT created_at FROM messages WHERE id = ?)
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		`
		args = []any{channelID, opts.Before, opts.Limit}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var msg chat.Message
		err := rows.Scan(
			&msg.ID,
			&msg.ChannelID,
			&msg.AuthorID,
			&msg.Body,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}
