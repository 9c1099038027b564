package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/repository"
	"github.com/google/uuid"
)

const defaultMessageLimit = 50

// Service handles chat operations. It also acts as the party engine's
// channel provisioner.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new chat service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateChannel opens a guild-wide channel.
func (s *Service) CreateChannel(ctx context.Context, name string) (*Channel, error) {
	return s.create(ctx, name, nil)
}

// ProvisionChannel opens the companion channel for a new party. It satisfies
// the party engine's Provisioner interface.
func (s *Service) ProvisionChannel(ctx context.Context, partyID, name string) error {
	_, err := s.create(ctx, name, &partyID)
	return err
}

func (s *Service) create(ctx context.Context, name string, partyID *string) (*Channel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	ch := &Channel{
		ID:        uuid.NewString(),
		Name:      name,
		PartyID:   partyID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateChannel(ctx, ch); err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}

	s.logger.Info("channel opened", "channel", ch.ID, "name", ch.Name)
	return ch, nil
}

// ListChannels returns all channels.
func (s *Service) ListChannels(ctx context.Context) ([]Channel, error) {
	return s.repo.ListChannels(ctx)
}

// Post appends a message to a channel.
func (s *Service) Post(ctx context.Context, caller *roster.Member, channelID, body string) (*Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.repo.GetChannel(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("getting channel: %w", err)
	}

	msg := &Message{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		AuthorID:  caller.ID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return msg, nil
}

// ListMessages returns channel messages, newest first.
func (s *Service) ListMessages(ctx context.Context, channelID string, opts ListMessagesOptions) ([]Message, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultMessageLimit
	}

	if _, err := s.repo.GetChannel(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("getting channel: %w", err)
	}

	return s.repo.ListMessages(ctx, channelID, opts)
}
