package event

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

// Service handles guild event operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new event service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines event creation inputs.
type CreateRequest struct {
	Title       string
	Description string
	StartsAt    time.Time
}

// Create schedules a new event. Leader only.
func (s *Service) Create(ctx context.Context, caller *roster.Member, req CreateRequest) (*Event, error) {
	if !caller.IsLeader() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" || req.StartsAt.IsZero() {
		return nil, ErrInvalidInput
	}

	ev := &Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		CreatedBy:   caller.ID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	s.logger.Info("event scheduled", "event", ev.ID, "starts_at", ev.StartsAt)
	return ev, nil
}

// Get fetches an event by ID.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	ev, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return ev, nil
}

// List returns all events, soonest first.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// Delete removes an event and every party bound to it. Leader only.
func (s *Service) Delete(ctx context.Context, caller *roster.Member, id string) error {
	if !caller.IsLeader() {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}
