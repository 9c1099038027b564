package announcement

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

// Service handles announcement operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new announcement service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// PostRequest defines announcement inputs.
type PostRequest struct {
	Title  string
	Body   string
	Pinned bool
}

// Post publishes an announcement. Leader only.
func (s *Service) Post(ctx context.Context, caller *roster.Member, req PostRequest) (*Announcement, error) {
	if !caller.IsLeader() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, ErrInvalidInput
	}

	a := &Announcement{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Body:      req.Body,
		AuthorID:  caller.ID,
		Pinned:    req.Pinned,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating announcement: %w", err)
	}

	s.logger.Info("announcement posted", "announcement", a.ID, "by", caller.ID)
	return a, nil
}

// List returns announcements, pinned first then newest first.
func (s *Service) List(ctx context.Context) ([]Announcement, error) {
	return s.repo.List(ctx)
}

// Delete removes an announcement. Leader only.
func (s *Service) Delete(ctx context.Context, caller *roster.Member, id string) error {
	if !caller.IsLeader() {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting announcement: %w", err)
	}
	return nil
}
