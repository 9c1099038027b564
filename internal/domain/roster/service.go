package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/guildhall/internal/repository"
)

// Service handles roster operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new roster service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ApplyRequest defines a membership application.
type ApplyRequest struct {
	ID          string
	DisplayName string
	Class       Class
}

// Apply registers a membership application. The member lands in PENDING
// status until a leader approves or rejects it.
func (s *Service) Apply(ctx context.Context, req ApplyRequest) (*Member, error) {
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.DisplayName) == "" {
		return nil, ErrInvalidInput
	}
	if !req.Class.Valid() {
		return nil, ErrInvalidInput
	}

	m := &Member{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		Class:       req.Class,
		Role:        RoleMember,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateMember
		}
		return nil, fmt.Errorf("creating member: %w", err)
	}

	s.logger.Info("membership application received", "member", m.ID)
	return m, nil
}

// Approve activates a pending member. Leader only.
func (s *Service) Approve(ctx context.Context, caller *Member, id string) (*Member, error) {
	return s.decide(ctx, caller, id, StatusActive)
}

// Reject declines a pending member. Leader only.
func (s *Service) Reject(ctx context.Context, caller *Member, id string) (*Member, error) {
	return s.decide(ctx, caller, id, StatusRejected)
}

func (s *Service) decide(ctx context.Context, caller *Member, id string, to Status) (*Member, error) {
	if !caller.IsLeader() {
		return nil, ErrForbidden
	}

	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusPending {
		return nil, ErrNotPending
	}

	m.Status = to
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("updating member: %w", err)
	}

	s.logger.Info("membership decided", "member", m.ID, "status", m.Status, "by", caller.ID)
	return m, nil
}

// Get fetches a member by ID.
func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}
	return m, nil
}

// List returns roster members, optionally filtered by status.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Member, error) {
	return s.repo.List(ctx, opts)
}

// UpdateProfileRequest defines a profile update.
type UpdateProfileRequest struct {
	DisplayName string
	Class       Class
}

// UpdateProfile changes a member's own display name and class.
func (s *Service) UpdateProfile(ctx context.Context, caller *Member, req UpdateProfileRequest) (*Member, error) {
	if strings.TrimSpace(req.DisplayName) == "" || !req.Class.Valid() {
		return nil, ErrInvalidInput
	}

	caller.DisplayName = req.DisplayName
	caller.Class = req.Class
	if err := s.repo.Update(ctx, caller); err != nil {
		return nil, fmt.Errorf("updating member: %w", err)
	}
	return caller, nil
}
