package party

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

// Service is the slot allocation engine. It owns the party lifecycle:
// composition validation, creation with creator auto-assignment, claim,
// release, the capacity-driven closed/open transition, rename, and deletion.
type Service struct {
	parties  Repository
	roster   Roster
	notifier Notifier
	channels Provisioner
	logger   *slog.Logger
}

// NewService creates a new party service. notifier and channels may be nil.
func NewService(parties Repository, ros Roster, notifier Notifier, channels Provisioner, logger *slog.Logger) *Service {
	return &Service{
		parties:  parties,
		roster:   ros,
		notifier: notifier,
		channels: channels,
		logger:   logger,
	}
}

// CreateRequest describes a party creation request.
type CreateRequest struct {
	Name        string
	Description string
	EventID     *string
	Composition []CompositionEntry
	// CreatorSlot picks which composition entry the creator occupies.
	CreatorSlot SlotRequirement
}

// Create validates the composition, persists the party with its expanded
// slots and the creator already seated, then provisions the companion
// channel. A new party is never closed: composition size is at least two, so
// seating the creator leaves at least one open slot.
func (s *Service) Create(ctx context.Context, caller *roster.Member, req CreateRequest) (*View, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	expanded, creatorIdx, err := ExpandComposition(req.Composition, req.CreatorSlot)
	if err != nil {
		return nil, err
	}

	p := &Party{
		ID:          uuid.NewString(),
		EventID:     req.EventID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   caller.ID,
		IsClosed:    false,
		CreatedAt:   time.Now(),
	}

	slots := make([]Slot, len(expanded))
	for i, required := range expanded {
		slots[i] = Slot{
			ID:       uuid.NewString(),
			PartyID:  p.ID,
			Position: i,
			Required: required,
		}
	}

	creator := &slots[creatorIdx]
	creator.OccupantID = &caller.ID
	if creator.Required.IsFree() {
		// A free slot claimed at creation resolves to the creator's own
		// roster class.
		class := caller.Class
		creator.ResolvedClass = &class
	}

	if err := s.parties.Create(ctx, p, slots); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("creating party: %w", err)
	}

	view, err := s.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PartyCreated(ctx, p.ID, p.Name); err != nil {
			s.logger.Warn("party created notification failed", "party", p.ID, "error", err)
		}
	}
	if s.channels != nil {
		if err := s.channels.ProvisionChannel(ctx, p.ID, p.Name); err != nil {
			s.logger.Warn("channel provisioning failed", "party", p.ID, "error", err)
		}
	}

	return view, nil
}

// JoinRequest describes a slot claim.
type JoinRequest struct {
	PartyID string
	SlotID  string
	// SelectedClass resolves a free slot; required exactly when the target
	// slot is free.
	SelectedClass *roster.Class
}

// Join claims a slot for the caller. The occupy step is a single conditional
// write: under a race for the same slot exactly one claimant succeeds and the
// rest observe ErrSlotFilled. If the claim fills the last open slot the party
// closes and a party-full notification goes out to all occupants.
func (s *Service) Join(ctx context.Context, caller *roster.Member, req JoinRequest) (*View, error) {
	p, slots, err := s.get(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}
	if p.IsClosed {
		return nil, ErrPartyClosed
	}

	var target *Slot
	for i := range slots {
		if slots[i].OccupantID != nil && *slots[i].OccupantID == caller.ID {
			return nil, ErrAlreadyMember
		}
		if slots[i].ID == req.SlotID {
			target = &slots[i]
		}
	}
	if target == nil {
		return nil, ErrSlotNotFound
	}
	if target.OccupantID != nil {
		return nil, ErrSlotFilled
	}

	var resolved *roster.Class
	if target.Required.IsFree() {
		if req.SelectedClass == nil {
			return nil, ErrClassRequired
		}
		if !req.SelectedClass.Valid() {
			return nil, ErrInvalidInput
		}
		resolved = req.SelectedClass
	}

	closed, err := s.parties.Claim(ctx, req.PartyID, req.SlotID, caller.ID, resolved)
	if err != nil {
		// The snapshot checks above can lose to a concurrent writer; the
		// conditional write is authoritative.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		if errors.Is(err, ErrSlotFilled) || errors.Is(err, ErrAlreadyMember) {
			return nil, err
		}
		return nil, fmt.Errorf("claiming slot: %w", err)
	}

	view, err := s.Get(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}

	if closed && s.notifier != nil {
		occupants := make([]string, 0, len(view.Members))
		for _, m := range view.Members {
			occupants = append(occupants, m.ID)
		}
		if err := s.notifier.PartyFilled(ctx, p.ID, occupants); err != nil {
			s.logger.Warn("party full notification failed", "party", p.ID, "error", err)
		}
	}

	return view, nil
}

// Leave releases the caller's slot. Slots are recycled, never deleted: the
// composition shape of a party is immutable after creation. A closed party
// reopens as a consequence of the vacancy.
func (s *Service) Leave(ctx context.Context, caller *roster.Member, partyID string) (*View, error) {
	if _, _, err := s.get(ctx, partyID); err != nil {
		return nil, err
	}

	if err := s.parties.Release(ctx, partyID, caller.ID); err != nil {
		if errors.Is(err, ErrNotMember) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("releasing slot: %w", err)
	}

	return s.Get(ctx, partyID)
}

// RenameRequest describes a rename/describe request.
type RenameRequest struct {
	PartyID     string
	Name        string
	Description string
}

// Rename updates a party's name and description. Composition and occupancy
// are untouched. Creator or leader only.
func (s *Service) Rename(ctx context.Context, caller *roster.Member, req RenameRequest) (*View, error) {
	p, _, err := s.get(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}
	if !s.canManage(caller, p) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	if err := s.parties.UpdateInfo(ctx, req.PartyID, req.Name, req.Description); err != nil {
		return nil, fmt.Errorf("renaming party: %w", err)
	}

	return s.Get(ctx, req.PartyID)
}

// Delete removes a party and all its slots. Creator or leader only.
// Irrecoverable; the companion channel goes with it.
func (s *Service) Delete(ctx context.Context, caller *roster.Member, partyID string) error {
	p, _, err := s.get(ctx, partyID)
	if err != nil {
		return err
	}
	if !s.canManage(caller, p) {
		return ErrForbidden
	}

	if err := s.parties.Delete(ctx, partyID); err != nil {
		return fmt.Errorf("deleting party: %w", err)
	}

	s.logger.Info("party deleted", "party", partyID, "by", caller.ID)
	return nil
}

// Get returns the full party view.
func (s *Service) Get(ctx context.Context, partyID string) (*View, error) {
	p, slots, err := s.get(ctx, partyID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, p, slots)
}

// List returns party views within a scope.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]View, error) {
	aggregates, err := s.parties.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing parties: %w", err)
	}

	views := make([]View, 0, len(aggregates))
	for i := range aggregates {
		view, err := s.assemble(ctx, &aggregates[i].Party, aggregates[i].Slots)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *Service) get(ctx context.Context, partyID string) (*Party, []Slot, error) {
	p, slots, err := s.parties.Get(ctx, partyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrPartyNotFound
		}
		return nil, nil, fmt.Errorf("getting party: %w", err)
	}
	return p, slots, nil
}

func (s *Service) canManage(caller *roster.Member, p *Party) bool {
	return p.CreatedBy == caller.ID || caller.IsLeader()
}

// assemble builds the denormalized view: slots with occupant identity, plus
// the derived members list for consumers that don't care about slot
// structure.
func (s *Service) assemble(ctx context.Context, p *Party, slots []Slot) (*View, error) {
	refs := map[string]*roster.Member{}
	lookup := func(id string) (*roster.Member, error) {
		if m, ok := refs[id]; ok {
			return m, nil
		}
		m, err := s.roster.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolving member %s: %w", id, err)
		}
		refs[id] = m
		return m, nil
	}

	creator, err := lookup(p.CreatedBy)
	if err != nil {
		return nil, err
	}

	view := &View{
		ID:          p.ID,
		EventID:     p.EventID,
		Name:        p.Name,
		Description: p.Description,
		IsClosed:    p.IsClosed,
		CreatedAt:   p.CreatedAt,
		Creator: MemberRef{
			ID:          creator.ID,
			DisplayName: creator.DisplayName,
			Class:       creator.Class,
		},
		Slots:   make([]SlotView, 0, len(slots)),
		Members: []MemberRef{},
	}

	for i := range slots {
		slot := &slots[i]
		sv := SlotView{
			ID:            slot.ID,
			Required:      slot.Required,
			ResolvedClass: slot.ResolvedClass,
		}
		if slot.OccupantID != nil {
			occupant, err := lookup(*slot.OccupantID)
			if err != nil {
				return nil, err
			}
			ref := MemberRef{
				ID:          occupant.ID,
				DisplayName: occupant.DisplayName,
				Class:       slot.CreditedClass(),
			}
			sv.Occupant = &ref
			view.Members = append(view.Members, ref)
		}
		view.Slots = append(view.Slots, sv)
	}

	return view, nil
}
