package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	seedMember(t, db, "leader", roster.ClassPriest)

	ev := &event.Event{
		ID:          uuid.NewString(),
		Title:       "Raid Night",
		Description: "bring potions",
		StartsAt:    time.Now().Add(48 * time.Hour),
		CreatedBy:   "leader",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(ctx, ev))

	got, err := repo.Get(ctx, ev.ID)
	require.NoError(t, err)
	require.Equal(t, "Raid Night", got.Title)
	require.Equal(t, "leader", got.CreatedBy)
}

func TestEventRepository_List_SoonestFirst(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	seedMember(t, db, "leader", roster.ClassPriest)

	now := time.Now()
	later := &event.Event{ID: "later", Title: "Later", StartsAt: now.Add(72 * time.Hour), CreatedBy: "leader", CreatedAt: now}
	sooner := &event.Event{ID: "sooner", Title: "Sooner", StartsAt: now.Add(24 * time.Hour), CreatedBy: "leader", CreatedAt: now}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, sooner))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "sooner", events[0].ID)
	require.Equal(t, "later", events[1].ID)
}

func TestEventRepository_Delete_CascadesParties(t *testing.T) {
	db := NewTestDB(t)
	eventRepo := NewEventRepository(db)
	partyRepo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	eventID := seedEvent(t, db, "creator")

	p, slots := mageAndFreeParty("creator")
	p.EventID = &eventID
	require.NoError(t, partyRepo.Create(ctx, p, slots))

	require.NoError(t, eventRepo.Delete(ctx, eventID))

	_, _, err := partyRepo.Get(ctx, p.ID)
	require.ErrorIs(t, err, repository.ErrNotFound, "scoped parties share the event's lifetime")
}

func TestEventRepository_Delete_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)

	err := repo.Delete(context.Background(), "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
