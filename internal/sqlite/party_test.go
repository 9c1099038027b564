package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedMember(t *testing.T, db *DB, id string, class roster.Class) {
	t.Helper()

	repo := NewRosterRepository(db)
	err := repo.Create(context.Background(), &roster.Member{
		ID:          id,
		DisplayName: id,
		Class:       class,
		Role:        roster.RoleMember,
		Status:      roster.StatusActive,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
}

// mageAndFreeParty builds a two-slot party with the creator seated in the
// MAGE slot and the FREE slot open.
func mageAndFreeParty(creatorID string) (*party.Party, []party.Slot) {
	p := &party.Party{
		ID:        uuid.NewString(),
		Name:      "Dungeon Run",
		CreatedBy: creatorID,
		CreatedAt: time.Now(),
	}
	slots := []party.Slot{
		{ID: uuid.NewString(), PartyID: p.ID, Position: 0, Required: party.SlotRequirement(roster.ClassMage), OccupantID: &creatorID},
		{ID: uuid.NewString(), PartyID: p.ID, Position: 1, Required: party.Free},
	}
	return p, slots
}

func seedEvent(t *testing.T, db *DB, createdBy string) string {
	t.Helper()

	id := uuid.NewString()
	err := NewEventRepository(db).Create(context.Background(), &event.Event{
		ID:        id,
		Title:     "Raid Night",
		StartsAt:  time.Now().Add(24 * time.Hour),
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func TestPartyRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	p, slots := mageAndFreeParty("creator")

	err := repo.Create(ctx, p, slots)
	require.NoError(t, err)

	got, gotSlots, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, p.Name, got.Name)
	require.False(t, got.IsClosed)
	require.Nil(t, got.EventID)

	require.Len(t, gotSlots, 2)
	require.Equal(t, slots[0].ID, gotSlots[0].ID)
	require.Equal(t, slots[1].ID, gotSlots[1].ID)
	require.Equal(t, party.SlotRequirement(roster.ClassMage), gotSlots[0].Required)
	require.NotNil(t, gotSlots[0].OccupantID)
	require.Equal(t, "creator", *gotSlots[0].OccupantID)
	// The class is implied by the requirement; no resolved class.
	require.Nil(t, gotSlots[0].ResolvedClass)
	require.Nil(t, gotSlots[1].OccupantID)
}

func TestPartyRepository_Create_UnknownEvent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	p, slots := mageAndFreeParty("creator")
	eventID := "no-such-event"
	p.EventID = &eventID

	err := repo.Create(ctx, p, slots)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	// The failed transaction left nothing behind.
	_, _, err = repo.Get(ctx, p.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPartyRepository_Get_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)

	_, _, err := repo.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPartyRepository_Claim_FillsAndCloses(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	seedMember(t, db, "joiner", roster.ClassArcher)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	archer := roster.ClassArcher
	closed, err := repo.Claim(ctx, p.ID, slots[1].ID, "joiner", &archer)
	require.NoError(t, err)
	require.True(t, closed, "claiming the last open slot closes the party")

	got, gotSlots, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.IsClosed)
	require.NotNil(t, gotSlots[1].OccupantID)
	require.Equal(t, "joiner", *gotSlots[1].OccupantID)
	require.NotNil(t, gotSlots[1].ResolvedClass)
	require.Equal(t, roster.ClassArcher, *gotSlots[1].ResolvedClass)
}

func TestPartyRepository_Claim_SlotFilled(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	seedMember(t, db, "joiner", roster.ClassWarrior)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	// The creator's slot is taken.
	_, err := repo.Claim(ctx, p.ID, slots[0].ID, "joiner", nil)
	require.ErrorIs(t, err, party.ErrSlotFilled)
}

func TestPartyRepository_Claim_AlreadyMember(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	mage := roster.ClassMage
	_, err := repo.Claim(ctx, p.ID, slots[1].ID, "creator", &mage)
	require.ErrorIs(t, err, party.ErrAlreadyMember)
}

func TestPartyRepository_Claim_SlotNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	seedMember(t, db, "joiner", roster.ClassWarrior)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	_, err := repo.Claim(ctx, p.ID, "no-such-slot", "joiner", nil)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPartyRepository_Claim_Race(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	const claimants = 8
	claimErrs := make([]error, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		id := string(rune('a' + i))
		seedMember(t, db, id, roster.ClassWarrior)
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			warrior := roster.ClassWarrior
			_, claimErrs[i] = repo.Claim(ctx, p.ID, slots[1].ID, id, &warrior)
		}(i, id)
	}
	wg.Wait()

	winners := 0
	for _, err := range claimErrs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, party.ErrSlotFilled)
		}
	}
	require.Equal(t, 1, winners, "exactly one claimant wins the slot")

	_, gotSlots, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, gotSlots[1].OccupantID)
}

func TestPartyRepository_Release_RoundTrip(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	seedMember(t, db, "joiner", roster.ClassArcher)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	_, beforeSlots, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)

	archer := roster.ClassArcher
	closed, err := repo.Claim(ctx, p.ID, slots[1].ID, "joiner", &archer)
	require.NoError(t, err)
	require.True(t, closed)

	err = repo.Release(ctx, p.ID, "joiner")
	require.NoError(t, err)

	after, afterSlots, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, after.IsClosed, "the vacancy reopens the party")
	require.Equal(t, beforeSlots, afterSlots, "claim then release restores occupancy exactly")
}

func TestPartyRepository_Release_NotMember(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	seedMember(t, db, "outsider", roster.ClassRogue)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	err := repo.Release(ctx, p.ID, "outsider")
	require.ErrorIs(t, err, party.ErrNotMember)
}

func TestPartyRepository_Delete_Cascades(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, _, err := repo.Get(ctx, p.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM slots WHERE party_id = ?", p.ID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "slots cascade with their party")
}

func TestPartyRepository_Delete_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)

	err := repo.Delete(context.Background(), "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPartyRepository_List_Scope(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)

	eventID := seedEvent(t, db, "creator")

	global, globalSlots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, global, globalSlots))

	scoped, scopedSlots := mageAndFreeParty("creator")
	scoped.EventID = &eventID
	require.NoError(t, repo.Create(ctx, scoped, scopedSlots))

	globals, err := repo.List(ctx, party.ListOptions{})
	require.NoError(t, err)
	require.Len(t, globals, 1)
	require.Equal(t, global.ID, globals[0].Party.ID)
	require.Len(t, globals[0].Slots, 2)

	scopedList, err := repo.List(ctx, party.ListOptions{EventID: &eventID})
	require.NoError(t, err)
	require.Len(t, scopedList, 1)
	require.Equal(t, scoped.ID, scopedList[0].Party.ID)
}

func TestPartyRepository_UpdateInfo(t *testing.T) {
	db := NewTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	seedMember(t, db, "creator", roster.ClassMage)
	p, slots := mageAndFreeParty("creator")
	require.NoError(t, repo.Create(ctx, p, slots))

	err := repo.UpdateInfo(ctx, p.ID, "Renamed", "new description")
	require.NoError(t, err)

	got, gotSlots, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, "new description", got.Description)
	require.Len(t, gotSlots, 2, "rename leaves composition untouched")

	err = repo.UpdateInfo(ctx, "nonexistent", "x", "")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
