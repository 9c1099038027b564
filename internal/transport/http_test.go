package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ganot/guildhall/internal/domain/announcement"
	"github.com/ganot/guildhall/internal/domain/chat"
	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/notify"
	"github.com/ganot/guildhall/internal/sqlite"
	"github.com/ganot/guildhall/internal/transport"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type harness struct {
	t      *testing.T
	router http.Handler
	db     *sqlite.DB
}

// newHarness assembles the whole stack over an in-memory database, wired the
// same way the server binary does it.
func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rosterSvc := roster.NewService(sqlite.NewRosterRepository(db), logger)
	chatSvc := chat.NewService(sqlite.NewChatRepository(db), logger)
	dispatcher := notify.NewDispatcher(sqlite.NewDeviceRepository(db), logger)
	partySvc := party.NewService(sqlite.NewPartyRepository(db), sqlite.NewRosterRepository(db), dispatcher, chatSvc, logger)
	eventSvc := event.NewService(sqlite.NewEventRepository(db), logger)
	announcementSvc := announcement.NewService(sqlite.NewAnnouncementRepository(db), logger)

	auth := transport.NewAuthenticator(testSecret, rosterSvc)
	router := transport.NewRouter(transport.Services{
		Roster:        rosterSvc,
		Parties:       partySvc,
		Events:        eventSvc,
		Chat:          chatSvc,
		Announcements: announcementSvc,
		Notify:        dispatcher,
	}, auth, logger)

	return &harness{t: t, router: router, db: db}
}

// seedActive inserts an approved member directly, bypassing the application
// flow.
func (h *harness) seedActive(id string, class roster.Class, role roster.Role) {
	h.t.Helper()

	err := sqlite.NewRosterRepository(h.db).Create(context.Background(), &roster.Member{
		ID:          id,
		DisplayName: id,
		Class:       class,
		Role:        role,
		Status:      roster.StatusActive,
		CreatedAt:   time.Now(),
	})
	require.NoError(h.t, err)
}

func (h *harness) token(subject string) string {
	h.t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(h.t, err)
	return signed
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthentication(t *testing.T) {
	h := newHarness(t)
	h.seedActive("vet", roster.ClassWarrior, roster.RoleMember)

	t.Run("missing token", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/api/parties/", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/api/parties/", "not-a-jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "vet"})
		signed, err := forged.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		rec := h.do(http.MethodGet, "/api/parties/", signed, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/api/parties/", h.token("vet"), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMembershipFlow(t *testing.T) {
	h := newHarness(t)
	h.seedActive("boss", roster.ClassPriest, roster.RoleLeader)

	newbie := h.token("newbie")

	// Unapproved subjects cannot reach guild routes.
	rec := h.do(http.MethodGet, "/api/parties/", newbie, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// But they can apply.
	rec = h.do(http.MethodPost, "/api/roster/apply", newbie, map[string]any{
		"display_name": "Newbie",
		"class":        "ARCHER",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	applied := decodeBody[roster.Member](t, rec)
	require.Equal(t, roster.StatusPending, applied.Status)

	// Still pending, still locked out.
	rec = h.do(http.MethodGet, "/api/parties/", newbie, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Applying twice conflicts.
	rec = h.do(http.MethodPost, "/api/roster/apply", newbie, map[string]any{
		"display_name": "Newbie",
		"class":        "ARCHER",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// A plain member cannot approve.
	h.seedActive("peon", roster.ClassRogue, roster.RoleMember)
	rec = h.do(http.MethodPost, "/api/roster/newbie/approve", h.token("peon"), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The leader approves.
	rec = h.do(http.MethodPost, "/api/roster/newbie/approve", h.token("boss"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	approved := decodeBody[roster.Member](t, rec)
	require.Equal(t, roster.StatusActive, approved.Status)

	// The member is in.
	rec = h.do(http.MethodGet, "/api/roster/me", newbie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[roster.Member](t, rec)
	require.Equal(t, roster.StatusActive, me.Status)

	rec = h.do(http.MethodGet, "/api/parties/", newbie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPartyLifecycle(t *testing.T) {
	h := newHarness(t)
	h.seedActive("creator", roster.ClassWarrior, roster.RoleMember)
	h.seedActive("joiner", roster.ClassMage, roster.RoleMember)
	h.seedActive("latecomer", roster.ClassRogue, roster.RoleMember)

	creator := h.token("creator")
	joiner := h.token("joiner")
	latecomer := h.token("latecomer")

	// Create: warrior slot for the creator plus one free slot.
	rec := h.do(http.MethodPost, "/api/parties/", creator, map[string]any{
		"name": "Dungeon Run",
		"composition": []map[string]any{
			{"requirement": "WARRIOR", "count": 1},
			{"requirement": "FREE", "count": 1},
		},
		"creator_slot": "WARRIOR",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decodeBody[party.View](t, rec)
	require.False(t, view.IsClosed)
	require.Len(t, view.Slots, 2)
	require.NotNil(t, view.Slots[0].Occupant)
	require.Equal(t, "creator", view.Slots[0].Occupant.ID)
	require.Len(t, view.Members, 1)

	partyID := view.ID
	freeSlot := view.Slots[1].ID

	// The companion channel was provisioned.
	rec = h.do(http.MethodGet, "/api/channels/", creator, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	channels := decodeBody[[]chat.Channel](t, rec)
	require.Len(t, channels, 1)
	require.NotNil(t, channels[0].PartyID)
	require.Equal(t, partyID, *channels[0].PartyID)

	// A free slot demands a class.
	rec = h.do(http.MethodPost, "/api/parties/"+partyID+"/slots/"+freeSlot+"/claim", joiner, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Claiming the last open slot closes the party.
	rec = h.do(http.MethodPost, "/api/parties/"+partyID+"/slots/"+freeSlot+"/claim", joiner, map[string]any{
		"selected_class": "MAGE",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[party.View](t, rec)
	require.True(t, view.IsClosed)
	require.Len(t, view.Members, 2)
	require.NotNil(t, view.Slots[1].Occupant)
	require.Equal(t, roster.ClassMage, view.Slots[1].Occupant.Class)

	// A closed party rejects further claims.
	rec = h.do(http.MethodPost, "/api/parties/"+partyID+"/slots/"+freeSlot+"/claim", latecomer, map[string]any{
		"selected_class": "ROGUE",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// A non-member cannot leave.
	rec = h.do(http.MethodPost, "/api/parties/"+partyID+"/leave", latecomer, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Leaving reopens the party and recycles the slot.
	rec = h.do(http.MethodPost, "/api/parties/"+partyID+"/leave", joiner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[party.View](t, rec)
	require.False(t, view.IsClosed)
	require.Len(t, view.Slots, 2)
	require.Nil(t, view.Slots[1].Occupant)

	// Only the creator or a leader manages the party.
	rec = h.do(http.MethodPut, "/api/parties/"+partyID, latecomer, map[string]any{"name": "Hijacked"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPut, "/api/parties/"+partyID, creator, map[string]any{
		"name":        "Renamed Run",
		"description": "now with a description",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[party.View](t, rec)
	require.Equal(t, "Renamed Run", view.Name)

	rec = h.do(http.MethodDelete, "/api/parties/"+partyID, creator, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodGet, "/api/parties/"+partyID, creator, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPartyValidation(t *testing.T) {
	h := newHarness(t)
	h.seedActive("creator", roster.ClassWarrior, roster.RoleMember)
	creator := h.token("creator")

	t.Run("invalid composition", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/api/parties/", creator, map[string]any{
			"name": "Solo",
			"composition": []map[string]any{
				{"requirement": "WARRIOR", "count": 1},
			},
			"creator_slot": "WARRIOR",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("creator slot absent from composition", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/api/parties/", creator, map[string]any{
			"name": "No Seat",
			"composition": []map[string]any{
				{"requirement": "MAGE", "count": 2},
			},
			"creator_slot": "WARRIOR",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown event scope", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/api/parties/", creator, map[string]any{
			"name":     "Ghost Raid",
			"event_id": "no-such-event",
			"composition": []map[string]any{
				{"requirement": "WARRIOR", "count": 2},
			},
			"creator_slot": "WARRIOR",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventScopedParties(t *testing.T) {
	h := newHarness(t)
	h.seedActive("boss", roster.ClassPriest, roster.RoleLeader)
	boss := h.token("boss")

	rec := h.do(http.MethodPost, "/api/events/", boss, map[string]any{
		"title":     "Raid Night",
		"starts_at": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	ev := decodeBody[event.Event](t, rec)

	rec = h.do(http.MethodPost, "/api/parties/", boss, map[string]any{
		"name":     "Raid Group 1",
		"event_id": ev.ID,
		"composition": []map[string]any{
			{"requirement": "PRIEST", "count": 1},
			{"requirement": "FREE", "count": 2},
		},
		"creator_slot": "PRIEST",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	scoped := decodeBody[party.View](t, rec)

	// The scoped party shows up under its event only.
	rec = h.do(http.MethodGet, "/api/parties/?event_id="+ev.ID, boss, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	views := decodeBody[[]party.View](t, rec)
	require.Len(t, views, 1)
	require.Equal(t, scoped.ID, views[0].ID)

	rec = h.do(http.MethodGet, "/api/parties/", boss, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	views = decodeBody[[]party.View](t, rec)
	require.Empty(t, views)

	// Deleting the event takes its parties with it.
	rec = h.do(http.MethodDelete, "/api/events/"+ev.ID, boss, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodGet, "/api/parties/"+scoped.ID, boss, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatRoutes(t *testing.T) {
	h := newHarness(t)
	h.seedActive("m1", roster.ClassMage, roster.RoleMember)
	m1 := h.token("m1")

	rec := h.do(http.MethodPost, "/api/channels/", m1, map[string]any{"name": "general"})
	require.Equal(t, http.StatusCreated, rec.Code)
	ch := decodeBody[chat.Channel](t, rec)

	rec = h.do(http.MethodPost, "/api/channels/"+ch.ID+"/messages", m1, map[string]any{"body": "hello"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(http.MethodGet, "/api/channels/"+ch.ID+"/messages", m1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	messages := decodeBody[[]chat.Message](t, rec)
	require.Len(t, messages, 1)
	require.Equal(t, "hello", messages[0].Body)

	rec = h.do(http.MethodPost, "/api/channels/ghost/messages", m1, map[string]any{"body": "hello"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnnouncementRoutes(t *testing.T) {
	h := newHarness(t)
	h.seedActive("boss", roster.ClassPriest, roster.RoleLeader)
	h.seedActive("peon", roster.ClassRogue, roster.RoleMember)

	rec := h.do(http.MethodPost, "/api/announcements/", h.token("peon"), map[string]any{
		"title": "Coup",
		"body":  "I am in charge now",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPost, "/api/announcements/", h.token("boss"), map[string]any{
		"title":  "Maintenance",
		"body":   "Server down tonight",
		"pinned": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(http.MethodGet, "/api/announcements/", h.token("peon"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]announcement.Announcement](t, rec)
	require.Len(t, list, 1)
	require.True(t, list[0].Pinned)
}

func TestDeviceRoutes(t *testing.T) {
	h := newHarness(t)
	h.seedActive("m1", roster.ClassMage, roster.RoleMember)
	m1 := h.token("m1")

	rec := h.do(http.MethodPost, "/api/devices", m1, map[string]any{
		"platform": "ios",
		"token":    "tok-1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodPost, "/api/devices", m1, map[string]any{"platform": "ios", "token": ""})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = h.do(http.MethodDelete, "/api/devices/tok-1", m1, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
