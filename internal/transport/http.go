package transport

import (
	"log/slog"
	"net/http"

	"github.com/ganot/guildhall/internal/domain/announcement"
	"github.com/ganot/guildhall/internal/domain/chat"
	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/notify"
	"github.com/go-chi/chi/v5"
)

// Services groups the domain services behind the HTTP surface.
type Services struct {
	Roster        *roster.Service
	Parties       *party.Service
	Events        *event.Service
	Chat          *chat.Service
	Announcements *announcement.Service
	Notify        *notify.Dispatcher
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewRouter creates the HTTP router with auth middleware applied.
func NewRouter(svc Services, auth *Authenticator, logger *slog.Logger) *chi.Mux {
	srv := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		// Reachable before approval: applying and checking one's own status.
		r.Post("/roster/apply", srv.handleApply)
		r.Get("/roster/me", srv.handleMe)

		r.Group(func(r chi.Router) {
			r.Use(RequireActive)

			r.Get("/roster", srv.handleListRoster)
			r.Put("/roster/me", srv.handleUpdateProfile)
			r.Post("/roster/{id}/approve", srv.handleApprove)
			r.Post("/roster/{id}/reject", srv.handleReject)

			r.Route("/parties", func(r chi.Router) {
				r.Get("/", srv.handleListParties)
				r.Post("/", srv.handleCreateParty)
				r.Get("/{id}", srv.handleGetParty)
				r.Put("/{id}", srv.handleRenameParty)
				r.Delete("/{id}", srv.handleDeleteParty)
				r.Post("/{id}/slots/{slotID}/claim", srv.handleJoinSlot)
				r.Post("/{id}/leave", srv.handleLeaveParty)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", srv.handleListEvents)
				r.Post("/", srv.handleCreateEvent)
				r.Get("/{id}", srv.handleGetEvent)
				r.Delete("/{id}", srv.handleDeleteEvent)
			})

			r.Route("/channels", func(r chi.Router) {
				r.Get("/", srv.handleListChannels)
				r.Post("/", srv.handleCreateChannel)
				r.Get("/{id}/messages", srv.handleListMessages)
				r.Post("/{id}/messages", srv.handlePostMessage)
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", srv.handleListAnnouncements)
				r.Post("/", srv.handlePostAnnouncement)
				r.Delete("/{id}", srv.handleDeleteAnnouncement)
			})

			r.Post("/devices", srv.handleRegisterDevice)
			r.Delete("/devices/{token}", srv.handleUnregisterDevice)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// caller returns the approved roster member behind the request. Routes under
// RequireActive always have one.
func caller(r *http.Request) *roster.Member {
	ident, _ := IdentityFromContext(r.Context())
	return ident.Member
}
