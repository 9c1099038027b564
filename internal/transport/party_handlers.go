package transport

import (
	"net/http"

	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/go-chi/chi/v5"
)

type createPartyRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	EventID     *string                  `json:"event_id,omitempty"`
	Composition []party.CompositionEntry `json:"composition"`
	CreatorSlot party.SlotRequirement    `json:"creator_slot"`
}

func (s *Server) handleCreateParty(w http.ResponseWriter, r *http.Request) {
	var req createPartyRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := s.svc.Parties.Create(r.Context(), caller(r), party.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		EventID:     req.EventID,
		Composition: req.Composition,
		CreatorSlot: req.CreatorSlot,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListParties(w http.ResponseWriter, r *http.Request) {
	var opts party.ListOptions
	if eventID := r.URL.Query().Get("event_id"); eventID != "" {
		opts.EventID = &eventID
	}

	views, err := s.svc.Parties.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetParty(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Parties.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

type joinSlotRequest struct {
	SelectedClass *roster.Class `json:"selected_class,omitempty"`
}

func (s *Server) handleJoinSlot(w http.ResponseWriter, r *http.Request) {
	var req joinSlotRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	view, err := s.svc.Parties.Join(r.Context(), caller(r), party.JoinRequest{
		PartyID:       chi.URLParam(r, "id"),
		SlotID:        chi.URLParam(r, "slotID"),
		SelectedClass: req.SelectedClass,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleLeaveParty(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Parties.Leave(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

type renamePartyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleRenameParty(w http.ResponseWriter, r *http.Request) {
	var req renamePartyRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	view, err := s.svc.Parties.Rename(r.Context(), caller(r), party.RenameRequest{
		PartyID:     chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteParty(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Parties.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
