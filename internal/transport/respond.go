package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ganot/guildhall/internal/domain/announcement"
	"github.com/ganot/guildhall/internal/domain/chat"
	"github.com/ganot/guildhall/internal/domain/event"
	"github.com/ganot/guildhall/internal/domain/party"
	"github.com/ganot/guildhall/internal/domain/roster"
	"github.com/ganot/guildhall/internal/notify"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the HTTP error taxonomy:
// validation 422, not found 404, conflict 409, forbidden 403.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case isValidation(err):
		return http.StatusUnprocessableEntity
	case isNotFound(err):
		return http.StatusNotFound
	case isConflict(err):
		return http.StatusConflict
	case isForbidden(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func isValidation(err error) bool {
	return errors.Is(err, party.ErrInvalidInput) ||
		errors.Is(err, party.ErrInvalidComposition) ||
		errors.Is(err, party.ErrCreatorSlotMissing) ||
		errors.Is(err, party.ErrClassRequired) ||
		errors.Is(err, roster.ErrInvalidInput) ||
		errors.Is(err, event.ErrInvalidInput) ||
		errors.Is(err, chat.ErrInvalidInput) ||
		errors.Is(err, announcement.ErrInvalidInput) ||
		errors.Is(err, notify.ErrInvalidDevice)
}

func isNotFound(err error) bool {
	return errors.Is(err, party.ErrPartyNotFound) ||
		errors.Is(err, party.ErrSlotNotFound) ||
		errors.Is(err, party.ErrEventNotFound) ||
		errors.Is(err, roster.ErrMemberNotFound) ||
		errors.Is(err, event.ErrEventNotFound) ||
		errors.Is(err, chat.ErrChannelNotFound) ||
		errors.Is(err, announcement.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, party.ErrPartyClosed) ||
		errors.Is(err, party.ErrAlreadyMember) ||
		errors.Is(err, party.ErrSlotFilled) ||
		errors.Is(err, party.ErrNotMember) ||
		errors.Is(err, roster.ErrNotPending) ||
		errors.Is(err, roster.ErrDuplicateMember)
}

func isForbidden(err error) bool {
	return errors.Is(err, party.ErrForbidden) ||
		errors.Is(err, roster.ErrForbidden) ||
		errors.Is(err, event.ErrForbidden) ||
		errors.Is(err, announcement.ErrForbidden)
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
