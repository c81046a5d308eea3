package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/mauv0809/pickleball-courts/internal/club"
	"github.com/slack-go/slack"
)

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondWithSlackMsg writes a Slack message as a slash command response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Msg) {
	writeJSON(w, http.StatusOK, msg)
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Debug("Request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrInvalidRequest),
		errors.Is(err, club.ErrInvalidSlot),
		errors.Is(err, club.ErrMissingID):
		return http.StatusBadRequest
	case errors.Is(err, club.ErrCourtNotFound),
		errors.Is(err, club.ErrCoachNotFound),
		errors.Is(err, club.ErrSlotNotFound),
		errors.Is(err, club.ErrReservationNotFound),
		errors.Is(err, club.ErrClinicNotFound):
		return http.StatusNotFound
	case errors.Is(err, club.ErrSlotUnavailable),
		errors.Is(err, club.ErrReservationClosed),
		errors.Is(err, club.ErrClinicNotScheduled),
		errors.Is(err, club.ErrClinicFull),
		errors.Is(err, club.ErrAlreadyEnrolled),
		errors.Is(err, booking.ErrNotTemplate),
		errors.Is(err, booking.ErrClinicExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into v. Failures are reported as
// booking.ErrInvalidRequest so they map to 400.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", booking.ErrInvalidRequest, err)
	}
	return nil
}
