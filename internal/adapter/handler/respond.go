package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tumansdev/angthong-poolvilla/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps the core's typed errors to HTTP statuses. Persistence
// failures stay opaque to the caller.
func writeError(w http.ResponseWriter, err error) {
	var missing *domain.MissingFieldError
	var conflict *domain.DateConflictError
	var transition *domain.InvalidTransitionError
	var persistence *domain.PersistenceError

	switch {
	case errors.As(err, &missing):
		writeErrorMessage(w, http.StatusBadRequest, missing.Error())
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrGuestLimit):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrVillaNotFound), errors.Is(err, domain.ErrBookingNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":             conflict.Error(),
			"conflictBookingId": conflict.ConflictID,
		})
	case errors.As(err, &transition):
		writeErrorMessage(w, http.StatusConflict, transition.Error())
	case errors.As(err, &persistence):
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	default:
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
