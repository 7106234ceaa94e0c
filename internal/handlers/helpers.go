package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"souq/internal/models"
)

// UserIDHeader carries the acting user's identity, resolved upstream by the
// authentication collaborator. Core operations take the user as an explicit
// parameter; nothing below the handlers inspects ambient request state.
const UserIDHeader = "X-User-ID"

func requestUserID(r *http.Request) string {
	return r.Header.Get(UserIDHeader)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondError maps the error taxonomy to HTTP statuses. Unrecognized
// errors become a 500; checkout uses its own mapping for processor
// failures.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrCartNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrReviewNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, models.ErrDuplicateCartItem),
		errors.Is(err, models.ErrDuplicateReview):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, models.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, models.ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": err.Error(),
	})
}
