package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danhyun/motiday/internal/state"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStateError maps the store's sentinel errors onto HTTP statuses.
func writeStateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, state.ErrNotLoggedIn):
		writeError(w, http.StatusUnauthorized, "not logged in")
	case errors.Is(err, state.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, state.ErrIDReserved):
		writeError(w, http.StatusConflict, "id is taken")
	case errors.Is(err, state.ErrNoClubResolved):
		writeError(w, http.StatusBadRequest, "no club selected")
	case errors.Is(err, state.ErrInsufficientPoints):
		writeError(w, http.StatusPaymentRequired, "not enough points")
	case errors.Is(err, state.ErrBetActive):
		writeError(w, http.StatusConflict, "a bet is already active")
	case errors.Is(err, state.ErrSavingsActive):
		writeError(w, http.StatusConflict, "a savings goal is already active")
	case errors.Is(err, state.ErrNoShields):
		writeError(w, http.StatusConflict, "no shields held")
	case errors.Is(err, state.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, state.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "chat room not found")
	case errors.Is(err, state.ErrFeedItemNotFound):
		writeError(w, http.StatusNotFound, "feed item not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
