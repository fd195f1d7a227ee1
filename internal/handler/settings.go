package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danhyun/motiday/internal/model"
	"github.com/danhyun/motiday/internal/state"
)

type SettingsHandler struct {
	state  *state.Store
	logger *slog.Logger
}

func NewSettingsHandler(st *state.Store, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{state: st, logger: logger}
}

// Get returns the active account's settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.state.User() == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, h.state.Settings())
}

// Patch applies a partial settings update. Unknown fields are rejected.
func (h *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var patch model.SettingsPatch
	if err := dec.Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings payload")
		return
	}

	updated, err := h.state.UpdateSettings(patch)
	if err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
