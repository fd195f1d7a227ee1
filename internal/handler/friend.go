package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danhyun/motiday/internal/state"
)

type FriendHandler struct {
	state  *state.Store
	logger *slog.Logger
}

func NewFriendHandler(st *state.Store, logger *slog.Logger) *FriendHandler {
	return &FriendHandler{state: st, logger: logger}
}

type friendsResponse struct {
	Friends      []string `json:"friends"`
	SentRequests []string `json:"sent_requests"`
}

// List returns the friend list and outstanding outgoing requests.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, friendsResponse{
		Friends:      h.state.Friends(),
		SentRequests: h.state.SentRequests(),
	})
}

type friendRequestBody struct {
	UserID string `json:"user_id"`
}

// Request sends a friend request to another user. Repeat requests are
// accepted and absorbed.
func (h *FriendHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req friendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.state.SendFriendRequest(req.UserID); err != nil {
		writeStateError(w, err)
		return
	}

	h.logger.Info("friend request sent", "to", req.UserID)
	writeJSON(w, http.StatusCreated, map[string]string{"user_id": req.UserID})
}
