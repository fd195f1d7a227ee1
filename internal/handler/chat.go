package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danhyun/motiday/internal/model"
	"github.com/danhyun/motiday/internal/state"
	"github.com/danhyun/motiday/internal/websocket"
)

type ChatHandler struct {
	state  *state.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewChatHandler(st *state.Store, hub *websocket.Hub, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{state: st, hub: hub, logger: logger}
}

// List returns the user's direct chat rooms.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	chats := h.state.Chats()
	if chats == nil {
		chats = []model.ChatRoom{}
	}
	writeJSON(w, http.StatusOK, chats)
}

type startChatRequest struct {
	PartnerID   string `json:"partner_id"`
	PartnerName string `json:"partner_name"`
	PartnerImg  string `json:"partner_img"`
}

// Start opens (or returns the existing) direct chat room with a partner.
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.PartnerID) == "" {
		writeError(w, http.StatusBadRequest, "partner_id is required")
		return
	}

	room, err := h.state.StartChat(req.PartnerID, req.PartnerName, req.PartnerImg)
	if err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

type messageRequest struct {
	Text string `json:"text"`
}

// Send appends a message to a direct chat room.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	msg, err := h.state.SendMessage(roomID, req.Text)
	if err != nil {
		writeStateError(w, err)
		return
	}

	h.hub.Broadcast(websocket.NewEvent("chat", "message", msg.ID, map[string]any{"room_id": roomID}))
	writeJSON(w, http.StatusCreated, msg)
}

// ClubMessages returns a club's group chat history.
func (h *ChatHandler) ClubMessages(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")
	msgs := h.state.ClubChat(clubID)
	if msgs == nil {
		msgs = []model.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// SendClubMessage appends a text message to a club's group chat.
func (h *ChatHandler) SendClubMessage(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	msg, err := h.state.SendClubMessage(clubID, req.Text)
	if err != nil {
		writeStateError(w, err)
		return
	}

	h.hub.BroadcastClub(clubID, websocket.NewEvent("chat", "message", msg.ID, nil))
	writeJSON(w, http.StatusCreated, msg)
}
