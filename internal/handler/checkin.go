package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danhyun/motiday/internal/level"
	"github.com/danhyun/motiday/internal/metrics"
	"github.com/danhyun/motiday/internal/model"
	"github.com/danhyun/motiday/internal/state"
	"github.com/danhyun/motiday/internal/websocket"
)

type CheckInHandler struct {
	state  *state.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewCheckInHandler(st *state.Store, hub *websocket.Hub, logger *slog.Logger) *CheckInHandler {
	return &CheckInHandler{state: st, hub: hub, logger: logger}
}

type checkInBody struct {
	ClubID string `json:"club_id"`
	Text   string `json:"text"`
	Image  string `json:"image"`
}

// CheckIn submits today's check-in. One call touches the feed, the club chat,
// the per-day flag and the lifetime counter; connected clients hear about all
// of it.
func (h *CheckInHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var body checkInBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	res, err := h.state.CheckIn(state.CheckInRequest{Text: body.Text, Image: body.Image}, body.ClubID)
	if err != nil {
		writeStateError(w, err)
		return
	}

	metrics.CheckinsTotal.Inc()
	h.hub.BroadcastClub(res.Item.ClubID, websocket.NewEvent("checkin", "created", res.Item.ID, nil))
	if res.LevelUp != nil {
		h.hub.Broadcast(websocket.NewEvent("level", "up", "", map[string]any{
			"name": res.LevelUp.Name,
		}))
		h.logger.Info("level up", "level", res.LevelUp.Name)
	}

	writeJSON(w, http.StatusCreated, res)
}

// Feed returns the activity feed, newest first.
func (h *CheckInHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed := h.state.Feed()
	if feed == nil {
		feed = []model.FeedItem{}
	}
	writeJSON(w, http.StatusOK, feed)
}

// React toggles the caller's reaction on a feed item.
func (h *CheckInHandler) React(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, err := h.state.React(id)
	if err != nil {
		writeStateError(w, err)
		return
	}

	h.hub.BroadcastClub(item.ClubID, websocket.NewEvent("feed", "reacted", item.ID, nil))
	writeJSON(w, http.StatusOK, item)
}

type focusRequest struct {
	Seconds int64 `json:"seconds"`
}

// AddFocus accumulates completed focus-timer seconds.
func (h *CheckInHandler) AddFocus(w http.ResponseWriter, r *http.Request) {
	var req focusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	total, err := h.state.AddFocusTime(req.Seconds)
	if err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_focus_seconds": total})
}

type statsResponse struct {
	CheckInCount      int          `json:"check_in_count"`
	CurrentStreak     int          `json:"current_streak"`
	MissedDayPrompt   bool         `json:"missed_day_prompt"`
	TotalFocusSeconds int64        `json:"total_focus_seconds"`
	Level             level.Level  `json:"level"`
	NextLevel         *level.Level `json:"next_level,omitempty"`
}

// Stats reports the counters the home screen renders.
func (h *CheckInHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := h.state.User()
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	current := level.ForCount(h.state.CheckInCount(), user.CompletedRoutines)
	resp := statsResponse{
		CheckInCount:      h.state.CheckInCount(),
		CurrentStreak:     h.state.CurrentStreak(),
		MissedDayPrompt:   h.state.MissedDayPrompt(),
		TotalFocusSeconds: h.state.TotalFocusSeconds(),
		Level:             current,
	}
	if next, ok := level.Next(current); ok {
		resp.NextLevel = &next
	}
	writeJSON(w, http.StatusOK, resp)
}
