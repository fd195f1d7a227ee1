package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danhyun/motiday/internal/model"
	"github.com/danhyun/motiday/internal/state"
	"github.com/danhyun/motiday/internal/websocket"
)

// catalog is the fixed set of clubs open for joining.
var catalog = []model.Club{
	{ID: "c1", Title: "Iron Keeper's Gains Club", MakerName: "Iron Keeper", Description: "Calories burned today never betray you. Leg day welcome!", Category: "Gym", Icon: "💪", Price: 0, MemberCount: 1560},
	{ID: "c2", Title: "Flowmaker's Classic Pilates", MakerName: "Flowmaker", Description: "Experience how one breath reshapes your line.", Category: "Pilates", Icon: "🧘‍♀️", Price: 19900, MemberCount: 840},
	{ID: "c3", Title: "Day by Day's Meals + Workout", MakerName: "Day by Day", Description: "No starving. Clean meals and home workouts, the complete combo.", Category: "Diet", Icon: "🥗", Price: 15000, MemberCount: 2200},
	{ID: "c4", Title: "Only You's Graceful Barre Challenge", MakerName: "Only You", Description: "Four weeks toward long lean muscle and upright posture.", Category: "Barre", Icon: "🩰", Price: 25000, MemberCount: 430},
	{ID: "c5", Title: "WOD Artisan's Inferno CrossFit", MakerName: "WOD Artisan", Description: "A fresh routine every day. Build real stamina together.", Category: "CrossFit", Icon: "🏋️‍♂️", Price: 0, MemberCount: 1890},
	{ID: "c6", Title: "Runner's High Morning Run", MakerName: "Runner's High", Description: "Running alone is lonely. Running together goes far.", Category: "Running", Icon: "🏃‍♂️", Price: 9900, MemberCount: 760},
}

type ClubHandler struct {
	state  *state.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewClubHandler(st *state.Store, hub *websocket.Hub, logger *slog.Logger) *ClubHandler {
	return &ClubHandler{state: st, hub: hub, logger: logger}
}

// Catalog lists the clubs available to join.
func (h *ClubHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog)
}

// List returns the clubs the user has joined, most recent first.
func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request) {
	clubs := h.state.Clubs()
	if clubs == nil {
		clubs = []model.JoinedClub{}
	}
	writeJSON(w, http.StatusOK, clubs)
}

type joinRequest struct {
	Club *model.Club `json:"club"`
}

// Join adds a catalog club (by path id) to the user's joined list. Joining a
// club already joined is a no-op. A club absent from the catalog can still be
// joined by sending its full record in the body.
func (h *ClubHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	club := catalogClub(id)
	if club == nil {
		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Club != nil && req.Club.ID == id {
			club = req.Club
		}
	}
	if club == nil {
		writeError(w, http.StatusNotFound, "club not found")
		return
	}

	if err := h.state.JoinClub(*club); err != nil {
		writeStateError(w, err)
		return
	}

	h.hub.Broadcast(websocket.NewEvent("club", "joined", club.ID, nil))
	h.logger.Info("club joined", "club", club.ID)
	writeJSON(w, http.StatusOK, h.state.Clubs())
}

// SetCurrent marks a joined club as the default target for check-ins.
func (h *ClubHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.state.SetCurrentClub(id); err != nil {
		writeStateError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func catalogClub(id string) *model.Club {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
