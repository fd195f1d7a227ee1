package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danhyun/motiday/internal/model"
	"github.com/danhyun/motiday/internal/state"
)

type EconomyHandler struct {
	state  *state.Store
	logger *slog.Logger
}

func NewEconomyHandler(st *state.Store, logger *slog.Logger) *EconomyHandler {
	return &EconomyHandler{state: st, logger: logger}
}

type walletResponse struct {
	Points      int            `json:"points"`
	Inventory   []string       `json:"inventory"`
	ShieldCount int            `json:"shield_count"`
	ActiveBet   *model.Bet     `json:"active_bet"`
	Savings     *model.Savings `json:"active_savings"`
}

func (h *EconomyHandler) wallet() walletResponse {
	inv := h.state.Inventory()
	if inv == nil {
		inv = []string{}
	}
	return walletResponse{
		Points:      h.state.Points(),
		Inventory:   inv,
		ShieldCount: h.state.ShieldCount(),
		ActiveBet:   h.state.ActiveBet(),
		Savings:     h.state.ActiveSavings(),
	}
}

// Wallet reports the full points economy snapshot.
func (h *EconomyHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	if h.state.User() == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, h.wallet())
}

type purchaseRequest struct {
	ItemID string `json:"item_id"`
	Price  int    `json:"price"`
}

// Purchase deducts points and adds the item to the inventory.
func (h *EconomyHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	if err := h.state.PurchaseItem(req.ItemID, req.Price); err != nil {
		writeStateError(w, err)
		return
	}

	h.logger.Info("item purchased", "item", req.ItemID, "price", req.Price)
	writeJSON(w, http.StatusOK, h.wallet())
}

type amountRequest struct {
	Amount int `json:"amount"`
}

// PlaceBet locks points into the single active bet slot.
func (h *EconomyHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	bet, err := h.state.PlaceBet(req.Amount)
	if err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bet)
}

// StartSavings locks points into the single active savings slot.
func (h *EconomyHandler) StartSavings(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sav, err := h.state.StartSavings(req.Amount)
	if err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sav)
}

// UseShield consumes one streak shield to dismiss the missed-day prompt and
// restore the streak the miss wiped out.
func (h *EconomyHandler) UseShield(w http.ResponseWriter, r *http.Request) {
	if err := h.state.UseShield(); err != nil {
		writeStateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"shield_count":   h.state.ShieldCount(),
		"current_streak": h.state.CurrentStreak(),
	})
}
