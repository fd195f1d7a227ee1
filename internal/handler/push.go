package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danhyun/motiday/internal/auth"
	"github.com/danhyun/motiday/internal/push"
)

type PushHandler struct {
	subs    *push.SubscriptionStore
	service *push.Service
	logger  *slog.Logger
}

func NewPushHandler(subs *push.SubscriptionStore, svc *push.Service, logger *slog.Logger) *PushHandler {
	return &PushHandler{subs: subs, service: svc, logger: logger}
}

type subscribeRequest struct {
	Endpoint   string `json:"endpoint"`
	P256dh     string `json:"p256dh"`
	Auth       string `json:"auth"`
	DeviceName string `json:"device_name"`
}

// Subscribe registers a browser push subscription for reminder delivery.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountID(r.Context())

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Endpoint == "" || req.P256dh == "" || req.Auth == "" {
		writeError(w, http.StatusBadRequest, "endpoint, p256dh, and auth are required")
		return
	}

	sub, err := h.subs.Create(accountID, req.Endpoint, req.P256dh, req.Auth, req.DeviceName)
	if err != nil {
		h.logger.Error("create push subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save subscription")
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// Unsubscribe removes one of the caller's subscriptions.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountID(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.subs.Delete(id, accountID); err != nil {
		h.logger.Error("delete push subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSubscriptions lists the caller's registered devices.
func (h *PushHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountID(r.Context())

	subs, err := h.subs.ListByAccount(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}
	if subs == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// GetVAPIDKey exposes the public key browsers need to subscribe.
func (h *PushHandler) GetVAPIDKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"public_key": h.service.VAPIDPublicKey()})
}

// TestNotification sends an immediate test push to every device of the caller.
func (h *PushHandler) TestNotification(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountID(r.Context())

	subs, err := h.subs.ListByAccount(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}

	payload := push.Payload{
		Title: "Test Notification",
		Body:  "Push notifications are working!",
		Tag:   "test",
	}

	sent := 0
	for i := range subs {
		if err := h.service.Send(&subs[i], payload); err != nil {
			h.logger.Error("test push send", "error", err)
			continue
		}
		sent++
	}

	writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}
