package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danhyun/motiday/internal/middleware"
	"github.com/danhyun/motiday/internal/model"
	"github.com/danhyun/motiday/internal/state"
)

type AuthHandler struct {
	state  *state.Store
	logger *slog.Logger
}

func NewAuthHandler(st *state.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{state: st, logger: logger}
}

type credentialsRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type sessionResponse struct {
	User    *model.User `json:"user"`
	NewUser bool        `json:"new_user"`
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, token, err := h.state.Login(strings.TrimSpace(req.ID), req.Password)
	if err != nil {
		writeStateError(w, err)
		return
	}

	h.setSessionCookie(w, r, token)
	h.logger.Info("login", "account", user.ID, "role", user.Role)
	writeJSON(w, http.StatusOK, sessionResponse{User: user, NewUser: h.state.IsNewUser()})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.ID == "" || req.Password == "" || req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "id, password and nickname are required")
		return
	}

	user, token, err := h.state.Signup(req.Nickname, req.ID, req.Password)
	if err != nil {
		writeStateError(w, err)
		return
	}

	h.setSessionCookie(w, r, token)
	h.logger.Info("signup", "account", user.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{User: user, NewUser: true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		h.state.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount erases the logged-in account and its stored data, then clears
// the session cookie.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.state.DeleteAccount(); err != nil {
		writeStateError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	h.logger.Info("account deleted")
	w.WriteHeader(http.StatusNoContent)
}

type onboardingRequest struct {
	Settings  model.SettingsPatch `json:"settings"`
	AvatarURL string              `json:"avatar_url"`
}

func (h *AuthHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.state.CompleteOnboarding(req.Settings, req.AvatarURL); err != nil {
		writeStateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: h.state.User(), NewUser: false})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.state.User()
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: user, NewUser: h.state.IsNewUser()})
}

type profileImageRequest struct {
	URL string `json:"url"`
}

func (h *AuthHandler) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	var req profileImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	if err := h.state.UpdateProfileImage(req.URL); err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state.User())
}
