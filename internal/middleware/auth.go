package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/danhyun/motiday/internal/auth"
	"github.com/danhyun/motiday/internal/model"
)

// SessionCookieName is the cookie carrying the session token issued by login.
const SessionCookieName = "motiday_session"

// SessionValidator resolves a session token to the logged-in user.
// Implemented by the state store.
type SessionValidator interface {
	ValidateSession(token string) (*model.User, bool)
}

// RequireAuth validates the session cookie and populates the auth context.
// Unauthenticated API requests get a 401 JSON body rather than a redirect;
// there is no server-rendered login page to send anyone to.
func RequireAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			user, ok := sessions.ValidateSession(cookie.Value)
			if !ok {
				unauthorized(w)
				return
			}

			ac := auth.AuthContext{
				AccountID: user.ID,
				Nickname:  user.Nickname,
				Role:      user.Role,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithAuth(r.Context(), ac)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
}
