package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danhyun/motiday/internal/database"
	"github.com/danhyun/motiday/internal/push"
	"github.com/danhyun/motiday/internal/snapshot"
	"github.com/danhyun/motiday/internal/state"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := state.New(snapshot.New(db), logger)
	srv := New(db, st, push.Config{}, logger)
	return srv.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "GET", "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router := setupServer(t)

	for _, path := range []string{"/api/feed", "/api/clubs", "/api/wallet", "/api/settings"} {
		rec := doJSON(t, router, "GET", path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, rec.Code)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/login", `{"id":"motimaker","password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginAndCheckInFlow(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/login", `{"id":"motimaker","password":"motimaker"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	var session struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if session.User.ID != "m1" || session.User.Role != "club_owner" {
		t.Errorf("user = %+v", session.User)
	}

	// The demo account starts with one joined club.
	rec = doJSON(t, router, "GET", "/api/clubs", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("clubs status = %d", rec.Code)
	}
	var clubs []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &clubs); err != nil {
		t.Fatalf("decode clubs: %v", err)
	}
	if len(clubs) != 1 || clubs[0].ID != "c1" {
		t.Fatalf("clubs = %+v, want seeded c1", clubs)
	}

	// Check in against it.
	rec = doJSON(t, router, "POST", "/api/checkins", `{"club_id":"c1","text":"done"}`, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("check-in status = %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, "GET", "/api/stats", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var stats struct {
		CheckInCount int `json:"check_in_count"`
		Level        struct {
			Name string `json:"name"`
		} `json:"level"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.CheckInCount != 53 {
		t.Errorf("check-in count = %d, want 53", stats.CheckInCount)
	}
	if stats.Level.Name != "Master" {
		t.Errorf("level = %q, want Master", stats.Level.Name)
	}
}

func TestSignupFlow(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/signup", `{"id":"dana","password":"pw","nickname":"Dana"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", rec.Code, rec.Body)
	}
	cookies := rec.Result().Cookies()

	rec = doJSON(t, router, "GET", "/api/me", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	var me struct {
		User struct {
			Nickname string `json:"nickname"`
		} `json:"user"`
		NewUser bool `json:"new_user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.User.Nickname != "Dana" || !me.NewUser {
		t.Errorf("me = %+v, want new user Dana", me)
	}

	// Reserved ids conflict.
	rec = doJSON(t, router, "POST", "/api/signup", `{"id":"general","password":"pw","nickname":"X"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("reserved signup status = %d, want 409", rec.Code)
	}
}

func TestWalletAndEconomyRoutes(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/login", `{"id":"general","password":"general"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()

	rec = doJSON(t, router, "POST", "/api/bets", `{"amount":500}`, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("bet status = %d: %s", rec.Code, rec.Body)
	}
	var bet struct {
		Potential int `json:"potential"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &bet); err != nil {
		t.Fatalf("decode bet: %v", err)
	}
	if bet.Potential != 750 {
		t.Errorf("potential = %d, want 750", bet.Potential)
	}

	rec = doJSON(t, router, "POST", "/api/bets", `{"amount":100}`, cookies)
	if rec.Code != http.StatusConflict {
		t.Errorf("second bet status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/wallet", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("wallet status = %d", rec.Code)
	}
	var wallet struct {
		Points int `json:"points"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &wallet); err != nil {
		t.Fatalf("decode wallet: %v", err)
	}
	if wallet.Points != 2000 {
		t.Errorf("points = %d, want 2000", wallet.Points)
	}
}

func TestSettingsPatchRejectsUnknownFields(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/login", `{"id":"general","password":"general"}`, nil)
	cookies := rec.Result().Cookies()

	rec = doJSON(t, router, "PATCH", "/api/settings", `{"bogus":true}`, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "PATCH", "/api/settings", `{"mode":"solo"}`, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var settings struct {
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.Mode != "solo" {
		t.Errorf("mode = %q, want solo", settings.Mode)
	}
}

func TestFriendRoutes(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/login", `{"id":"general","password":"general"}`, nil)
	cookies := rec.Result().Cookies()

	rec = doJSON(t, router, "POST", "/api/friends/requests", `{"user_id":"u9"}`, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("request status = %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, "POST", "/api/friends/requests", `{"user_id":""}`, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty id status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/friends", "", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("friends status = %d", rec.Code)
	}
	var friends struct {
		Friends      []string `json:"friends"`
		SentRequests []string `json:"sent_requests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &friends); err != nil {
		t.Fatalf("decode friends: %v", err)
	}
	if len(friends.Friends) != 1 || friends.Friends[0] != "m1" {
		t.Errorf("friends = %v, want seeded [m1]", friends.Friends)
	}
	if len(friends.SentRequests) != 1 || friends.SentRequests[0] != "u9" {
		t.Errorf("sent requests = %v, want [u9]", friends.SentRequests)
	}
}

func TestDeleteAccountRoute(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/signup", `{"id":"dana","password":"pw","nickname":"Dana"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()

	rec = doJSON(t, router, "DELETE", "/api/account", "", cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, "GET", "/api/me", "", cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("me after delete status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, "POST", "/api/login", `{"id":"dana","password":"pw"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("relogin status = %d, want 401", rec.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	router := setupServer(t)

	rec := doJSON(t, router, "POST", "/api/login", `{"id":"general","password":"general"}`, nil)
	cookies := rec.Result().Cookies()

	rec = doJSON(t, router, "POST", "/api/logout", "", cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/me", "", cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want 401", rec.Code)
	}
}
