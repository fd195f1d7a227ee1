package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danhyun/motiday/internal/handler"
	"github.com/danhyun/motiday/internal/middleware"
	"github.com/danhyun/motiday/internal/push"
	"github.com/danhyun/motiday/internal/reminder"
	"github.com/danhyun/motiday/internal/state"
	ws "github.com/danhyun/motiday/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	state       *state.Store
	authH       *handler.AuthHandler
	clubH       *handler.ClubHandler
	checkInH    *handler.CheckInHandler
	chatH       *handler.ChatHandler
	economyH    *handler.EconomyHandler
	friendH     *handler.FriendHandler
	settingsH   *handler.SettingsHandler
	pushH       *handler.PushHandler
	subStore    *push.SubscriptionStore
	pushService *push.Service
	scheduler   *reminder.Scheduler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, st *state.Store, pushCfg push.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	subStore := push.NewSubscriptionStore(db)

	var pushSvc *push.Service
	var pushH *handler.PushHandler
	var sched *reminder.Scheduler
	if pushCfg.Enabled() {
		pushSvc = push.NewService(pushCfg.VAPIDPublicKey, pushCfg.VAPIDPrivateKey)
		pushH = handler.NewPushHandler(subStore, pushSvc, logger.With("component", "push_handler"))
		sched = reminder.NewScheduler(st, pushSvc, subStore, logger.With("component", "reminder"))
	}

	return &Server{
		db:          db,
		hub:         hub,
		state:       st,
		authH:       handler.NewAuthHandler(st, logger.With("component", "auth")),
		clubH:       handler.NewClubHandler(st, hub, logger.With("component", "club")),
		checkInH:    handler.NewCheckInHandler(st, hub, logger.With("component", "checkin")),
		chatH:       handler.NewChatHandler(st, hub, logger.With("component", "chat")),
		economyH:    handler.NewEconomyHandler(st, logger.With("component", "economy")),
		friendH:     handler.NewFriendHandler(st, logger.With("component", "friend")),
		settingsH:   handler.NewSettingsHandler(st, logger.With("component", "settings")),
		pushH:       pushH,
		subStore:    subStore,
		pushService: pushSvc,
		scheduler:   sched,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Scheduler returns the reminder scheduler, nil when push is not configured.
func (s *Server) Scheduler() *reminder.Scheduler {
	return s.scheduler
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/signup", s.rateLimitedHandler(s.authH.Signup))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /metrics", promhttp.Handler())

	// Everything else requires a session
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.state)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)
	mux.HandleFunc("POST /api/onboarding", s.authH.CompleteOnboarding)
	mux.HandleFunc("PUT /api/profile/image", s.authH.UpdateProfileImage)
	mux.HandleFunc("DELETE /api/account", s.authH.DeleteAccount)

	// Clubs
	mux.HandleFunc("GET /api/clubs/catalog", s.clubH.Catalog)
	mux.HandleFunc("GET /api/clubs", s.clubH.List)
	mux.HandleFunc("POST /api/clubs/{id}/join", s.clubH.Join)
	mux.HandleFunc("POST /api/clubs/{id}/current", s.clubH.SetCurrent)

	// Check-ins and feed
	mux.HandleFunc("POST /api/checkins", s.checkInH.CheckIn)
	mux.HandleFunc("GET /api/feed", s.checkInH.Feed)
	mux.HandleFunc("POST /api/feed/{id}/react", s.checkInH.React)
	mux.HandleFunc("POST /api/focus", s.checkInH.AddFocus)
	mux.HandleFunc("GET /api/stats", s.checkInH.Stats)

	// Chats
	mux.HandleFunc("GET /api/chats", s.chatH.List)
	mux.HandleFunc("POST /api/chats", s.chatH.Start)
	mux.HandleFunc("POST /api/chats/{id}/messages", s.chatH.Send)
	mux.HandleFunc("GET /api/clubs/{id}/messages", s.chatH.ClubMessages)
	mux.HandleFunc("POST /api/clubs/{id}/messages", s.chatH.SendClubMessage)

	// Points economy
	mux.HandleFunc("GET /api/wallet", s.economyH.Wallet)
	mux.HandleFunc("POST /api/shop/purchase", s.economyH.Purchase)
	mux.HandleFunc("POST /api/bets", s.economyH.PlaceBet)
	mux.HandleFunc("POST /api/savings", s.economyH.StartSavings)
	mux.HandleFunc("POST /api/shield/use", s.economyH.UseShield)

	// Friends
	mux.HandleFunc("GET /api/friends", s.friendH.List)
	mux.HandleFunc("POST /api/friends/requests", s.friendH.Request)

	// Settings
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PATCH /api/settings", s.settingsH.Patch)

	// Push subscriptions
	if s.pushH != nil {
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
		mux.HandleFunc("POST /api/push/test", s.pushH.TestNotification)
	}

	// WebSocket
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))
}
