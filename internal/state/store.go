// Package state holds the single source of truth for all user-visible mutable
// application data. Every mutation is a synchronous named method that runs to
// completion under one lock and writes the whole snapshot through the
// persister before returning.
package state

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/danhyun/motiday/internal/model"
	"github.com/danhyun/motiday/internal/snapshot"
)

const deviceKey = "device"

// Persister is the durable local storage behind the store: one key holds one
// JSON document. Implemented by snapshot.Store.
type Persister interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
	Delete(key string) error
}

var _ Persister = (*snapshot.Store)(nil)

// Store mediates every state transition of the application. All methods are
// safe for concurrent use; each runs to completion without interleaving.
type Store struct {
	mu      sync.Mutex
	persist Persister
	logger  *slog.Logger
	now     func() time.Time

	device deviceDocument
	doc    document
	active bool // an account is logged in and doc is live

	newUser       bool
	currentClubID string
	sessions      map[string]string // session token -> account id
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store backed by the given persister and rehydrates device
// state. If an account was active when the process last ran, its snapshot is
// loaded back in; a missing or corrupt document falls back to defaults.
func New(p Persister, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		persist:  p,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.device = s.loadDevice()
	if id := s.device.ActiveAccountID; id != "" {
		if user := s.accountUser(id); user != nil {
			s.doc = s.loadAccountOr(user, isBuiltinUser(id))
			s.active = true
		} else {
			s.device.ActiveAccountID = ""
		}
	}
	return s
}

func (s *Store) loadDevice() deviceDocument {
	dev := deviceDocument{Version: Version, Accounts: map[string]model.Account{}}
	data, err := s.persist.Load(deviceKey)
	if err != nil {
		return dev
	}
	var loaded deviceDocument
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Version != Version {
		s.logger.Warn("device snapshot unreadable, using defaults", "error", err)
		return dev
	}
	if loaded.Accounts == nil {
		loaded.Accounts = map[string]model.Account{}
	}
	return loaded
}

// save writes the active account document and the device document. Write
// failures are logged, never surfaced: operations stay exception-free and the
// in-memory state remains authoritative.
func (s *Store) save() {
	if s.active {
		data, err := json.Marshal(s.doc)
		if err != nil {
			s.logger.Error("marshal snapshot", "error", err)
		} else if err := s.persist.Save(accountKey(s.doc.User.ID), data); err != nil {
			s.logger.Error("save snapshot", "error", err)
		}
	}

	data, err := json.Marshal(s.device)
	if err != nil {
		s.logger.Error("marshal device snapshot", "error", err)
		return
	}
	if err := s.persist.Save(deviceKey, data); err != nil {
		s.logger.Error("save device snapshot", "error", err)
	}
}

func accountKey(userID string) string {
	return "account:" + userID
}
