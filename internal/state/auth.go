package state

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danhyun/motiday/internal/model"
)

// Built-in demo credential pairs. These are matched verbatim, exactly as the
// login screen documents them.
var builtinAccounts = map[string]struct {
	secret string
	user   model.User
}{
	"motimaker": {
		secret: "motimaker",
		user:   model.User{ID: "m1", Nickname: "Master Sun", Role: model.RoleClubOwner, CompletedRoutines: 12},
	},
	"general": {
		secret: "general",
		user:   model.User{ID: "u1", Nickname: "Routinee", Role: model.RoleParticipant, CompletedRoutines: 4},
	},
}

// Login validates credentials against the built-in table, then against
// accounts registered on this device. On success it activates that account's
// own snapshot and returns the user plus a session token. Failure leaves all
// state untouched.
func (s *Store) Login(id, secret string) (*model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := builtinAccounts[id]; ok {
		if b.secret != secret {
			return nil, "", ErrInvalidCredentials
		}
		user := b.user
		s.activate(&user, true)
		token := s.newSession(user.ID)
		s.save()
		return s.userCopy(), token, nil
	}

	acct, ok := s.device.Accounts[id]
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(secret)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	user := model.User{ID: acct.ID, Nickname: acct.Nickname, Role: acct.Role}
	s.activate(&user, false)
	token := s.newSession(user.ID)
	s.save()
	return s.userCopy(), token, nil
}

// Signup registers a new participant identity with zero history and flags the
// session as new-user so the caller can force onboarding. Built-in ids are
// reserved; re-signup of a previously registered id overwrites that account.
func (s *Store) Signup(nickname, id, secret string) (*model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nickname = strings.TrimSpace(nickname)
	id = strings.TrimSpace(id)
	if nickname == "" || id == "" || secret == "" {
		return nil, "", ErrInvalidCredentials
	}
	if _, ok := builtinAccounts[id]; ok {
		return nil, "", ErrIDReserved
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := model.User{ID: id, Nickname: nickname, Role: model.RoleParticipant}
	s.device.Accounts[id] = model.Account{
		ID:           id,
		Nickname:     nickname,
		Role:         model.RoleParticipant,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	s.doc = defaults(&user)
	s.active = true
	s.device.ActiveAccountID = id
	s.newUser = true
	s.currentClubID = ""
	token := s.newSession(id)
	s.save()
	return s.userCopy(), token, nil
}

// CompleteOnboarding merges the supplied settings fields, optionally sets the
// avatar, and clears the new-user flag.
func (s *Store) CompleteOnboarding(patch model.SettingsPatch, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	patch.Apply(&s.doc.Settings)
	if avatarURL != "" {
		s.doc.User.AvatarURL = avatarURL
	}
	s.newUser = false
	s.save()
	return nil
}

// Logout persists the active snapshot, clears the identity and invalidates the
// session. The account's own collections stay in storage, keyed to it alone.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	if !s.active {
		return
	}
	s.save()
	s.doc = document{}
	s.active = false
	s.newUser = false
	s.currentClubID = ""
	s.device.ActiveAccountID = ""
	s.save()
}

// DeleteAccount erases the active account: its snapshot, its device registry
// entry and every session it holds, then logs out. Deleting a built-in demo
// account puts it back on the seeded demo state at its next login.
func (s *Store) DeleteAccount() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	id := s.doc.User.ID
	if err := s.persist.Delete(accountKey(id)); err != nil {
		s.logger.Error("delete snapshot", "account", id, "error", err)
	}
	delete(s.device.Accounts, id)
	for token, acct := range s.sessions {
		if acct == id {
			delete(s.sessions, token)
		}
	}
	s.doc = document{}
	s.active = false
	s.newUser = false
	s.currentClubID = ""
	s.device.ActiveAccountID = ""
	s.save()
	return nil
}

// UpdateProfileImage sets the avatar reference on the current identity.
func (s *Store) UpdateProfileImage(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	s.doc.User.AvatarURL = url
	s.save()
	return nil
}

// ValidateSession resolves a session token to the logged-in user.
func (s *Store) ValidateSession(token string) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, false
	}
	if id, ok := s.sessions[token]; !ok || id != s.doc.User.ID {
		return nil, false
	}
	return s.userCopy(), true
}

// activate switches the store to the given account, loading its snapshot or
// falling back to defaults (demo seed data for built-in accounts).
func (s *Store) activate(user *model.User, demo bool) {
	s.doc = s.loadAccountOr(user, demo)
	s.active = true
	s.newUser = false
	s.currentClubID = ""
	s.device.ActiveAccountID = user.ID
}

// accountUser reconstructs the identity for a stored account id, used when
// rehydrating the previously active account at startup.
func (s *Store) accountUser(id string) *model.User {
	for _, b := range builtinAccounts {
		if b.user.ID == id {
			u := b.user
			return &u
		}
	}
	for _, acct := range s.device.Accounts {
		if acct.ID == id {
			return &model.User{ID: acct.ID, Nickname: acct.Nickname, Role: acct.Role}
		}
	}
	return nil
}

// loadAccountOr loads the snapshot for user, falling back to defaults (demo
// seed data for built-in accounts) when the document is missing, unparseable,
// or carries an unknown schema version.
func (s *Store) loadAccountOr(user *model.User, demo bool) document {
	data, err := s.persist.Load(accountKey(user.ID))
	if err == nil {
		var doc document
		if jsonErr := json.Unmarshal(data, &doc); jsonErr == nil && doc.Version == Version && doc.User != nil {
			if doc.CheckIns == nil {
				doc.CheckIns = map[string]bool{}
			}
			if doc.ClubChats == nil {
				doc.ClubChats = map[string][]model.Message{}
			}
			if doc.Settings.ClubSchedules == nil {
				doc.Settings.ClubSchedules = map[string]map[string]model.DayConfig{}
			}
			return doc
		}
		s.logger.Warn("account snapshot unreadable, using defaults", "account", user.ID)
	}
	if demo {
		return demoDefaults(user)
	}
	return defaults(user)
}

// isBuiltinUser reports whether a user id belongs to one of the built-in demo
// accounts.
func isBuiltinUser(id string) bool {
	for _, b := range builtinAccounts {
		if b.user.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) newSession(accountID string) string {
	token := uuid.NewString()
	s.sessions[token] = accountID
	return token
}

func (s *Store) userCopy() *model.User {
	if s.doc.User == nil {
		return nil
	}
	u := *s.doc.User
	return &u
}
