package state

import "github.com/danhyun/motiday/internal/model"

// UpdateSettings merges a typed partial update into the user settings and
// returns the result. Unknown fields never reach this point; they are
// rejected when the patch is decoded.
func (s *Store) UpdateSettings(patch model.SettingsPatch) (model.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return model.UserSettings{}, ErrNotLoggedIn
	}
	patch.Apply(&s.doc.Settings)
	if s.doc.Settings.ClubSchedules == nil {
		s.doc.Settings.ClubSchedules = map[string]map[string]model.DayConfig{}
	}
	s.save()
	return s.doc.Settings.Clone(), nil
}

// Settings returns a deep copy of the current user settings.
func (s *Store) Settings() model.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Settings.Clone()
}

// User returns the logged-in identity, or nil.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCopy()
}

// IsNewUser reports whether the session came from a signup that has not yet
// completed onboarding.
func (s *Store) IsNewUser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newUser
}

// MissedDayPrompt reports whether a missed scheduled day is awaiting a shield
// decision.
func (s *Store) MissedDayPrompt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.MissedDayPrompt
}

// CurrentStreak returns the consecutive-day streak currently at stake.
func (s *Store) CurrentStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.CurrentStreak
}
