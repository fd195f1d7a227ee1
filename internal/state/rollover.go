package state

import (
	"time"

	"github.com/danhyun/motiday/internal/model"
)

const dateLayout = "2006-01-02"

// RolloverResult reports what a day rollover did.
type RolloverResult struct {
	DaysElapsed    int  `json:"days_elapsed"`
	StreakExtended bool `json:"streak_extended"`
	MissedDay      bool `json:"missed_day"`
}

// Rollover advances the store to the calendar day of now. Per-club
// checked-in-today flags reset; each elapsed day with every scheduled club
// checked extends the current streak, and a scheduled day with a missing
// check-in resets it and raises the missed-day prompt (a shield can undo
// that). The lifetime counter is never touched. Calling Rollover twice on the
// same day is a no-op.
func (s *Store) Rollover(now time.Time) *RolloverResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}

	today := now.Format(dateLayout)
	if s.doc.LastRollover == today {
		return nil
	}

	last, err := time.ParseInLocation(dateLayout, s.doc.LastRollover, now.Location())
	if s.doc.LastRollover == "" || err != nil {
		// First tracked day: anchor here. No calendar day has elapsed yet,
		// so today's check-in flags stay as they are.
		s.doc.LastRollover = today
		s.save()
		return &RolloverResult{}
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := 0
	for d := last; d.Before(startOfToday); d = d.AddDate(0, 0, 1) {
		days++
	}
	if days <= 0 {
		// Clock moved backwards; just re-anchor.
		s.doc.LastRollover = today
		s.save()
		return &RolloverResult{}
	}

	result := &RolloverResult{DaysElapsed: days}
	for i := 0; i < days; i++ {
		day := last.AddDate(0, 0, i)
		scheduled := s.scheduledClubs(day)
		if len(scheduled) == 0 {
			continue
		}

		done := true
		if i == 0 {
			// Only the most recent day has live check-in flags; any older
			// elapsed day was spent away from the app entirely.
			for _, clubID := range scheduled {
				if !s.doc.CheckIns[clubID] {
					done = false
					break
				}
			}
		} else {
			done = false
		}

		if done {
			s.doc.CurrentStreak++
			result.StreakExtended = true
		} else {
			s.doc.StreakBeforeMiss = s.doc.CurrentStreak
			s.doc.CurrentStreak = 0
			s.doc.MissedDayPrompt = true
			result.MissedDay = true
		}
	}

	s.doc.CheckIns = map[string]bool{}
	s.doc.LastRollover = today
	s.save()
	return result
}

// scheduledClubs returns the ids of joined clubs whose effective schedule is
// active on the given date. Callers hold the lock.
func (s *Store) scheduledClubs(day time.Time) []string {
	key := model.WeekdayKey(day.Weekday())
	var out []string
	for _, c := range s.doc.Clubs {
		if dc, ok := s.doc.Settings.ClubDay(c.ID, key); ok && dc.Active {
			out = append(out, c.ID)
		}
	}
	return out
}

// ScheduledClubsOn exposes the effective schedule for a date, used by the
// reminder loop for read-only clock comparisons.
func (s *Store) ScheduledClubsOn(day time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || !s.doc.Settings.Notifications {
		return nil
	}
	return s.scheduledClubs(day)
}

// ReminderDue reports clubs whose reminder time matches the given clock
// minute and which have no check-in yet today.
func (s *Store) ReminderDue(now time.Time) []model.JoinedClub {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || !s.doc.Settings.Notifications {
		return nil
	}

	key := model.WeekdayKey(now.Weekday())
	hhmm := now.Format("15:04")
	var due []model.JoinedClub
	for _, c := range s.doc.Clubs {
		dc, ok := s.doc.Settings.ClubDay(c.ID, key)
		if !ok || !dc.Active || dc.Time != hhmm {
			continue
		}
		if s.doc.CheckIns[c.ID] {
			continue
		}
		due = append(due, c)
	}
	return due
}

// ActiveAccountID returns the account the store is currently operating for,
// or the empty string when logged out.
func (s *Store) ActiveAccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ""
	}
	return s.doc.User.ID
}
