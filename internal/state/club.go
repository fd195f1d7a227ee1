package state

import "github.com/danhyun/motiday/internal/model"

// JoinClub inserts the club at the head of the joined list. Joining a club
// the user is already in is a no-op. A default per-day schedule is seeded for
// the club if none exists.
func (s *Store) JoinClub(club model.Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	for _, c := range s.doc.Clubs {
		if c.ID == club.ID {
			return nil
		}
	}

	joined := model.JoinedClub{
		ID:          club.ID,
		Title:       club.Title,
		Mission:     club.Category,
		LastTime:    "now",
		Icon:        club.Icon,
		MemberCount: club.MemberCount,
		CurrentWeek: 1,
		Status:      model.ClubStatusActive,
	}
	if joined.Icon == "" {
		joined.Icon = "🔥"
	}
	s.doc.Clubs = append([]model.JoinedClub{joined}, s.doc.Clubs...)

	if _, ok := s.doc.Settings.ClubSchedules[club.ID]; !ok {
		s.doc.Settings.ClubSchedules[club.ID] = model.DefaultWeek()
	}
	s.save()
	return nil
}

// SetCurrentClub records the club the user most recently opened, used as the
// second step of check-in target resolution.
func (s *Store) SetCurrentClub(clubID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNotLoggedIn
	}
	s.currentClubID = clubID
	return nil
}

// ResolveClub picks the check-in target club: the explicit id when given,
// otherwise the most recently opened club, otherwise ErrNoClubResolved.
func (s *Store) ResolveClub(explicit string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveClub(explicit)
}

func (s *Store) resolveClub(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.currentClubID != "" {
		return s.currentClubID, nil
	}
	return "", ErrNoClubResolved
}

// Clubs returns the joined clubs, most recently joined first.
func (s *Store) Clubs() []model.JoinedClub {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.JoinedClub, len(s.doc.Clubs))
	copy(out, s.doc.Clubs)
	return out
}
