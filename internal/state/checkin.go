package state

import (
	"strings"

	"github.com/google/uuid"

	"github.com/danhyun/motiday/internal/level"
	"github.com/danhyun/motiday/internal/model"
)

const defaultCheckInText = "Completed today's routine! 🔥"

// CheckInRequest is the submit payload of the check-in flow. Image is an
// already-produced value; where it came from (camera, upload, generated) is
// not the store's concern.
type CheckInRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// CheckInResult reports everything a single check-in produced.
type CheckInResult struct {
	Item    model.FeedItem `json:"item"`
	Message model.Message  `json:"message"`
	LevelUp *level.Level   `json:"level_up,omitempty"`
}

// CheckIn submits a daily check-in against the resolved club: it appends a
// feed item, marks the club checked-in for today, increments the lifetime
// counter, and echoes a check-in message into the club's group chat. One call,
// four collections.
func (s *Store) CheckIn(req CheckInRequest, clubID string) (*CheckInResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotLoggedIn
	}
	target, err := s.resolveClub(clubID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		text = defaultCheckInText
	}

	user := s.doc.User
	item := model.FeedItem{
		ID:        uuid.NewString(),
		ClubID:    target,
		UserID:    user.ID,
		Nickname:  user.Nickname,
		Role:      user.Role,
		Image:     req.Image,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.doc.Feed = append([]model.FeedItem{item}, s.doc.Feed...)

	s.doc.CheckIns[target] = true
	before := level.ForCount(s.doc.CheckInCount, user.CompletedRoutines)
	s.doc.CheckInCount++
	after := level.ForCount(s.doc.CheckInCount, user.CompletedRoutines)

	msg := s.appendClubMessage(target, text, model.MessageTypeCheckIn, item.ID, item.Image)

	s.currentClubID = target
	s.save()

	result := &CheckInResult{Item: item, Message: msg}
	if after.Name != before.Name {
		result.LevelUp = &after
	}
	return result, nil
}

// React toggles the liked flag on a feed item. The reaction count and the
// flag move from the same toggle, so they can never disagree.
func (s *Store) React(feedItemID string) (*model.FeedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotLoggedIn
	}
	for i := range s.doc.Feed {
		if s.doc.Feed[i].ID != feedItemID {
			continue
		}
		item := &s.doc.Feed[i]
		if item.Liked {
			item.Reactions--
		} else {
			item.Reactions++
		}
		item.Liked = !item.Liked
		s.save()
		out := *item
		return &out, nil
	}
	return nil, ErrFeedItemNotFound
}

// AddFocusTime accumulates seconds from an explicitly stopped focus session.
func (s *Store) AddFocusTime(seconds int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return 0, ErrNotLoggedIn
	}
	if seconds <= 0 {
		return s.doc.TotalFocusSeconds, ErrInvalidAmount
	}
	s.doc.TotalFocusSeconds += seconds
	s.save()
	return s.doc.TotalFocusSeconds, nil
}

// Feed returns the feed, newest first.
func (s *Store) Feed() []model.FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.FeedItem, len(s.doc.Feed))
	copy(out, s.doc.Feed)
	return out
}

// CheckedInToday reports whether the club has a check-in for the current day.
func (s *Store) CheckedInToday(clubID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.CheckIns[clubID]
}

// CheckInCount returns the lifetime check-in counter.
func (s *Store) CheckInCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.CheckInCount
}

// TotalFocusSeconds returns the accumulated focus-timer total.
func (s *Store) TotalFocusSeconds() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.TotalFocusSeconds
}
