package state

import (
	"github.com/danhyun/motiday/internal/model"
)

// Version is the snapshot schema version. Documents carrying a different
// version are discarded in favor of defaults rather than partially decoded.
const Version = 1

// document is the whole serializable state of one account. It is written in
// full after every mutation and read once when the account becomes active.
type document struct {
	Version           int                        `json:"version"`
	User              *model.User                `json:"user"`
	Feed              []model.FeedItem           `json:"feed"`
	Clubs             []model.JoinedClub         `json:"clubs"`
	CheckIns          map[string]bool            `json:"check_ins"`
	CheckInCount      int                        `json:"check_in_count"`
	CurrentStreak     int                        `json:"current_streak"`
	StreakBeforeMiss  int                        `json:"streak_before_miss,omitempty"`
	MissedDayPrompt   bool                       `json:"missed_day_prompt"`
	LastRollover      string                     `json:"last_rollover"`
	TotalFocusSeconds int64                      `json:"total_focus_seconds"`
	Chats             []model.ChatRoom           `json:"chats"`
	ClubChats         map[string][]model.Message `json:"club_chats"`
	Settings          model.UserSettings         `json:"settings"`
	Points            int                        `json:"points"`
	Inventory         []string                   `json:"inventory"`
	ActiveSavings     *model.Savings             `json:"active_savings"`
	ActiveBet         *model.Bet                 `json:"active_bet"`
	ShieldCount       int                        `json:"shield_count"`
	Friends           []string                   `json:"friends"`
	SentRequests      []string                   `json:"sent_requests"`
}

// deviceDocument is device-level state shared across accounts: the signup
// registry and which account was active when the process last ran.
type deviceDocument struct {
	Version         int                      `json:"version"`
	Accounts        map[string]model.Account `json:"accounts"`
	ActiveAccountID string                   `json:"active_account_id"`
}

func defaultSettings() model.UserSettings {
	return model.UserSettings{
		CheckInDays:   []string{"mon", "wed", "fri"},
		Schedule:      model.DefaultWeek(),
		ClubSchedules: map[string]map[string]model.DayConfig{},
		Notifications: true,
		Mode:          "team",
		PushStyle:     "soft",
		CheckInTime:   "22:00",
	}
}

// defaults is the built-in state every account falls back to when its
// snapshot is missing or unreadable: full starting balance, one shield,
// no history.
func defaults(user *model.User) document {
	return document{
		Version:     Version,
		User:        user,
		CheckIns:    map[string]bool{},
		ClubChats:   map[string][]model.Message{},
		Settings:    defaultSettings(),
		Points:      2500,
		ShieldCount: 1,
	}
}

// demoDefaults seeds the built-in demo accounts with the content a returning
// user would see: one joined club, one feed post, an established check-in
// history.
func demoDefaults(user *model.User) document {
	doc := defaults(user)
	doc.CheckInCount = 52
	doc.CurrentStreak = 3
	doc.Clubs = []model.JoinedClub{
		{
			ID:           "c1",
			Title:        "Iron Keeper's Gains Club",
			Mission:      "Post today's workout proof 📸",
			LastMessage:  "Iron Keeper: did everyone finish back day?",
			LastTime:     "now",
			UnreadCount:  2,
			Icon:         "💪",
			MemberCount:  1560,
			CurrentWeek:  3,
			TeamProgress: 88,
			Status:       model.ClubStatusActive,
		},
	}
	doc.Feed = []model.FeedItem{
		{
			ID:        "seed-post-1",
			ClubID:    "c1",
			UserID:    "m1",
			Nickname:  "Iron Keeper",
			Role:      model.RoleClubOwner,
			Image:     "https://images.unsplash.com/photo-1534438327276-14e5300c3a48",
			Text:      "Leg day! Let's hit 100% check-in today 🔥",
			Reactions: 24,
		},
	}
	doc.Settings.ClubSchedules["c1"] = model.DefaultWeek()
	doc.Friends = []string{"m1"}
	return doc
}
