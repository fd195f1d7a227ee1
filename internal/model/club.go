package model

// Club statuses as shown in the club list.
const (
	ClubStatusRecruiting = "recruiting"
	ClubStatusActive     = "active"
	ClubStatusCompleted  = "completed"
)

// Club is a catalog entry a user can join.
type Club struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	MakerName     string `json:"maker_name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Icon          string `json:"icon,omitempty"`
	Price         int    `json:"price"`
	MemberCount   int    `json:"member_count"`
	DurationWeeks int    `json:"duration_weeks,omitempty"`
}

// JoinedClub is a club the user is a member of, with its chat preview and
// progress counters. At most one entry per club id.
type JoinedClub struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Mission      string `json:"mission"`
	LastMessage  string `json:"last_message"`
	LastTime     string `json:"last_time"`
	UnreadCount  int    `json:"unread_count"`
	Icon         string `json:"icon"`
	MemberCount  int    `json:"member_count"`
	CurrentWeek  int    `json:"current_week"`
	TeamProgress int    `json:"team_progress"`
	Status       string `json:"status,omitempty"`
}
