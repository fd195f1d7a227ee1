package model

import "time"

// FeedItem is a check-in post, newest first in the feed.
type FeedItem struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"club_id"`
	UserID    string    `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Role      string    `json:"role"`
	Image     string    `json:"image,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Reactions int       `json:"reactions"`
	Liked     bool      `json:"liked"`
}
