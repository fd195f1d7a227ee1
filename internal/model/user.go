package model

import "time"

// User roles.
const (
	RoleParticipant = "participant"
	RoleClubOwner   = "club_owner"
	RoleStaff       = "staff"
)

type User struct {
	ID                string `json:"id"`
	Nickname          string `json:"nickname"`
	Role              string `json:"role"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	Bio               string `json:"bio,omitempty"`
	CompletedRoutines int    `json:"completed_routines"`
}

// Account is a login identity registered on this device. Built-in demo
// accounts carry no password hash and are matched against a fixed table.
type Account struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
