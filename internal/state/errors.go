package state

import "errors"

// Refusals returned by store operations. None of these leave any state
// mutated; callers surface them to the user and retry.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIDReserved         = errors.New("identifier is reserved")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrNoClubResolved     = errors.New("no club resolved")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrBetActive          = errors.New("a bet is already active")
	ErrSavingsActive      = errors.New("a savings deposit is already active")
	ErrNoShields          = errors.New("no shields left")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrRoomNotFound       = errors.New("chat room not found")
	ErrFeedItemNotFound   = errors.New("feed item not found")
)
