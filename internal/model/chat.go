package model

// Message types.
const (
	MessageTypeText    = "text"
	MessageTypeCheckIn = "checkin"
	MessageTypeNotice  = "notice"
)

type Message struct {
	ID           string `json:"id"`
	SenderID     string `json:"sender_id"`
	Text         string `json:"text"`
	Timestamp    string `json:"timestamp"`
	Type         string `json:"type,omitempty"`
	CheckInID    string `json:"checkin_id,omitempty"`
	CheckInImage string `json:"checkin_image,omitempty"`
}

// ChatRoom is a direct-message room. There is at most one room per
// counterparty id; messages are append-only.
type ChatRoom struct {
	ID          string    `json:"id"`
	PartnerID   string    `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	PartnerImg  string    `json:"partner_img,omitempty"`
	Messages    []Message `json:"messages"`
	LastMessage string    `json:"last_message"`
	LastTime    string    `json:"last_time"`
	UnreadCount int       `json:"unread_count"`
}

// Clone returns a copy whose message log does not share backing storage with
// the live room.
func (r ChatRoom) Clone() ChatRoom {
	out := r
	out.Messages = make([]Message, len(r.Messages))
	copy(out.Messages, r.Messages)
	return out
}
