package state

import (
	"github.com/google/uuid"

	"github.com/danhyun/motiday/internal/model"
)

// StartChat returns the direct-message room with the given counterparty,
// creating it on first contact. At most one room exists per counterparty.
func (s *Store) StartChat(partnerID, partnerName, partnerImg string) (*model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotLoggedIn
	}
	for i := range s.doc.Chats {
		if s.doc.Chats[i].PartnerID == partnerID {
			out := s.doc.Chats[i].Clone()
			return &out, nil
		}
	}

	room := model.ChatRoom{
		ID:          uuid.NewString(),
		PartnerID:   partnerID,
		PartnerName: partnerName,
		PartnerImg:  partnerImg,
		Messages:    []model.Message{},
	}
	s.doc.Chats = append([]model.ChatRoom{room}, s.doc.Chats...)
	s.save()
	return &room, nil
}

// SendMessage appends a message to a direct-message room and updates its
// preview fields.
func (s *Store) SendMessage(roomID, text string) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotLoggedIn
	}
	for i := range s.doc.Chats {
		if s.doc.Chats[i].ID != roomID {
			continue
		}
		msg := model.Message{
			ID:        uuid.NewString(),
			SenderID:  s.doc.User.ID,
			Text:      text,
			Timestamp: s.now().Format("15:04"),
			Type:      model.MessageTypeText,
		}
		room := &s.doc.Chats[i]
		room.Messages = append(room.Messages, msg)
		room.LastMessage = text
		room.LastTime = msg.Timestamp
		s.save()
		return &msg, nil
	}
	return nil, ErrRoomNotFound
}

// SendClubMessage appends a message to a club's group chat log.
func (s *Store) SendClubMessage(clubID, text string) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotLoggedIn
	}
	msg := s.appendClubMessage(clubID, text, model.MessageTypeText, "", "")
	s.save()
	return &msg, nil
}

// appendClubMessage writes into the club chat log and refreshes that club's
// list preview. Callers hold the lock and handle persistence.
func (s *Store) appendClubMessage(clubID, text, msgType, checkInID, checkInImage string) model.Message {
	msg := model.Message{
		ID:           uuid.NewString(),
		SenderID:     s.doc.User.ID,
		Text:         text,
		Timestamp:    s.now().Format("15:04"),
		Type:         msgType,
		CheckInID:    checkInID,
		CheckInImage: checkInImage,
	}
	s.doc.ClubChats[clubID] = append(s.doc.ClubChats[clubID], msg)

	preview := text
	if msgType == model.MessageTypeCheckIn {
		preview = "📸 Check-in posted"
	}
	for i := range s.doc.Clubs {
		if s.doc.Clubs[i].ID == clubID {
			s.doc.Clubs[i].LastMessage = preview
			s.doc.Clubs[i].LastTime = msg.Timestamp
			break
		}
	}
	return msg
}

// Chats returns the direct-message rooms, most recent first. Message logs are
// copied so callers can read them without holding the store lock.
func (s *Store) Chats() []model.ChatRoom {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChatRoom, len(s.doc.Chats))
	for i := range s.doc.Chats {
		out[i] = s.doc.Chats[i].Clone()
	}
	return out
}

// ClubChat returns the group chat log for a club, oldest first.
func (s *Store) ClubChat(clubID string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.doc.ClubChats[clubID]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}
