package state

import (
	"errors"
	"testing"

	"github.com/danhyun/motiday/internal/model"
)

func TestStartChatOneRoomPerPartner(t *testing.T) {
	s, _ := setupStore(t)
	loginGeneral(t, s)

	room, err := s.StartChat("m1", "Master Sun", "")
	if err != nil {
		t.Fatalf("start chat: %v", err)
	}
	again, err := s.StartChat("m1", "Master Sun", "")
	if err != nil {
		t.Fatalf("restart chat: %v", err)
	}
	if again.ID != room.ID {
		t.Errorf("second start returned room %q, want existing %q", again.ID, room.ID)
	}
	if len(s.Chats()) != 1 {
		t.Errorf("chats = %d rooms, want 1", len(s.Chats()))
	}
}

func TestSendMessageUpdatesPreview(t *testing.T) {
	s, _ := setupStore(t)
	loginGeneral(t, s)

	room, err := s.StartChat("m1", "Master Sun", "")
	if err != nil {
		t.Fatalf("start chat: %v", err)
	}

	msg, err := s.SendMessage(room.ID, "see you at the gym")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SenderID != "u1" || msg.Type != model.MessageTypeText {
		t.Errorf("message = %+v", msg)
	}

	chats := s.Chats()
	if chats[0].LastMessage != "see you at the gym" {
		t.Errorf("preview = %q", chats[0].LastMessage)
	}
	if len(chats[0].Messages) != 1 {
		t.Errorf("messages = %d, want 1", len(chats[0].Messages))
	}

	if _, err := s.SendMessage("missing", "hi"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestChatsReturnsDetachedMessageLogs(t *testing.T) {
	s, _ := setupStore(t)
	loginGeneral(t, s)

	room, err := s.StartChat("m1", "Master Sun", "")
	if err != nil {
		t.Fatalf("start chat: %v", err)
	}
	if _, err := s.SendMessage(room.ID, "first"); err != nil {
		t.Fatalf("send: %v", err)
	}

	// A held copy must not observe appends made after it was returned.
	held := s.Chats()
	if _, err := s.SendMessage(room.ID, "second"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(held[0].Messages) != 1 {
		t.Errorf("held copy grew to %d messages", len(held[0].Messages))
	}

	held[0].Messages[0].Text = "tampered"
	if fresh := s.Chats(); fresh[0].Messages[0].Text != "first" {
		t.Errorf("store message = %q, want %q", fresh[0].Messages[0].Text, "first")
	}
}

func TestSendClubMessage(t *testing.T) {
	s, _ := setupStore(t)
	loginGeneral(t, s)

	msg, err := s.SendClubMessage("c1", "who's in for leg day?")
	if err != nil {
		t.Fatalf("send club message: %v", err)
	}
	if msg.Type != model.MessageTypeText {
		t.Errorf("type = %q, want text", msg.Type)
	}

	log := s.ClubChat("c1")
	if len(log) != 1 || log[0].ID != msg.ID {
		t.Errorf("club chat = %+v", log)
	}

	// Text messages land verbatim in the club preview.
	for _, c := range s.Clubs() {
		if c.ID == "c1" && c.LastMessage != "who's in for leg day?" {
			t.Errorf("preview = %q", c.LastMessage)
		}
	}
}
