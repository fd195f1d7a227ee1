package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, club string) *Client {
	return &Client{
		hub:  hub,
		conn: nil,
		club: club,
		send: make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "")
	c2 := mockClient(hub, "")

	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "")
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "")
	c2 := mockClient(hub, "")
	hub.Register(c1)
	hub.Register(c2)

	ev := NewEvent("checkin", "created", "f1", map[string]any{"streak": float64(4)})
	hub.Broadcast(ev)

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var got Event
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "checkin_created" {
				t.Errorf("expected type checkin_created, got %s", got.Type)
			}
			if got.Entity != "checkin" {
				t.Errorf("expected entity checkin, got %s", got.Entity)
			}
			if got.ID != "f1" {
				t.Errorf("expected id f1, got %s", got.ID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}

	hub.Unregister(c1)
	hub.Unregister(c2)
}

func TestBroadcastClubScoping(t *testing.T) {
	hub := NewHub(slog.Default())

	inClub := mockClient(hub, "c1")
	otherClub := mockClient(hub, "c2")
	unscoped := mockClient(hub, "")
	hub.Register(inClub)
	hub.Register(otherClub)
	hub.Register(unscoped)

	hub.BroadcastClub("c1", NewEvent("chat", "message", "m1", nil))

	for _, c := range []*Client{inClub, unscoped} {
		select {
		case data := <-c.send:
			var got Event
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.ClubID != "c1" {
				t.Errorf("expected club_id c1, got %s", got.ClubID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}

	select {
	case <-otherClub.send:
		t.Error("client scoped to another club must not receive the event")
	default:
	}
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	// Should not panic
	hub.Broadcast(NewEvent("club", "joined", "c1", nil))
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub, "")
	hub.Register(c)

	// Fill the send buffer
	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast(NewEvent("test", "fill", "", nil))
	}

	// This should drop the event, not panic or block
	hub.Broadcast(NewEvent("test", "dropped", "", nil))

	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			goto done
		}
	}
done:
	if count != sendBufferSize {
		t.Errorf("expected %d events, got %d", sendBufferSize, count)
	}

	hub.Unregister(c)
}

func TestNewEvent(t *testing.T) {
	ev := NewEvent("level", "up", "", nil)
	if ev.Type != "level_up" {
		t.Errorf("expected type level_up, got %s", ev.Type)
	}
	if ev.Entity != "level" {
		t.Errorf("expected entity level, got %s", ev.Entity)
	}
	if ev.Action != "up" {
		t.Errorf("expected action up, got %s", ev.Action)
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub, "")
			hub.Register(c)
			hub.Broadcast(NewEvent("test", "concurrent", "", nil))
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}
