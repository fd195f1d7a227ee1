package push

import (
	"testing"

	"github.com/danhyun/motiday/internal/database"
)

func setupSubscriptionStore(t *testing.T) *SubscriptionStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSubscriptionStore(db)
}

func TestCreateAndGetSubscription(t *testing.T) {
	s := setupSubscriptionStore(t)

	sub, err := s.Create("u1", "https://push.example/ep1", "p256dh-key", "auth-key", "Pixel")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.ID == 0 {
		t.Error("expected assigned id")
	}
	if sub.AccountID != "u1" || sub.Endpoint != "https://push.example/ep1" {
		t.Errorf("sub = %+v", sub)
	}
	if sub.DeviceName != "Pixel" {
		t.Errorf("device = %q, want Pixel", sub.DeviceName)
	}

	got, err := s.GetByEndpoint("https://push.example/ep1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != sub.ID {
		t.Errorf("got = %+v, want id %d", got, sub.ID)
	}

	missing, err := s.GetByEndpoint("https://push.example/none")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing = %+v, want nil", missing)
	}
}

func TestCreateUpsertsOnEndpoint(t *testing.T) {
	s := setupSubscriptionStore(t)

	first, err := s.Create("u1", "https://push.example/ep1", "k1", "a1", "old phone")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.Create("u1", "https://push.example/ep1", "k2", "a2", "new phone")
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("id changed %d -> %d, want refresh in place", first.ID, second.ID)
	}
	if second.P256dhKey != "k2" || second.DeviceName != "new phone" {
		t.Errorf("sub = %+v, want refreshed keys", second)
	}

	subs, err := s.ListByAccount("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("subscriptions = %d, want 1", len(subs))
	}
}

func TestListByAccountScoping(t *testing.T) {
	s := setupSubscriptionStore(t)

	if _, err := s.Create("u1", "https://push.example/a", "k", "a", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create("m1", "https://push.example/b", "k", "a", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	subs, err := s.ListByAccount("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 || subs[0].AccountID != "u1" {
		t.Errorf("subs = %+v, want only u1's", subs)
	}
}

func TestDeleteSubscription(t *testing.T) {
	s := setupSubscriptionStore(t)

	sub, err := s.Create("u1", "https://push.example/a", "k", "a", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Wrong account must not delete.
	if err := s.Delete(sub.ID, "m1"); err != nil {
		t.Fatalf("delete wrong account: %v", err)
	}
	if got, _ := s.GetByEndpoint(sub.Endpoint); got == nil {
		t.Fatal("subscription deleted by a different account")
	}

	if err := s.Delete(sub.ID, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.GetByEndpoint(sub.Endpoint); got != nil {
		t.Error("subscription still present after delete")
	}
}

func TestDeleteByEndpoint(t *testing.T) {
	s := setupSubscriptionStore(t)

	if _, err := s.Create("u1", "https://push.example/gone", "k", "a", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DeleteByEndpoint("https://push.example/gone"); err != nil {
		t.Fatalf("delete by endpoint: %v", err)
	}
	if got, _ := s.GetByEndpoint("https://push.example/gone"); got != nil {
		t.Error("subscription still present")
	}
}

func TestReminderLogDedup(t *testing.T) {
	s := setupSubscriptionStore(t)

	sent, err := s.WasReminded("u1", "c1", "2026-01-05")
	if err != nil {
		t.Fatalf("was reminded: %v", err)
	}
	if sent {
		t.Error("expected no reminder logged yet")
	}

	if err := s.MarkReminded("u1", "c1", "2026-01-05"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	// Marking twice is a no-op.
	if err := s.MarkReminded("u1", "c1", "2026-01-05"); err != nil {
		t.Fatalf("remark: %v", err)
	}

	sent, err = s.WasReminded("u1", "c1", "2026-01-05")
	if err != nil {
		t.Fatalf("was reminded: %v", err)
	}
	if !sent {
		t.Error("expected reminder logged")
	}

	// Other days and clubs are independent.
	if sent, _ := s.WasReminded("u1", "c1", "2026-01-06"); sent {
		t.Error("next day must start clean")
	}
	if sent, _ := s.WasReminded("u1", "c2", "2026-01-05"); sent {
		t.Error("other club must be independent")
	}
}
