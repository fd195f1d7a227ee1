package snapshot

import (
	"errors"
	"testing"

	"github.com/danhyun/motiday/internal/database"
)

func setupSnapshotStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestSaveAndLoad(t *testing.T) {
	s := setupSnapshotStore(t)

	if err := s.Save("account:u1", []byte(`{"points":2500}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := s.Load("account:u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"points":2500}` {
		t.Errorf("data = %s", data)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := setupSnapshotStore(t)

	if err := s.Save("device", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("device", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("resave: %v", err)
	}

	data, err := s.Load("device")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("data = %s, want the later write", data)
	}
}

func TestLoadMissing(t *testing.T) {
	s := setupSnapshotStore(t)

	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := setupSnapshotStore(t)

	if err := s.Save("account:u1", []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete("account:u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load("account:u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}

	// Deleting a missing key is not an error.
	if err := s.Delete("nope"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := setupSnapshotStore(t)

	if err := s.Save("account:u1", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save u1: %v", err)
	}
	if err := s.Save("account:m1", []byte(`{"b":2}`)); err != nil {
		t.Fatalf("save m1: %v", err)
	}

	data, err := s.Load("account:u1")
	if err != nil {
		t.Fatalf("load u1: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("u1 data = %s", data)
	}
}
