package state

import (
	"errors"
	"testing"

	"github.com/danhyun/motiday/internal/model"
)

func TestUpdateSettingsPartial(t *testing.T) {
	s, _ := setupStore(t)
	loginGeneral(t, s)

	before := s.Settings()

	mode := "solo"
	tm := "07:30"
	updated, err := s.UpdateSettings(model.SettingsPatch{Mode: &mode, CheckInTime: &tm})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Mode != "solo" || updated.CheckInTime != "07:30" {
		t.Errorf("updated = %+v", updated)
	}

	// Untouched fields survive.
	if updated.PushStyle != before.PushStyle {
		t.Errorf("push style changed: %q -> %q", before.PushStyle, updated.PushStyle)
	}
	if updated.Notifications != before.Notifications {
		t.Error("notifications changed unexpectedly")
	}
}

func TestUpdateSettingsRequiresLogin(t *testing.T) {
	s, _ := setupStore(t)

	if _, err := s.UpdateSettings(model.SettingsPatch{}); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestSettingsReturnsDetachedCopy(t *testing.T) {
	s, _ := setupStore(t)
	loginGeneral(t, s)

	// Readers hold their copy outside the store lock, so mutating it (or the
	// store mutating its own maps) must not show through.
	got := s.Settings()
	got.Schedule["mon"] = model.DayConfig{Active: false, Time: "00:00"}
	got.ClubSchedules["c99"] = model.DefaultWeek()

	fresh := s.Settings()
	if dc := fresh.Schedule["mon"]; !dc.Active || dc.Time != "22:00" {
		t.Errorf("schedule mon = %+v, want untouched default", dc)
	}
	if _, ok := fresh.ClubSchedules["c99"]; ok {
		t.Error("club schedule write leaked into the store")
	}

	held := s.Settings()
	if err := s.JoinClub(model.Club{ID: "c7", Title: "Morning Pages"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, ok := held.ClubSchedules["c7"]; ok {
		t.Error("join seeded a schedule into an already-returned copy")
	}
}

func TestClubScheduleOverride(t *testing.T) {
	s, _ := setupStore(t)
	loginGeneral(t, s)

	settings := s.Settings()

	// c1 carries a seeded override; an unknown club falls back to the global
	// schedule.
	if dc, ok := settings.ClubDay("c1", "mon"); !ok || !dc.Active {
		t.Errorf("c1 mon = (%+v, %v), want active", dc, ok)
	}
	if dc, ok := settings.ClubDay("nonexistent", "fri"); !ok || !dc.Active || dc.Time != "22:00" {
		t.Errorf("global fri = (%+v, %v), want active at 22:00", dc, ok)
	}
}
