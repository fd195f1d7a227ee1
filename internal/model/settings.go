package model

import "time"

// Weekday keys used throughout schedules, Monday first.
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// WeekdayKey maps a time.Weekday to its schedule key.
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "mon"
	case time.Tuesday:
		return "tue"
	case time.Wednesday:
		return "wed"
	case time.Thursday:
		return "thu"
	case time.Friday:
		return "fri"
	case time.Saturday:
		return "sat"
	default:
		return "sun"
	}
}

// DayConfig is one weekday's reminder setting.
type DayConfig struct {
	Active bool   `json:"active"`
	Time   string `json:"time"`
}

// UserSettings drives reminder scheduling and the weekly view. The global
// Schedule applies unless a per-club override exists in ClubSchedules.
type UserSettings struct {
	CheckInDays   []string                        `json:"check_in_days"`
	Schedule      map[string]DayConfig            `json:"schedule"`
	ClubSchedules map[string]map[string]DayConfig `json:"club_schedules"`
	Notifications bool                            `json:"notifications"`
	Mode          string                          `json:"mode"`
	BirthDate     string                          `json:"birth_date"`
	Job           string                          `json:"job"`
	Category      string                          `json:"category"`
	PushStyle     string                          `json:"push_style"`
	CheckInTime   string                          `json:"check_in_time"`
}

// SettingsPatch is a typed partial update. Nil fields are left unchanged;
// unknown fields are rejected at the decode boundary.
type SettingsPatch struct {
	CheckInDays   *[]string                        `json:"check_in_days,omitempty"`
	Schedule      *map[string]DayConfig            `json:"schedule,omitempty"`
	ClubSchedules *map[string]map[string]DayConfig `json:"club_schedules,omitempty"`
	Notifications *bool                            `json:"notifications,omitempty"`
	Mode          *string                          `json:"mode,omitempty"`
	BirthDate     *string                          `json:"birth_date,omitempty"`
	Job           *string                          `json:"job,omitempty"`
	Category      *string                          `json:"category,omitempty"`
	PushStyle     *string                          `json:"push_style,omitempty"`
	CheckInTime   *string                          `json:"check_in_time,omitempty"`
}

// Apply merges the patch into s, field by field.
func (p SettingsPatch) Apply(s *UserSettings) {
	if p.CheckInDays != nil {
		s.CheckInDays = *p.CheckInDays
	}
	if p.Schedule != nil {
		s.Schedule = *p.Schedule
	}
	if p.ClubSchedules != nil {
		s.ClubSchedules = *p.ClubSchedules
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.BirthDate != nil {
		s.BirthDate = *p.BirthDate
	}
	if p.Job != nil {
		s.Job = *p.Job
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.PushStyle != nil {
		s.PushStyle = *p.PushStyle
	}
	if p.CheckInTime != nil {
		s.CheckInTime = *p.CheckInTime
	}
}

// Clone returns a deep copy. The schedule maps are mutable, so readers must
// never share them with the live settings.
func (s UserSettings) Clone() UserSettings {
	out := s
	if s.CheckInDays != nil {
		out.CheckInDays = make([]string, len(s.CheckInDays))
		copy(out.CheckInDays, s.CheckInDays)
	}
	if s.Schedule != nil {
		out.Schedule = make(map[string]DayConfig, len(s.Schedule))
		for k, v := range s.Schedule {
			out.Schedule[k] = v
		}
	}
	if s.ClubSchedules != nil {
		out.ClubSchedules = make(map[string]map[string]DayConfig, len(s.ClubSchedules))
		for clubID, week := range s.ClubSchedules {
			w := make(map[string]DayConfig, len(week))
			for k, v := range week {
				w[k] = v
			}
			out.ClubSchedules[clubID] = w
		}
	}
	return out
}

// ClubDay returns the effective DayConfig for a club on a weekday: the club
// override if one exists, otherwise the global schedule entry.
func (s UserSettings) ClubDay(clubID, day string) (DayConfig, bool) {
	if cs, ok := s.ClubSchedules[clubID]; ok {
		if dc, ok := cs[day]; ok {
			return dc, true
		}
	}
	dc, ok := s.Schedule[day]
	return dc, ok
}

// DefaultWeek returns the default per-day schedule seeded for new users and
// newly joined clubs: Monday, Wednesday and Friday at 22:00.
func DefaultWeek() map[string]DayConfig {
	week := make(map[string]DayConfig, len(Weekdays))
	for _, d := range Weekdays {
		active := d == "mon" || d == "wed" || d == "fri"
		week[d] = DayConfig{Active: active, Time: "22:00"}
	}
	return week
}
