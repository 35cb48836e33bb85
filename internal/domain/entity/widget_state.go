package entity

import "time"

// WidgetState is everything one browser session displays.
//
// Sequence is the number of the latest search issued for the session; only the
// search holding that number may write its results. LastSeenAt is the time of
// the last user action; background refreshes leave it alone.
type WidgetState struct {
	SessionID  string             `json:"sessionId"`
	Current    *CurrentConditions `json:"current"`
	Hourly     []HourlyEntry      `json:"hourly"`
	Daily      []DailyEntry       `json:"daily"`
	Message    string             `json:"message"`
	Loading    bool               `json:"loading"`
	DarkMode   bool               `json:"darkMode"`
	LastCity   string             `json:"lastCity"`
	Sequence   uint64             `json:"sequence"`
	LastSeenAt time.Time          `json:"lastSeenAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// NewWidgetState returns the empty state of a session that has not searched yet.
func NewWidgetState(sessionID string) WidgetState {
	return WidgetState{
		SessionID: sessionID,
		Hourly:    []HourlyEntry{},
		Daily:     []DailyEntry{},
	}
}

// ClearWeather drops every weather panel.
func (s *WidgetState) ClearWeather() {
	s.Current = nil
	s.ClearForecast()
}

// ClearForecast drops the hourly and daily panels.
func (s *WidgetState) ClearForecast() {
	s.Hourly = []HourlyEntry{}
	s.Daily = []DailyEntry{}
}

// IdleFor reports whether no user action happened in the idle window before now.
func (s WidgetState) IdleFor(idle time.Duration, now time.Time) bool {
	return s.LastSeenAt.Before(now.Add(-idle))
}
