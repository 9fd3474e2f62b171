package models

import "time"

// UserActivity counts distinct calendar days on which the browser was used.
// LastActiveDay is normalized to the start of the day in the engine calendar;
// its zero value means no activity has ever been recorded.
type UserActivity struct {
	LastActiveDay time.Time `json:"last_active_day"`
	ActiveDays    int       `json:"active_days"`
}

func (a UserActivity) IsZero() bool {
	return a.ActiveDays == 0 && a.LastActiveDay.IsZero()
}

// SameDay reports whether day falls on the already-counted calendar day.
func (a UserActivity) SameDay(day time.Time) bool {
	if a.LastActiveDay.IsZero() {
		return false
	}
	y1, m1, d1 := a.LastActiveDay.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
