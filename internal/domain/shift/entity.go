package shift

import "time"

// Shift is immutable reference data describing a scheduled working window.
// StartTime and EndTime are wall-clock "HH:MM" strings interpreted in the
// shift's own TimeZone, never the caller's. EndTime numerically earlier than
// StartTime means the shift crosses midnight.
type Shift struct {
	ID        string
	Name      string
	StartTime string
	EndTime   string
	TimeZone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window is one occurrence of a shift anchored to a reference day.
// [CheckInOpen, CheckOutClose] is the range during which attendance actions
// are permitted.
type Window struct {
	ShiftStart    time.Time
	ShiftEnd      time.Time
	CheckInOpen   time.Time
	CheckOutClose time.Time
}

// Contains reports whether the instant falls inside the permitted action
// range, boundaries inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.CheckInOpen) && !t.After(w.CheckOutClose)
}
