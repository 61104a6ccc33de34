package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// External text formats used by the attendance store.
const (
	DateLayout    = "02/01/2006" // DD/MM/YYYY calendar dates
	Clock24Layout = "15:04"      // shift start/end times
	Clock12Layout = "3:04 PM"    // recorded check-in/out times
)

// LocationOrUTC resolves an IANA zone name, falling back to UTC on anything
// it cannot load. Attendance availability takes priority over geographic
// precision, so a bad zone in shift configuration must never block check-in.
// The second return reports whether the fallback was taken so the caller can
// log a warning.
func LocationOrUTC(name string) (*time.Location, bool) {
	if strings.TrimSpace(name) == "" {
		return time.UTC, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, true
	}
	return loc, false
}

// ProjectToZone converts an absolute instant into the wall clock of the named
// zone. Unknown zones project into UTC.
func ProjectToZone(t time.Time, zone string) time.Time {
	loc, _ := LocationOrUTC(zone)
	return t.In(loc)
}

// ParseDate parses a DD/MM/YYYY calendar date in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a calendar date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses a wall-clock string in either the 24-hour "HH:MM" form
// used for shift boundaries or the 12-hour "H:MM AM/PM" form used for
// recorded check-in/out times.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if t, perr := time.Parse(Clock12Layout, strings.ToUpper(s)); perr == nil {
		return t.Hour(), t.Minute(), nil
	}
	t, perr := time.Parse(Clock24Layout, s)
	if perr != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

// CombineDateClock anchors a wall-clock string to a calendar day in the given
// location. An unparseable clock string falls back to midnight of that day so
// one malformed record never blocks state derivation.
func CombineDateClock(day time.Time, clock string, loc *time.Location) time.Time {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		hour, minute = 0, 0
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

// FormatClock12 renders an instant's wall clock in the 12-hour display form.
func FormatClock12(t time.Time) string {
	return t.Format(Clock12Layout)
}

// FormatDuration renders a duration as zero-padded "HH:MM". Negative
// durations (clock skew) clamp to "00:00".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// HumanizeUntil describes how far away a future instant is, for countdown
// labels like "in 25 minutes" or "in 2 hours". Past or immediate instants
// read "now".
func HumanizeUntil(from, until time.Time) string {
	d := until.Sub(from)
	if d <= 0 {
		return "now"
	}
	minutes := int(d.Round(time.Minute).Minutes())
	switch {
	case minutes < 1:
		return "in less than a minute"
	case minutes < 60:
		if minutes == 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", minutes)
	default:
		hours := minutes / 60
		rem := minutes % 60
		if rem == 0 {
			if hours == 1 {
				return "in 1 hour"
			}
			return fmt.Sprintf("in %d hours", hours)
		}
		return fmt.Sprintf("in %dh %dm", hours, rem)
	}
}

// IsWeekend reports whether the instant's zone-local calendar day is a
// Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}
