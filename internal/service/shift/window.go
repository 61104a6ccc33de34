package shift

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	"github.com/attendly/attendance-backend-go/internal/pkg/timeutil"
)

// Location resolves the zone a shift's wall-clock times are interpreted in,
// falling back first to the configured default zone and then to UTC.
func Location(s shift.Shift, cfg config.AttendanceConfig) *time.Location {
	zone := s.TimeZone
	if zone == "" {
		zone = cfg.DefaultTimeZone
	}
	loc, _ := timeutil.LocationOrUTC(zone)
	return loc
}

// ResolveWindow computes the shift occurrence anchored to referenceDay: the
// start/end instants plus the check-in-open and check-out-close boundaries
// derived from the configured grace windows. referenceDay may be any instant;
// only its calendar day in the shift's zone matters.
//
// A shift whose end does not follow its start wraps to the next calendar day
// (an overnight shift). Degenerate shifts (start == end) still yield a
// window spanning just the grace periods.
func ResolveWindow(s shift.Shift, referenceDay time.Time, cfg config.AttendanceConfig) shift.Window {
	loc := Location(s, cfg)
	day := referenceDay.In(loc)

	start := timeutil.CombineDateClock(day, s.StartTime, loc)
	end := timeutil.CombineDateClock(day, s.EndTime, loc)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	return shift.Window{
		ShiftStart:    start,
		ShiftEnd:      end,
		CheckInOpen:   start.Add(-time.Duration(cfg.CheckInWindowMinutes) * time.Minute),
		CheckOutClose: end.Add(time.Duration(cfg.CheckOutWindowMinutes) * time.Minute),
	}
}
