package attendance

import (
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	shiftService "github.com/attendly/attendance-backend-go/internal/service/shift"
	"github.com/attendly/attendance-backend-go/internal/pkg/timeutil"
)

// Classification thresholds, in effective worked hours. One canonical table
// applies to both ordinary checkout and regularization.
const (
	absentBelowHours = 4.0
	presentFromHours = 6.5
)

// CheckoutResult carries the values a processed checkout writes back onto
// the record.
type CheckoutResult struct {
	CheckOutTime string
	WorkingHours string
	Status       attendance.Status

	// Effective is the worked time clipped to the shift boundaries, the
	// basis for Status. WorkingHours shows the uncapped actual time.
	Effective time.Duration
}

// ComputeCheckout computes the duration and day status for closing an open
// record at `now`. assigned may be nil when the shift in force is unknown, in
// which case the actual elapsed time is credited uncapped.
//
// Calling this without a check-in is a contract violation surfaced as an
// error; callers resolve the open record first.
func ComputeCheckout(record attendance.Record, assigned *shift.Shift, now time.Time, cfg config.AttendanceConfig) (CheckoutResult, error) {
	if record.CheckInTime == nil {
		return CheckoutResult{}, attendance.ErrNotCheckedIn
	}

	loc := locationFor(assigned, cfg)
	day, err := parseRecordDay(record, loc)
	if err != nil {
		return CheckoutResult{}, err
	}

	actualStart := timeutil.CombineDateClock(day, *record.CheckInTime, loc)
	actualEnd := now.In(loc)

	actual := actualEnd.Sub(actualStart)
	if actual < 0 {
		actual = 0
	}

	effective := actual
	if assigned != nil {
		window := shiftService.ResolveWindow(*assigned, day, cfg)
		effective = intersect(actualStart, actualEnd, window.ShiftStart, window.ShiftEnd)
	}

	result := CheckoutResult{
		CheckOutTime: timeutil.FormatClock12(actualEnd),
		WorkingHours: timeutil.FormatDuration(actual),
		Effective:    effective,
	}

	// Both ends at midnight marks a manually entered non-working day: force
	// zero hours and leave whatever status HR already recorded.
	if isMidnight(actualStart) && isMidnight(actualEnd) {
		result.WorkingHours = timeutil.FormatDuration(0)
		result.Effective = 0
		result.Status = record.Status
		return result, nil
	}

	result.Status = classifyStatus(effective)
	return result, nil
}

// classifyStatus maps effective worked time to the day's status.
func classifyStatus(effective time.Duration) attendance.Status {
	hours := effective.Hours()
	switch {
	case hours < absentBelowHours:
		return attendance.StatusAbsent
	case hours < presentFromHours:
		return attendance.StatusHalfDay
	default:
		return attendance.StatusPresent
	}
}

// intersect returns the overlap of [aStart, aEnd] and [bStart, bEnd],
// clamped to zero when they do not overlap.
func intersect(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	overlap := end.Sub(start)
	if overlap < 0 {
		return 0
	}
	return overlap
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0
}

func parseRecordDay(record attendance.Record, loc *time.Location) (time.Time, error) {
	day, err := timeutil.ParseDate(record.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("record %s has unparseable date: %w", record.ID, err)
	}
	return day, nil
}

func locationFor(assigned *shift.Shift, cfg config.AttendanceConfig) *time.Location {
	if assigned != nil {
		return shiftService.Location(*assigned, cfg)
	}
	loc, _ := timeutil.LocationOrUTC(cfg.DefaultTimeZone)
	return loc
}
