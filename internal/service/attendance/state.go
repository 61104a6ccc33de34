package attendance

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	shiftService "github.com/attendly/attendance-backend-go/internal/service/shift"
	"github.com/attendly/attendance-backend-go/internal/pkg/timeutil"
)

// ResolveState derives the live attendance state for an employee at `now`.
// assigned may be nil while the shift is still being resolved; record may be
// nil when no row exists for the day yet.
//
// States derived from a stored record always win over states derived from
// the clock: a Holiday/Leave/Absent row reflects an HR decision that a live
// window computation must not override, and an open record stays ACTIVE no
// matter where "now" falls.
func ResolveState(assigned *shift.Shift, record *attendance.Record, now time.Time, cfg config.AttendanceConfig) attendance.StateInfo {
	if assigned == nil {
		return attendance.StateInfo{State: attendance.StateLoading}
	}

	if record != nil {
		switch {
		case record.Status == attendance.StatusHoliday:
			return attendance.StateInfo{State: attendance.StateHoliday}
		case record.Status == attendance.StatusLeave:
			return attendance.StateInfo{State: attendance.StateOnLeave}
		case record.Status == attendance.StatusAbsent && !record.IsOpen():
			return attendance.StateInfo{State: attendance.StateAbsent}
		case record.CheckOutTime != nil:
			return attendance.StateInfo{State: attendance.StateCompleted}
		case record.IsOpen():
			return attendance.StateInfo{State: attendance.StateActive}
		}
	}

	localNow := now.In(shiftService.Location(*assigned, cfg))

	if record == nil && timeutil.IsWeekend(localNow) {
		return attendance.StateInfo{State: attendance.StateWeekend}
	}

	// Yesterday's occurrence first: an overnight shift that began yesterday
	// and is still inside its grace window must stay ACTIVE past midnight.
	yesterday := shiftService.ResolveWindow(*assigned, localNow.AddDate(0, 0, -1), cfg)
	today := shiftService.ResolveWindow(*assigned, localNow, cfg)
	if yesterday.Contains(localNow) || today.Contains(localNow) {
		return attendance.StateInfo{State: attendance.StateActive}
	}

	if localNow.Before(today.CheckInOpen) {
		return attendance.StateInfo{
			State:   attendance.StateUpcoming,
			Message: "check-in opens " + timeutil.HumanizeUntil(localNow, today.CheckInOpen),
		}
	}

	return attendance.StateInfo{State: attendance.StateClosed}
}
