package attendance

import (
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dayShift   = shift.Shift{ID: "s1", Name: "General", StartTime: "09:00", EndTime: "18:00", TimeZone: "Asia/Kolkata"}
	nightShift = shift.Shift{ID: "s2", Name: "Night", StartTime: "22:00", EndTime: "07:00", TimeZone: "Asia/Kolkata"}
)

func kolkataTime(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func strPtr(s string) *string { return &s }

func TestResolveState_NoShiftAssigned(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	info := ResolveState(nil, nil, time.Now(), cfg)
	assert.Equal(t, attendance.StateLoading, info.State)
}

func TestResolveState_DayShiftTimeline(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	// Monday 2026-03-02, no record yet.
	cases := []struct {
		name string
		now  time.Time
		want attendance.State
	}{
		{"well before check-in opens", kolkataTime(t, 2026, 3, 2, 6, 30), attendance.StateUpcoming},
		{"one minute before opening", kolkataTime(t, 2026, 3, 2, 7, 59), attendance.StateUpcoming},
		{"check-in opens, boundary inclusive", kolkataTime(t, 2026, 3, 2, 8, 0), attendance.StateActive},
		{"mid shift", kolkataTime(t, 2026, 3, 2, 13, 0), attendance.StateActive},
		{"checkout grace boundary", kolkataTime(t, 2026, 3, 2, 20, 0), attendance.StateActive},
		{"after grace elapses", kolkataTime(t, 2026, 3, 2, 20, 1), attendance.StateClosed},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			info := ResolveState(&dayShift, nil, c.now, cfg)
			assert.Equal(t, c.want, info.State)
		})
	}
}

func TestResolveState_UpcomingCarriesCountdown(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	info := ResolveState(&dayShift, nil, kolkataTime(t, 2026, 3, 2, 7, 35), cfg)

	require.Equal(t, attendance.StateUpcoming, info.State)
	assert.Equal(t, "check-in opens in 25 minutes", info.Message)
}

func TestResolveState_OvernightShiftSpansMidnight(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	// Same evening, inside today's window.
	info := ResolveState(&nightShift, nil, kolkataTime(t, 2026, 3, 2, 23, 30), cfg)
	assert.Equal(t, attendance.StateActive, info.State)

	// 01:00 the next calendar day, no new record yet: yesterday's occurrence
	// is still open, so this must not read UPCOMING.
	info = ResolveState(&nightShift, nil, kolkataTime(t, 2026, 3, 3, 1, 0), cfg)
	assert.Equal(t, attendance.StateActive, info.State)

	// Past yesterday's grace (07:00 end + 2h) and before today's 21:00 opening.
	info = ResolveState(&nightShift, nil, kolkataTime(t, 2026, 3, 3, 9, 1), cfg)
	assert.Equal(t, attendance.StateUpcoming, info.State)
}

func TestResolveState_WeekendWithoutRecord(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	// Saturday 2026-03-07, even inside what would be the shift window.
	info := ResolveState(&dayShift, nil, kolkataTime(t, 2026, 3, 7, 10, 0), cfg)
	assert.Equal(t, attendance.StateWeekend, info.State)
}

func TestResolveState_StoredRecordWins(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	now := kolkataTime(t, 2026, 3, 2, 13, 0)

	cases := []struct {
		name   string
		record attendance.Record
		want   attendance.State
	}{
		{
			"holiday row overrides the live window",
			attendance.Record{Status: attendance.StatusHoliday},
			attendance.StateHoliday,
		},
		{
			"leave row overrides the live window",
			attendance.Record{Status: attendance.StatusLeave},
			attendance.StateOnLeave,
		},
		{
			"closed absent row",
			attendance.Record{Status: attendance.StatusAbsent},
			attendance.StateAbsent,
		},
		{
			"checked-out row",
			attendance.Record{Status: attendance.StatusPresent, CheckInTime: strPtr("9:02 AM"), CheckOutTime: strPtr("6:11 PM")},
			attendance.StateCompleted,
		},
		{
			"open row",
			attendance.Record{Status: attendance.StatusCheckedIn, CheckInTime: strPtr("9:02 AM")},
			attendance.StateActive,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			info := ResolveState(&dayShift, &c.record, now, cfg)
			assert.Equal(t, c.want, info.State)
		})
	}
}

func TestResolveState_OpenRecordStaysActiveOutsideWindow(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	record := attendance.Record{Status: attendance.StatusCheckedIn, CheckInTime: strPtr("9:02 AM")}

	// Hours past checkOutClose; an open record never auto-closes.
	info := ResolveState(&dayShift, &record, kolkataTime(t, 2026, 3, 2, 23, 45), cfg)
	assert.Equal(t, attendance.StateActive, info.State)
}

func TestResolveState_OpenOvernightRecordStaysActivePastGrace(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	record := attendance.Record{Status: attendance.StatusCheckedIn, CheckInTime: strPtr("10:05 PM")}

	// Past yesterday's checkout grace (09:00) and well before tonight's
	// opening; with no record this instant reads UPCOMING, but a missed
	// checkout keeps the shift active.
	info := ResolveState(&nightShift, &record, kolkataTime(t, 2026, 3, 3, 9, 31), cfg)
	assert.Equal(t, attendance.StateActive, info.State)
}

func TestResolveState_OpenRecordOnWeekendStaysActive(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	record := attendance.Record{Status: attendance.StatusCheckedIn, CheckInTime: strPtr("10:00 AM")}

	info := ResolveState(&dayShift, &record, kolkataTime(t, 2026, 3, 7, 12, 0), cfg)
	assert.Equal(t, attendance.StateActive, info.State)
}
