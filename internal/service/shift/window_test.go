package shift

import (
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func TestResolveWindow_DayShift(t *testing.T) {
	loc := kolkata(t)
	cfg := config.DefaultAttendanceConfig()
	dayShift := shift.Shift{ID: "s1", Name: "General", StartTime: "09:00", EndTime: "18:00", TimeZone: "Asia/Kolkata"}

	referenceDay := time.Date(2026, 3, 2, 12, 0, 0, 0, loc) // Monday

	window := ResolveWindow(dayShift, referenceDay, cfg)

	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, loc), window.ShiftStart)
	assert.Equal(t, time.Date(2026, 3, 2, 18, 0, 0, 0, loc), window.ShiftEnd)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, loc), window.CheckInOpen)
	assert.Equal(t, time.Date(2026, 3, 2, 20, 0, 0, 0, loc), window.CheckOutClose)
}

func TestResolveWindow_OvernightShift(t *testing.T) {
	loc := kolkata(t)
	cfg := config.DefaultAttendanceConfig()
	nightShift := shift.Shift{ID: "s2", Name: "Night", StartTime: "22:00", EndTime: "07:00", TimeZone: "Asia/Kolkata"}

	referenceDay := time.Date(2026, 3, 2, 12, 0, 0, 0, loc)

	window := ResolveWindow(nightShift, referenceDay, cfg)

	assert.Equal(t, time.Date(2026, 3, 2, 22, 0, 0, 0, loc), window.ShiftStart)
	assert.Equal(t, time.Date(2026, 3, 3, 7, 0, 0, 0, loc), window.ShiftEnd, "end wraps to next calendar day")
	assert.Equal(t, time.Date(2026, 3, 2, 21, 0, 0, 0, loc), window.CheckInOpen)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, loc), window.CheckOutClose)
}

func TestResolveWindow_DegenerateShift(t *testing.T) {
	loc := kolkata(t)
	cfg := config.DefaultAttendanceConfig()
	degenerate := shift.Shift{ID: "s3", StartTime: "09:00", EndTime: "09:00", TimeZone: "Asia/Kolkata"}

	window := ResolveWindow(degenerate, time.Date(2026, 3, 2, 12, 0, 0, 0, loc), cfg)

	assert.Equal(t, window.ShiftStart, window.ShiftEnd)
	// The action window collapses to just the grace periods.
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, loc), window.CheckInOpen)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, loc), window.CheckOutClose)
}

func TestResolveWindow_ReferenceDayProjectedIntoShiftZone(t *testing.T) {
	loc := kolkata(t)
	cfg := config.DefaultAttendanceConfig()
	dayShift := shift.Shift{ID: "s1", StartTime: "09:00", EndTime: "18:00", TimeZone: "Asia/Kolkata"}

	// 2026-03-02 21:00 UTC is already 2026-03-03 in Kolkata.
	referenceDay := time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC)

	window := ResolveWindow(dayShift, referenceDay, cfg)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, loc), window.ShiftStart)
}

func TestResolveWindow_UnknownZoneFallsBackToUTC(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	badZone := shift.Shift{ID: "s4", StartTime: "09:00", EndTime: "18:00", TimeZone: "Mars/Olympus"}

	window := ResolveWindow(badZone, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), cfg)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), window.ShiftStart)
}

func TestWindowContains(t *testing.T) {
	loc := kolkata(t)
	cfg := config.DefaultAttendanceConfig()
	dayShift := shift.Shift{ID: "s1", StartTime: "09:00", EndTime: "18:00", TimeZone: "Asia/Kolkata"}
	window := ResolveWindow(dayShift, time.Date(2026, 3, 2, 12, 0, 0, 0, loc), cfg)

	assert.True(t, window.Contains(window.CheckInOpen), "boundary is inclusive")
	assert.True(t, window.Contains(window.CheckOutClose), "boundary is inclusive")
	assert.False(t, window.Contains(window.CheckInOpen.Add(-time.Minute)))
	assert.False(t, window.Contains(window.CheckOutClose.Add(time.Minute)))
}
