package attendance

import (
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRecord(date, checkIn string) attendance.Record {
	return attendance.Record{
		ID:          "rec-1",
		EmployeeID:  "emp-1",
		Date:        date,
		CheckInTime: strPtr(checkIn),
		Status:      attendance.StatusCheckedIn,
		ShiftID:     dayShift.ID,
	}
}

func TestComputeCheckout_EffectiveCappedToShift(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	// Arrived early, left late: display shows the full 09:30 but status is
	// classified on the 09:00 inside the scheduled window.
	record := openRecord("02/03/2026", "8:50 AM")
	now := kolkataTime(t, 2026, 3, 2, 18, 20)

	result, err := ComputeCheckout(record, &dayShift, now, cfg)
	require.NoError(t, err)

	assert.Equal(t, "09:30", result.WorkingHours)
	assert.Equal(t, 9*time.Hour, result.Effective)
	assert.Equal(t, attendance.StatusPresent, result.Status)
	assert.Equal(t, "6:20 PM", result.CheckOutTime)
}

func TestComputeCheckout_Classification(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	cases := []struct {
		name    string
		checkIn string
		outHour int
		outMin  int
		want    attendance.Status
	}{
		{"under four hours is absent", "9:00 AM", 12, 30, attendance.StatusAbsent},
		{"exactly four hours is half day", "9:00 AM", 13, 0, attendance.StatusHalfDay},
		{"five hours is half day", "9:00 AM", 14, 0, attendance.StatusHalfDay},
		{"six and a half hours is present", "9:00 AM", 15, 30, attendance.StatusPresent},
		{"full shift is present", "9:00 AM", 18, 0, attendance.StatusPresent},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			record := openRecord("02/03/2026", c.checkIn)
			now := kolkataTime(t, 2026, 3, 2, c.outHour, c.outMin)

			result, err := ComputeCheckout(record, &dayShift, now, cfg)
			require.NoError(t, err)
			assert.Equal(t, c.want, result.Status)
		})
	}
}

func TestComputeCheckout_NoShiftCreditsActualTime(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	record := openRecord("02/03/2026", "8:00 AM")
	record.ShiftID = ""
	// Default zone applies when no shift is known.
	now := kolkataTime(t, 2026, 3, 2, 19, 0)

	result, err := ComputeCheckout(record, nil, now, cfg)
	require.NoError(t, err)

	assert.Equal(t, "11:00", result.WorkingHours)
	assert.Equal(t, 11*time.Hour, result.Effective)
	assert.Equal(t, attendance.StatusPresent, result.Status)
}

func TestComputeCheckout_ClockSkewClampsToZero(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	record := openRecord("02/03/2026", "6:00 PM")
	now := kolkataTime(t, 2026, 3, 2, 9, 0)

	result, err := ComputeCheckout(record, &dayShift, now, cfg)
	require.NoError(t, err)

	assert.Equal(t, "00:00", result.WorkingHours)
	assert.Equal(t, time.Duration(0), result.Effective)
	assert.Equal(t, attendance.StatusAbsent, result.Status)
}

func TestComputeCheckout_MidnightPairLeavesStatusAlone(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	// Both ends at midnight mark a manually entered non-working day.
	record := openRecord("02/03/2026", "12:00 AM")
	record.Status = attendance.StatusHoliday
	now := kolkataTime(t, 2026, 3, 2, 0, 0)

	result, err := ComputeCheckout(record, &dayShift, now, cfg)
	require.NoError(t, err)

	assert.Equal(t, "00:00", result.WorkingHours)
	assert.Equal(t, attendance.StatusHoliday, result.Status, "status must not be reclassified")
}

func TestComputeCheckout_WithoutCheckInIsContractViolation(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	record := openRecord("02/03/2026", "9:00 AM")
	record.CheckInTime = nil

	_, err := ComputeCheckout(record, &dayShift, time.Now(), cfg)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestComputeCheckout_UnparseableCheckInFallsBackToMidnight(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	record := openRecord("02/03/2026", "??:??")
	now := kolkataTime(t, 2026, 3, 2, 10, 0)

	result, err := ComputeCheckout(record, &dayShift, now, cfg)
	require.NoError(t, err)

	// Midnight fallback: 10 hours shown, but only 09:00-10:00 overlaps the shift.
	assert.Equal(t, "10:00", result.WorkingHours)
	assert.Equal(t, time.Hour, result.Effective)
	assert.Equal(t, attendance.StatusAbsent, result.Status)
}

func TestComputeCheckout_OvernightShift(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	record := openRecord("02/03/2026", "10:05 PM")
	record.ShiftID = nightShift.ID
	now := kolkataTime(t, 2026, 3, 3, 7, 10)

	result, err := ComputeCheckout(record, &nightShift, now, cfg)
	require.NoError(t, err)

	assert.Equal(t, "09:05", result.WorkingHours)
	assert.Equal(t, 8*time.Hour+55*time.Minute, result.Effective)
	assert.Equal(t, attendance.StatusPresent, result.Status)
}
