package attendance

import (
	"testing"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegularize_SynthesizesCheckoutAtShiftEnd(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	record := openRecord("02/03/2026", "9:10 AM")

	updated, err := Regularize(record, dayShift, 0, cfg)
	require.NoError(t, err)

	require.NotNil(t, updated.CheckOutTime)
	assert.Equal(t, "6:00 PM", *updated.CheckOutTime)
	require.NotNil(t, updated.WorkingHours)
	assert.Equal(t, "08:50", *updated.WorkingHours)
	assert.Equal(t, attendance.StatusPresent, updated.Status)
	require.NotNil(t, updated.Regularized)
	assert.Equal(t, attendance.RegularizedFlag, *updated.Regularized)
}

func TestRegularize_UsesSameClassificationAsCheckout(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	// Checked in with only three hours left before shift end.
	record := openRecord("02/03/2026", "3:00 PM")

	updated, err := Regularize(record, dayShift, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, updated.Status)

	// Five hours before shift end lands in the half-day band.
	record = openRecord("02/03/2026", "1:00 PM")
	updated, err = Regularize(record, dayShift, 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, updated.Status)
}

func TestRegularize_OvernightShiftEndsNextDay(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	record := openRecord("02/03/2026", "10:05 PM")
	record.ShiftID = nightShift.ID

	updated, err := Regularize(record, nightShift, 0, cfg)
	require.NoError(t, err)

	require.NotNil(t, updated.CheckOutTime)
	assert.Equal(t, "7:00 AM", *updated.CheckOutTime)
	assert.Equal(t, attendance.StatusPresent, updated.Status)
}

func TestRegularize_QuotaCheckedBeforeMutation(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	record := openRecord("02/03/2026", "9:10 AM")

	updated, err := Regularize(record, dayShift, cfg.RegularizationMonthlyQuota, cfg)
	assert.ErrorIs(t, err, attendance.ErrQuotaExceeded)

	// The record comes back untouched.
	assert.Equal(t, record, updated)
	assert.Nil(t, updated.CheckOutTime)
	assert.Nil(t, updated.Regularized)
	assert.Equal(t, attendance.StatusCheckedIn, updated.Status)
}

func TestRegularize_RequiresOpenRecord(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()

	closed := openRecord("02/03/2026", "9:10 AM")
	closed.CheckOutTime = strPtr("6:05 PM")
	_, err := Regularize(closed, dayShift, 0, cfg)
	assert.ErrorIs(t, err, attendance.ErrNotRegularizable)

	never := openRecord("02/03/2026", "9:10 AM")
	never.CheckInTime = nil
	_, err = Regularize(never, dayShift, 0, cfg)
	assert.ErrorIs(t, err, attendance.ErrNotRegularizable)
}

func TestRegularize_QuotaBelowLimitSucceeds(t *testing.T) {
	cfg := config.DefaultAttendanceConfig()
	record := openRecord("02/03/2026", "9:10 AM")

	_, err := Regularize(record, dayShift, cfg.RegularizationMonthlyQuota-1, cfg)
	assert.NoError(t, err)
}
