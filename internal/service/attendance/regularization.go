package attendance

import (
	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	shiftService "github.com/attendly/attendance-backend-go/internal/service/shift"
)

// Regularize closes a record with a missed checkout by synthesizing the
// checkout at the shift's end instant, recomputing hours and status with the
// same classification table as an ordinary checkout, and marking the record
// regularized.
//
// quotaUsed is the number of records the employee has already regularized in
// the calendar month containing record.Date. The quota is verified before
// the record is touched; on any error the input record is returned unchanged.
func Regularize(record attendance.Record, assigned shift.Shift, quotaUsed int, cfg config.AttendanceConfig) (attendance.Record, error) {
	if !record.IsOpen() {
		return record, attendance.ErrNotRegularizable
	}
	if quotaUsed >= cfg.RegularizationMonthlyQuota {
		return record, attendance.ErrQuotaExceeded
	}

	loc := shiftService.Location(assigned, cfg)
	day, err := parseRecordDay(record, loc)
	if err != nil {
		return record, err
	}

	window := shiftService.ResolveWindow(assigned, day, cfg)
	result, err := ComputeCheckout(record, &assigned, window.ShiftEnd, cfg)
	if err != nil {
		return record, err
	}

	flag := attendance.RegularizedFlag
	record.CheckOutTime = &result.CheckOutTime
	record.WorkingHours = &result.WorkingHours
	record.Status = result.Status
	record.Regularized = &flag
	return record, nil
}
