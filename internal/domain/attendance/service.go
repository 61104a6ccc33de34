package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
// The authenticated employee is taken from JWT claims in the request context.
type AttendanceService interface {
	// CheckIn records the start of the employee's working day. Calling it
	// again on the same day returns the existing record unchanged.
	CheckIn(ctx context.Context) (RecordResponse, error)

	// CheckOut closes the employee's open record, computing worked hours and
	// the day's status
	CheckOut(ctx context.Context) (RecordResponse, error)

	// Status derives the live attendance state for the employee's shift
	Status(ctx context.Context) (StatusResponse, error)

	// Regularize synthesizes a checkout at shift end for a missed checkout,
	// subject to the monthly quota
	Regularize(ctx context.Context, recordID string) (RecordResponse, error)

	// GetMyAttendance retrieves the employee's attendance history
	GetMyAttendance(ctx context.Context, filter HistoryFilter) (ListRecordsResponse, error)

	// GetMonthlySummary aggregates the employee's month by status
	GetMonthlySummary(ctx context.Context, month int, year int) (MonthlySummaryResponse, error)
}
