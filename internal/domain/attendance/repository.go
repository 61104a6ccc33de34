package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// CreateIfAbsent inserts a record unless one already exists for the same
	// (employee, date). It returns the stored row either way plus whether the
	// insert happened, so concurrent check-ins collapse onto one record at
	// the database rather than relying on a check-then-act race.
	CreateIfAbsent(ctx context.Context, record Record) (Record, bool, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a
	// DD/MM/YYYY calendar day; nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Record, error)

	// GetOpenByEmployee retrieves the employee's most recent open record
	GetOpenByEmployee(ctx context.Context, employeeID string) (Record, error)

	// Update updates an existing record
	Update(ctx context.Context, record Record) error

	// ListByEmployee retrieves an employee's records with pagination
	ListByEmployee(ctx context.Context, employeeID string, filter HistoryFilter) ([]Record, int64, error)

	// CountRegularized counts records regularized for the employee in the
	// given calendar month, for quota enforcement
	CountRegularized(ctx context.Context, employeeID string, month time.Month, year int) (int, error)

	// SummarizeMonth aggregates per-status counts for the employee's month
	SummarizeMonth(ctx context.Context, employeeID string, month time.Month, year int) (map[Status]int, error)

	// WithinTransaction runs fn with every repository call made through its
	// context bound to a single database transaction
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
