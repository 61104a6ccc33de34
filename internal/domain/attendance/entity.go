package attendance

import (
	"fmt"
	"time"
)

// Status is the closed set of values an attendance record may carry in the
// store. Free-form strings are rejected at the repository boundary via
// ParseStatus, never inside the engine.
type Status string

const (
	// StatusCheckedIn marks a record with an open check-in, pre-checkout.
	StatusCheckedIn Status = "IN"
	StatusPresent   Status = "Present"
	StatusHalfDay   Status = "Half Day"
	StatusAbsent    Status = "Absent"
	StatusHoliday   Status = "Holiday"
	StatusLeave     Status = "Leave"
)

var statusValues = map[Status]struct{}{
	StatusCheckedIn: {},
	StatusPresent:   {},
	StatusHalfDay:   {},
	StatusAbsent:    {},
	StatusHoliday:   {},
	StatusLeave:     {},
}

// ParseStatus validates a stored status string against the closed set.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := statusValues[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// RegularizedFlag is the store encoding for a regularized record.
const RegularizedFlag = "YES"

// Record is one row per (employee, calendar day). Date is a DD/MM/YYYY
// calendar date; CheckInTime/CheckOutTime are 12-hour wall-clock strings.
// A set CheckInTime with no CheckOutTime denotes an open record.
type Record struct {
	ID           string
	EmployeeID   string
	Date         string
	CheckInTime  *string
	CheckOutTime *string
	Status       Status
	ShiftID      string
	WorkingHours *string
	Regularized  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOpen reports whether the record has a check-in but no checkout yet.
func (r Record) IsOpen() bool {
	return r.CheckInTime != nil && r.CheckOutTime == nil
}

// IsRegularized reports whether the record was closed by regularization.
func (r Record) IsRegularized() bool {
	return r.Regularized != nil && *r.Regularized == RegularizedFlag
}

// State is what the live attendance view shows for an employee at an
// instant, derived from the shift window and any stored record.
type State string

const (
	StateLoading   State = "LOADING"
	StateWeekend   State = "WEEKEND"
	StateHoliday   State = "HOLIDAY"
	StateOnLeave   State = "ON_LEAVE"
	StateAbsent    State = "ABSENT"
	StateCompleted State = "COMPLETED"
	StateActive    State = "ACTIVE"
	StateUpcoming  State = "UPCOMING"
	StateClosed    State = "CLOSED"
)

// StateInfo pairs a derived state with presentation details. Message is only
// set for UPCOMING and holds a human-readable countdown to check-in opening.
type StateInfo struct {
	State   State
	Message string
}
