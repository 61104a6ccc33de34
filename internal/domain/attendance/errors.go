package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/out errors
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrNoOpenRecord      = errors.New("no open attendance record")

	// Regularization errors
	ErrQuotaExceeded    = errors.New("monthly regularization quota exhausted")
	ErrNotRegularizable = errors.New("record is not eligible for regularization")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrInvalidStatus  = errors.New("invalid attendance status")
	ErrUnauthorized   = errors.New("unauthorized to access this attendance record")
)
