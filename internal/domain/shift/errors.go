package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrNoShiftAssigned = errors.New("no shift assigned to employee")
)
