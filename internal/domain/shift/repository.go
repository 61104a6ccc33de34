package shift

import "context"

// ShiftRepository defines data access methods for shift reference data.
type ShiftRepository interface {
	// GetByID retrieves a shift definition by its identifier
	GetByID(ctx context.Context, id string) (Shift, error)

	// GetByEmployeeID retrieves the shift currently assigned to an employee
	GetByEmployeeID(ctx context.Context, employeeID string) (Shift, error)

	// List retrieves all shift definitions
	List(ctx context.Context) ([]Shift, error)
}
