package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// EmployeeIDFromContext extracts the employee_id claim placed in the request
// context by the jwtauth verifier middleware.
func EmployeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("%w: employee_id", ErrMissingClaims)
	}

	return employeeID, nil
}
