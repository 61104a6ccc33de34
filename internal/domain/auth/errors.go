package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidToken  = errors.New("invalid or missing token")
	ErrMissingClaims = errors.New("required claims are missing from token")
)
