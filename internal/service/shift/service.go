package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	"github.com/jackc/pgx/v5"
)

// ShiftService exposes shift reference data to the HTTP layer.
type ShiftService interface {
	GetShift(ctx context.Context, id string) (shift.ShiftResponse, error)
	ListShifts(ctx context.Context) ([]shift.ShiftResponse, error)
}

type shiftServiceImpl struct {
	shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) ShiftService {
	return &shiftServiceImpl{ShiftRepository: shiftRepo}
}

// GetShift implements ShiftService.
func (s *shiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	found, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift.ToResponse(found), nil
}

// ListShifts implements ShiftService.
func (s *shiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, item := range shifts {
		responses = append(responses, shift.ToResponse(item))
	}
	return responses, nil
}
