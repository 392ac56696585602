package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/shift"
)

type ShiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{shiftRepo: shiftRepo}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	color := shift.DefaultColor
	if req.Color != nil {
		color = *req.Color
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		IsOvernight:  req.IsOvernight,
		Color:        color,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift.ToResponse(created), nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	found, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(found), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToResponse(sh))
	}
	return responses, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.StartTime != nil {
		existing.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		existing.EndTime = *req.EndTime
	}
	if req.BreakMinutes != nil {
		existing.BreakMinutes = *req.BreakMinutes
	}
	if req.IsOvernight != nil {
		existing.IsOvernight = *req.IsOvernight
	}
	if req.Color != nil {
		existing.Color = *req.Color
	}

	updated, err := s.shiftRepo.Update(ctx, existing)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return shift.ToResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.shiftRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.shiftRepo.CountAttendances(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count shift attendances: %w", err)
	}
	if count > 0 {
		return shift.ErrShiftInUse
	}

	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	slog.Info("shift deleted", "shift_id", id)
	return nil
}

// Detect implements shift.ShiftService.
func (s *ShiftServiceImpl) Detect(ctx context.Context, at time.Time) (shift.Shift, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	return Detect(shifts, at)
}
