package shift

import (
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	StartTime    string  `json:"start_time" validate:"required,clock"`
	EndTime      string  `json:"end_time" validate:"required,clock"`
	BreakMinutes int     `json:"break_minutes" validate:"min=0,max=720"`
	IsOvernight  bool    `json:"is_overnight"`
	Color        *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

func (r *CreateShiftRequest) Validate() error {
	return validator.Struct(r).Err()
}

type UpdateShiftRequest struct {
	ID           string  `json:"id" validate:"required"`
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	StartTime    *string `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime      *string `json:"end_time,omitempty" validate:"omitempty,clock"`
	BreakMinutes *int    `json:"break_minutes,omitempty" validate:"omitempty,min=0,max=720"`
	IsOvernight  *bool   `json:"is_overnight,omitempty"`
	Color        *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

func (r *UpdateShiftRequest) Validate() error {
	return validator.Struct(r).Err()
}

type ShiftResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	IsOvernight  bool   `json:"is_overnight"`
	Color        string `json:"color"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		Name:         s.Name,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		BreakMinutes: s.BreakMinutes,
		IsOvernight:  s.IsOvernight,
		Color:        s.Color,
	}
}
