package department

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID            string                      `json:"id"`
	Name          string                      `json:"name"`
	PositionCount int64                       `json:"position_count"`
	Positions     []position.PositionResponse `json:"positions,omitempty"`
	CreatedAt     string                      `json:"created_at"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		PositionCount: d.PositionCount,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"max=100"`
}

func (r *CreateDepartmentRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}

type UpdateDepartmentRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"max=100"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}
