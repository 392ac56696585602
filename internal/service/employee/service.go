package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	branchRepo   branch.BranchRepository
	positionRepo position.PositionRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	positionRepo position.PositionRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		branchRepo:   branchRepo,
		positionRepo: positionRepo,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	joinDate, _ := validator.IsValidDate(req.JoinDate)

	if err := s.checkAssignment(ctx, req.BranchID, req.PositionID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		UserID:            req.UserID,
		EmployeeCode:      req.EmployeeCode,
		FullName:          req.FullName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		BranchID:          req.BranchID,
		PositionID:        req.PositionID,
		JoinDate:          joinDate,
		EmploymentStatus:  employee.EmploymentStatusActive,
		AnnualLeaveQuota:  employee.DefaultAnnualLeaveQuota,
		MonthlyLeaveQuota: employee.DefaultMonthlyLeaveQuota,
		HourlyRate:        req.HourlyRate,
	}
	if req.AnnualLeaveQuota != nil {
		newEmployee.AnnualLeaveQuota = *req.AnnualLeaveQuota
	}
	if req.MonthlyLeaveQuota != nil {
		newEmployee.MonthlyLeaveQuota = *req.MonthlyLeaveQuota
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created",
		"employee_id", created.ID,
		"employee_code", created.EmployeeCode,
		"branch_id", created.BranchID,
	)
	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.BranchID != nil {
		emp.BranchID = *req.BranchID
	}
	if req.PositionID != nil {
		emp.PositionID = *req.PositionID
	}
	if req.EmploymentStatus != nil {
		emp.EmploymentStatus = *req.EmploymentStatus
	}
	if req.AnnualLeaveQuota != nil {
		emp.AnnualLeaveQuota = *req.AnnualLeaveQuota
	}
	if req.MonthlyLeaveQuota != nil {
		emp.MonthlyLeaveQuota = *req.MonthlyLeaveQuota
	}
	if req.HourlyRate != nil {
		emp.HourlyRate = req.HourlyRate
	}

	if req.BranchID != nil || req.PositionID != nil {
		if err := s.checkAssignment(ctx, emp.BranchID, emp.PositionID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.EmploymentStatus != nil {
		slog.Info("employee status changed", "employee_id", updated.ID, "status", updated.EmploymentStatus)
	}
	return employee.ToResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	hasHistory, err := s.employeeRepo.HasHistory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check employee history: %w", err)
	}
	if hasHistory {
		return employee.ErrEmployeeHasHistory
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeServiceImpl) checkAssignment(ctx context.Context, branchID, positionID string) error {
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		return err
	}
	if _, err := s.positionRepo.GetByID(ctx, positionID); err != nil {
		return err
	}
	return nil
}
