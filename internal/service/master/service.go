package master

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
)

type MasterService interface {
	// Branch operations
	CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error)
	GetBranch(ctx context.Context, id string) (branch.BranchResponse, error)
	ListBranches(ctx context.Context) ([]branch.BranchResponse, error)
	UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error)
	DeleteBranch(ctx context.Context, id string) error

	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Position operations
	CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error)
	GetPosition(ctx context.Context, id string) (position.PositionResponse, error)
	ListPositions(ctx context.Context, filter position.PositionFilter) ([]position.PositionResponse, error)
	UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) (position.PositionResponse, error)
	DeletePosition(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	branchRepo     branch.BranchRepository
	departmentRepo department.DepartmentRepository
	positionRepo   position.PositionRepository
}

func NewMasterService(
	branchRepo branch.BranchRepository,
	departmentRepo department.DepartmentRepository,
	positionRepo position.PositionRepository,
) MasterService {
	return &masterServiceImpl{
		branchRepo:     branchRepo,
		departmentRepo: departmentRepo,
		positionRepo:   positionRepo,
	}
}

// ==================== BRANCH OPERATIONS ====================

func (s *masterServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}
	req.ApplyDefaults()

	created, err := s.branchRepo.Create(ctx, branch.Branch{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: *req.RadiusMeters,
		Timezone:     *req.Timezone,
	})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	slog.Info("branch created", "branch_id", created.ID, "name", created.Name)
	return branch.ToResponse(created), nil
}

func (s *masterServiceImpl) GetBranch(ctx context.Context, id string) (branch.BranchResponse, error) {
	entity, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(entity), nil
}

func (s *masterServiceImpl) ListBranches(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	// If no branches found, return empty list instead of error
	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, branch.ToResponse(b))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	entity, err := s.branchRepo.GetByID(ctx, req.ID)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	if req.Name != nil {
		entity.Name = *req.Name
	}
	if req.Address != nil {
		entity.Address = req.Address
	}
	if req.Latitude != nil && req.Longitude != nil {
		entity.Latitude = req.Latitude
		entity.Longitude = req.Longitude
	}
	if req.RadiusMeters != nil {
		entity.RadiusMeters = *req.RadiusMeters
	}
	if req.Timezone != nil && *req.Timezone != "" {
		entity.Timezone = *req.Timezone
	}

	updated, err := s.branchRepo.Update(ctx, entity)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeleteBranch(ctx context.Context, id string) error {
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.branchRepo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count branch employees: %w", err)
	}
	if count > 0 {
		return branch.ErrBranchHasEmployees
	}

	if err := s.branchRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("branch deleted", "branch_id", id)
	return nil
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{Name: req.Name})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	slog.Info("department created", "department_id", created.ID, "name", created.Name)
	return department.ToResponse(created), nil
}

// GetDepartment returns the department together with its positions.
func (s *masterServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	entity, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	positions, err := s.positionRepo.List(ctx, position.PositionFilter{DepartmentID: &entity.ID})
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to list department positions: %w", err)
	}

	resp := department.ToResponse(entity)
	resp.Positions = make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		resp.Positions = append(resp.Positions, position.ToResponse(p))
	}
	return resp, nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.ToResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	entity, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	entity.Name = req.Name

	updated, err := s.departmentRepo.Update(ctx, entity)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.departmentRepo.CountPositions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count department positions: %w", err)
	}
	if count > 0 {
		return &department.HasPositionsError{Count: count}
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("department deleted", "department_id", id)
	return nil
}

// ==================== POSITION OPERATIONS ====================

func (s *masterServiceImpl) CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}
	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return position.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, position.Position{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		BaseSalary:   req.BaseSalary,
		Allowance:    req.Allowance,
	})
	if err != nil {
		return position.PositionResponse{}, err
	}

	slog.Info("position created", "position_id", created.ID, "name", created.Name)
	return position.ToResponse(created), nil
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, id string) (position.PositionResponse, error) {
	entity, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(entity), nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context, filter position.PositionFilter) ([]position.PositionResponse, error) {
	positions, err := s.positionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, position.ToResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	entity, err := s.positionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return position.PositionResponse{}, err
	}

	if req.DepartmentID != nil && *req.DepartmentID != entity.DepartmentID {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return position.PositionResponse{}, err
		}
		entity.DepartmentID = *req.DepartmentID
	}
	if req.Name != nil {
		entity.Name = *req.Name
	}
	if req.BaseSalary != nil {
		entity.BaseSalary = req.BaseSalary
	}
	if req.Allowance != nil {
		entity.Allowance = req.Allowance
	}

	updated, err := s.positionRepo.Update(ctx, entity)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeletePosition(ctx context.Context, id string) error {
	if _, err := s.positionRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.positionRepo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count position employees: %w", err)
	}
	if count > 0 {
		return position.ErrPositionHasEmployees
	}

	if err := s.positionRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("position deleted", "position_id", id)
	return nil
}
