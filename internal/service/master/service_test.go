package master

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBranchRepo struct {
	branches  map[string]branch.Branch
	employees map[string]int64
	seq       int
}

func (f *fakeBranchRepo) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	for _, existing := range f.branches {
		if existing.Name == b.Name {
			return branch.Branch{}, branch.ErrBranchNameExists
		}
	}
	f.seq++
	b.ID = fmt.Sprintf("branch-%d", f.seq)
	f.branches[b.ID] = b
	return b, nil
}

func (f *fakeBranchRepo) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (f *fakeBranchRepo) List(ctx context.Context) ([]branch.Branch, error) {
	var list []branch.Branch
	for _, b := range f.branches {
		list = append(list, b)
	}
	return list, nil
}

func (f *fakeBranchRepo) Update(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	f.branches[b.ID] = b
	return b, nil
}

func (f *fakeBranchRepo) Delete(ctx context.Context, id string) error {
	delete(f.branches, id)
	return nil
}

func (f *fakeBranchRepo) GetByEmployeeID(ctx context.Context, employeeID string) (branch.Branch, error) {
	return branch.Branch{}, branch.ErrBranchNotFound
}

func (f *fakeBranchRepo) CountEmployees(ctx context.Context, id string) (int64, error) {
	return f.employees[id], nil
}

type fakeDepartmentRepo struct {
	departments map[string]department.Department
	positions   *fakePositionRepo
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	for _, existing := range f.departments {
		if existing.Name == d.Name {
			return department.Department{}, department.ErrDepartmentNameExists
		}
	}
	d.ID = uuid.NewString()
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	d.PositionCount, _ = f.CountPositions(ctx, id)
	return d, nil
}

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	var list []department.Department
	for id := range f.departments {
		d, _ := f.GetByID(ctx, id)
		list = append(list, d)
	}
	return list, nil
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, d department.Department) (department.Department, error) {
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	delete(f.departments, id)
	return nil
}

func (f *fakeDepartmentRepo) CountPositions(ctx context.Context, id string) (int64, error) {
	var n int64
	for _, p := range f.positions.positions {
		if p.DepartmentID == id {
			n++
		}
	}
	return n, nil
}

type fakePositionRepo struct {
	positions map[string]position.Position
	employees map[string]int64
	seq       int
}

func (f *fakePositionRepo) Create(ctx context.Context, p position.Position) (position.Position, error) {
	f.seq++
	p.ID = fmt.Sprintf("position-%d", f.seq)
	f.positions[p.ID] = p
	return p, nil
}

func (f *fakePositionRepo) GetByID(ctx context.Context, id string) (position.Position, error) {
	p, ok := f.positions[id]
	if !ok {
		return position.Position{}, position.ErrPositionNotFound
	}
	return p, nil
}

func (f *fakePositionRepo) List(ctx context.Context, filter position.PositionFilter) ([]position.Position, error) {
	var list []position.Position
	for _, p := range f.positions {
		if filter.DepartmentID != nil && p.DepartmentID != *filter.DepartmentID {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

func (f *fakePositionRepo) Update(ctx context.Context, p position.Position) (position.Position, error) {
	f.positions[p.ID] = p
	return p, nil
}

func (f *fakePositionRepo) Delete(ctx context.Context, id string) error {
	delete(f.positions, id)
	return nil
}

func (f *fakePositionRepo) CountEmployees(ctx context.Context, id string) (int64, error) {
	return f.employees[id], nil
}

func newTestMasterService() (MasterService, *fakeBranchRepo, *fakePositionRepo) {
	branches := &fakeBranchRepo{branches: map[string]branch.Branch{}, employees: map[string]int64{}}
	positions := &fakePositionRepo{positions: map[string]position.Position{}, employees: map[string]int64{}}
	departments := &fakeDepartmentRepo{departments: map[string]department.Department{}, positions: positions}
	return NewMasterService(branches, departments, positions), branches, positions
}

func createDepartment(t *testing.T, svc MasterService, name string) department.DepartmentResponse {
	t.Helper()
	resp, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{Name: name})
	require.NoError(t, err)
	return resp
}

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func stringPtr(v string) *string    { return &v }

func TestMasterService_CreateBranch_Defaults(t *testing.T) {
	svc, _, _ := newTestMasterService()

	resp, err := svc.CreateBranch(context.Background(), branch.CreateBranchRequest{
		Name:      "Head Office",
		Latitude:  float64Ptr(-6.2),
		Longitude: float64Ptr(106.816666),
	})

	require.NoError(t, err)
	assert.Equal(t, branch.DefaultRadiusMeters, resp.RadiusMeters)
	assert.Equal(t, branch.DefaultTimezone, resp.Timezone)
}

func TestMasterService_CreateBranch_Validation(t *testing.T) {
	svc, _, _ := newTestMasterService()

	_, err := svc.CreateBranch(context.Background(), branch.CreateBranchRequest{
		Name:         "Remote",
		Latitude:     float64Ptr(-6.2),
		RadiusMeters: intPtr(20000),
		Timezone:     stringPtr("Mars/Olympus"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "latitude")
	assert.Contains(t, fields, "radius")
	assert.Contains(t, fields, "timezone")
}

func TestMasterService_CreateBranch_DuplicateName(t *testing.T) {
	svc, _, _ := newTestMasterService()
	ctx := context.Background()

	_, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Head Office"})
	require.NoError(t, err)

	_, err = svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Head Office"})
	assert.ErrorIs(t, err, branch.ErrBranchNameExists)
}

func TestMasterService_UpdateBranch_PartialFields(t *testing.T) {
	svc, _, _ := newTestMasterService()
	ctx := context.Background()

	created, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Head Office", RadiusMeters: intPtr(100)})
	require.NoError(t, err)

	updated, err := svc.UpdateBranch(ctx, branch.UpdateBranchRequest{ID: created.ID, Timezone: stringPtr("Asia/Makassar")})

	require.NoError(t, err)
	assert.Equal(t, "Head Office", updated.Name)
	assert.Equal(t, 100, updated.RadiusMeters)
	assert.Equal(t, "Asia/Makassar", updated.Timezone)
}

func TestMasterService_DeleteBranch(t *testing.T) {
	svc, branches, _ := newTestMasterService()
	ctx := context.Background()

	created, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Head Office"})
	require.NoError(t, err)

	branches.employees[created.ID] = 3
	assert.ErrorIs(t, svc.DeleteBranch(ctx, created.ID), branch.ErrBranchHasEmployees)

	branches.employees[created.ID] = 0
	require.NoError(t, svc.DeleteBranch(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteBranch(ctx, created.ID), branch.ErrBranchNotFound)
}

func TestMasterService_Position(t *testing.T) {
	svc, _, positions := newTestMasterService()
	ctx := context.Background()
	dept := createDepartment(t, svc, "Engineering")

	base := decimal.NewFromInt(7000000)
	created, err := svc.CreatePosition(ctx, position.CreatePositionRequest{DepartmentID: dept.ID, Name: "Engineer", BaseSalary: &base})
	require.NoError(t, err)
	assert.Nil(t, created.Allowance)
	assert.Equal(t, dept.ID, created.DepartmentID)

	allowance := decimal.NewFromInt(750000)
	updated, err := svc.UpdatePosition(ctx, position.UpdatePositionRequest{ID: created.ID, Allowance: &allowance})
	require.NoError(t, err)
	assert.Equal(t, "Engineer", updated.Name)
	require.NotNil(t, updated.BaseSalary)
	assert.True(t, base.Equal(*updated.BaseSalary))
	require.NotNil(t, updated.Allowance)
	assert.True(t, allowance.Equal(*updated.Allowance))

	positions.employees[created.ID] = 1
	assert.ErrorIs(t, svc.DeletePosition(ctx, created.ID), position.ErrPositionHasEmployees)
}

func TestMasterService_CreatePosition_NegativeSalary(t *testing.T) {
	svc, _, _ := newTestMasterService()

	negative := decimal.NewFromInt(-1)
	dept := createDepartment(t, svc, "Engineering")
	_, err := svc.CreatePosition(context.Background(), position.CreatePositionRequest{DepartmentID: dept.ID, Name: "Engineer", BaseSalary: &negative})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "base_salary")
}

func TestMasterService_Department(t *testing.T) {
	svc, _, _ := newTestMasterService()
	ctx := context.Background()

	dept := createDepartment(t, svc, "Engineering")
	assert.Equal(t, "Engineering", dept.Name)

	_, err := svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	updated, err := svc.UpdateDepartment(ctx, department.UpdateDepartmentRequest{ID: dept.ID, Name: "Platform"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Name)

	list, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Platform", list[0].Name)

	require.NoError(t, svc.DeleteDepartment(ctx, dept.ID))
	_, err = svc.GetDepartment(ctx, dept.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestMasterService_CreateDepartment_NameRequired(t *testing.T) {
	svc, _, _ := newTestMasterService()

	_, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{Name: "  "})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name is required", verrs.ToMap()["name"])
}

func TestMasterService_DeleteDepartment_WithPositions(t *testing.T) {
	svc, _, _ := newTestMasterService()
	ctx := context.Background()
	dept := createDepartment(t, svc, "Engineering")

	for _, name := range []string{"Backend Engineer", "Frontend Engineer"} {
		_, err := svc.CreatePosition(ctx, position.CreatePositionRequest{DepartmentID: dept.ID, Name: name})
		require.NoError(t, err)
	}

	err := svc.DeleteDepartment(ctx, dept.ID)

	require.ErrorIs(t, err, department.ErrDepartmentHasPositions)
	var hasPositions *department.HasPositionsError
	require.ErrorAs(t, err, &hasPositions)
	assert.Equal(t, int64(2), hasPositions.Count)

	got, err := svc.GetDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.PositionCount)
	assert.Len(t, got.Positions, 2)
}

func TestMasterService_CreatePosition_UnknownDepartment(t *testing.T) {
	svc, _, positions := newTestMasterService()

	_, err := svc.CreatePosition(context.Background(), position.CreatePositionRequest{
		DepartmentID: uuid.NewString(),
		Name:         "Engineer",
	})

	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	assert.Empty(t, positions.positions)
}

func TestMasterService_CreatePosition_DepartmentRequired(t *testing.T) {
	svc, _, _ := newTestMasterService()

	_, err := svc.CreatePosition(context.Background(), position.CreatePositionRequest{Name: "Engineer"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "department_id")
}

func TestMasterService_ListPositions_ByDepartment(t *testing.T) {
	svc, _, _ := newTestMasterService()
	ctx := context.Background()
	engineering := createDepartment(t, svc, "Engineering")
	finance := createDepartment(t, svc, "Finance")

	_, err := svc.CreatePosition(ctx, position.CreatePositionRequest{DepartmentID: engineering.ID, Name: "Engineer"})
	require.NoError(t, err)
	_, err = svc.CreatePosition(ctx, position.CreatePositionRequest{DepartmentID: finance.ID, Name: "Accountant"})
	require.NoError(t, err)

	all, err := svc.ListPositions(ctx, position.PositionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListPositions(ctx, position.PositionFilter{DepartmentID: &finance.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Accountant", filtered[0].Name)
}

func TestMasterService_UpdatePosition_MoveDepartment(t *testing.T) {
	svc, _, _ := newTestMasterService()
	ctx := context.Background()
	engineering := createDepartment(t, svc, "Engineering")
	finance := createDepartment(t, svc, "Finance")

	created, err := svc.CreatePosition(ctx, position.CreatePositionRequest{DepartmentID: engineering.ID, Name: "Analyst"})
	require.NoError(t, err)

	missing := uuid.NewString()
	_, err = svc.UpdatePosition(ctx, position.UpdatePositionRequest{ID: created.ID, DepartmentID: &missing})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	moved, err := svc.UpdatePosition(ctx, position.UpdatePositionRequest{ID: created.ID, DepartmentID: &finance.ID})
	require.NoError(t, err)
	assert.Equal(t, finance.ID, moved.DepartmentID)
}
