package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/debt"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	debtservice "github.com/cmlabs-hris/hris-core-go/internal/service/debt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T, setup *TestDatabaseSetup) employee.Employee {
	t.Helper()
	ctx := context.Background()

	lat, lng := -6.2, 106.8
	br, err := postgresql.NewBranchRepository(setup.DB).Create(ctx, branch.Branch{
		Name:         "Head Office",
		Latitude:     &lat,
		Longitude:    &lng,
		RadiusMeters: 50,
		Timezone:     "Asia/Jakarta",
	})
	require.NoError(t, err)

	dept, err := postgresql.NewDepartmentRepository(setup.DB).Create(ctx, department.Department{Name: "Operations"})
	require.NoError(t, err)

	base := decimal.NewFromInt(6000000)
	pos, err := postgresql.NewPositionRepository(setup.DB).Create(ctx, position.Position{
		DepartmentID: dept.ID,
		Name:         "Staff",
		BaseSalary:   &base,
	})
	require.NoError(t, err)

	emp, err := postgresql.NewEmployeeRepository(setup.DB).Create(ctx, employee.Employee{
		EmployeeCode:      "2024-0001",
		FullName:          "Sari Wulandari",
		BranchID:          br.ID,
		PositionID:        pos.ID,
		JoinDate:          time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		EmploymentStatus:  employee.EmploymentStatusActive,
		AnnualLeaveQuota:  12,
		MonthlyLeaveQuota: 1,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository_DuplicateCode(t *testing.T) {
	setup := NewTestDatabase(t)
	emp := seedEmployee(t, setup)

	dup := emp
	dup.ID = ""
	_, err := postgresql.NewEmployeeRepository(setup.DB).Create(context.Background(), dup)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestDepartmentRepository_DeleteRestrictedByPositions(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	departments := postgresql.NewDepartmentRepository(setup.DB)
	positions := postgresql.NewPositionRepository(setup.DB)

	dept, err := departments.Create(ctx, department.Department{Name: "Finance"})
	require.NoError(t, err)
	pos, err := positions.Create(ctx, position.Position{DepartmentID: dept.ID, Name: "Accountant"})
	require.NoError(t, err)
	require.NotNil(t, pos.DepartmentName)
	assert.Equal(t, "Finance", *pos.DepartmentName)

	got, err := departments.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.PositionCount)

	assert.ErrorIs(t, departments.Delete(ctx, dept.ID), department.ErrDepartmentHasPositions)

	require.NoError(t, positions.Delete(ctx, pos.ID))
	require.NoError(t, departments.Delete(ctx, dept.ID))
	_, err = departments.GetByID(ctx, dept.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestPositionRepository_UnknownDepartment(t *testing.T) {
	setup := NewTestDatabase(t)

	_, err := postgresql.NewPositionRepository(setup.DB).Create(context.Background(), position.Position{
		DepartmentID: "0190a8e4-0000-7000-8000-000000000000",
		Name:         "Ghost",
	})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestAttendanceRepository_OneCheckInPerDay(t *testing.T) {
	setup := NewTestDatabase(t)
	emp := seedEmployee(t, setup)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	ctx := context.Background()

	checkIn := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		CheckIn:    &checkIn,
		Method:     attendance.MethodGPS,
		Status:     attendance.StatusPresent,
	}

	created, err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, emp.FullName, *created.EmployeeName)

	_, err = repo.Create(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	_, err = repo.CheckOut(ctx, created.ID, checkIn.Add(9*time.Hour), -6.2, 106.8)
	require.NoError(t, err)
	_, err = repo.CheckOut(ctx, created.ID, checkIn.Add(10*time.Hour), -6.2, 106.8)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestPayrollRepository_PeriodIsUnique(t *testing.T) {
	setup := NewTestDatabase(t)
	emp := seedEmployee(t, setup)
	repo := postgresql.NewPayrollRepository(setup.DB)
	ctx := context.Background()

	p := payroll.Payroll{
		EmployeeID:  emp.ID,
		Month:       3,
		Year:        2024,
		BasicSalary: decimal.NewFromInt(6000000),
		GrossSalary: decimal.NewFromInt(6000000),
		NetSalary:   decimal.NewFromInt(6000000),
		Status:      payroll.PayrollStatusPending,
	}

	created, err := repo.Create(ctx, p)
	require.NoError(t, err)

	exists, err := repo.ExistsForPeriod(ctx, emp.ID, 3, 2024)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, p)
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyExists)

	approverID := "0192f0c4-7b5e-7c1a-9f00-000000000001"
	_, err = repo.Approve(ctx, created.ID, approverID, time.Now().UTC())
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), payroll.ErrPayrollNotPending)
}

func TestDebtPayments_ConcurrentPaymentsCannotOverdraw(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	debtRepo := postgresql.NewDebtRepository(setup.DB)
	svc := debtservice.NewDebtService(
		postgresql.NewTransactor(setup.DB),
		debtRepo,
		postgresql.NewEmployeeRepository(setup.DB),
	)

	debtor, err := debtRepo.CreateDebtor(ctx, debt.Debtor{Name: "Toko Makmur", Type: debt.DebtorTypeExternal})
	require.NoError(t, err)
	created, err := debtRepo.CreateDebt(ctx, debt.Debt{
		DebtorID:  debtor.ID,
		Amount:    decimal.NewFromInt(100),
		Remaining: decimal.NewFromInt(100),
		Status:    debt.DebtStatusActive,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecordPayment(ctx, debt.RecordPaymentRequest{
				DebtID:      created.ID,
				Amount:      decimal.NewFromInt(60),
				Method:      "CASH",
				PaymentDate: "2024-03-01",
			})
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, debt.ErrAmountExceedsRemaining):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	after, err := debtRepo.GetDebtByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, after.Remaining.Equal(decimal.NewFromInt(40)), "remaining = %s", after.Remaining)

	payments, err := debtRepo.ListPayments(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
