package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT
		e.id, e.user_id, e.employee_code, e.full_name, e.email, e.phone_number,
		e.branch_id, e.position_id, e.join_date, e.employment_status,
		e.annual_leave_quota, e.monthly_leave_quota, e.hourly_rate,
		e.created_at, e.updated_at,
		b.name AS branch_name,
		p.name AS position_name
	FROM employees e
	LEFT JOIN branches b ON b.id = e.branch_id
	LEFT JOIN positions p ON p.id = e.position_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.EmployeeCode, &e.FullName, &e.Email, &e.PhoneNumber,
		&e.BranchID, &e.PositionID, &e.JoinDate, &e.EmploymentStatus,
		&e.AnnualLeaveQuota, &e.MonthlyLeaveQuota, &e.HourlyRate,
		&e.CreatedAt, &e.UpdatedAt,
		&e.BranchName, &e.PositionName,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return result, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, user_id, employee_code, full_name, email, phone_number,
			branch_id, position_id, join_date, employment_status,
			annual_leave_quota, monthly_leave_quota, hourly_rate,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query,
		id, newEmployee.UserID, newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Email, newEmployee.PhoneNumber,
		newEmployee.BranchID, newEmployee.PositionID, newEmployee.JoinDate, newEmployee.EmploymentStatus,
		newEmployee.AnnualLeaveQuota, newEmployee.MonthlyLeaveQuota, newEmployee.HourlyRate,
	)
	if err != nil {
		if isUniqueViolation(err, "employees_employee_code_key") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $2, email = $3, phone_number = $4, branch_id = $5, position_id = $6,
			employment_status = $7, annual_leave_quota = $8, monthly_leave_quota = $9,
			hourly_rate = $10, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		e.ID, e.FullName, e.Email, e.PhoneNumber, e.BranchID, e.PositionID,
		e.EmploymentStatus, e.AnnualLeaveQuota, e.MonthlyLeaveQuota, e.HourlyRate,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	return r.GetByID(ctx, e.ID)
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.BranchID != nil && *filter.BranchID != "" {
		baseWhere += fmt.Sprintf(" AND e.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.PositionID != nil && *filter.PositionID != "" {
		baseWhere += fmt.Sprintf(" AND e.position_id = $%d", argIdx)
		args = append(args, *filter.PositionID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND e.employment_status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees e WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := employeeSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	employees, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// GetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	query := employeeSelect + ` WHERE e.employment_status = $1 ORDER BY e.employee_code ASC`
	return r.query(ctx, query, employee.EmploymentStatusActive)
}

// HasHistory implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) HasHistory(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (SELECT 1 FROM attendances WHERE employee_id = $1)
			OR EXISTS (SELECT 1 FROM leave_requests WHERE employee_id = $1)
			OR EXISTS (SELECT 1 FROM payrolls WHERE employee_id = $1)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee history: %w", err)
	}
	return exists, nil
}

func (r *employeeRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}
