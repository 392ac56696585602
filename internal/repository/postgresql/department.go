package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT
		d.id, d.name, d.created_at, d.updated_at,
		(SELECT COUNT(*) FROM positions p WHERE p.department_id = d.id) AS position_count
	FROM departments d
`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt, &d.PositionCount)
	return d, err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return department.Department{}, err
	}

	query := `
		INSERT INTO departments (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`

	if _, err := q.Exec(ctx, query, id, d.Name); err != nil {
		if isUniqueViolation(err, "departments_name_key") {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return d, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, departmentSelect+` ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE departments SET name = $2, updated_at = NOW() WHERE id = $1`, d.ID, d.Name)
	if err != nil {
		if isUniqueViolation(err, "departments_name_key") {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return department.Department{}, department.ErrDepartmentNotFound
	}

	return r.GetByID(ctx, d.ID)
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err, "positions_department_id_fkey") {
			return department.ErrDepartmentHasPositions
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// CountPositions implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) CountPositions(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM positions WHERE department_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count department positions: %w", err)
	}
	return count, nil
}
