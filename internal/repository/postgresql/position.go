package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

const positionSelect = `
	SELECT
		p.id, p.department_id, p.name, p.base_salary, p.allowance, p.created_at, p.updated_at,
		d.name AS department_name
	FROM positions p
	LEFT JOIN departments d ON d.id = p.department_id
`

func scanPosition(row pgx.Row) (position.Position, error) {
	var p position.Position
	err := row.Scan(
		&p.ID, &p.DepartmentID, &p.Name, &p.BaseSalary, &p.Allowance, &p.CreatedAt, &p.UpdatedAt,
		&p.DepartmentName,
	)
	return p, err
}

// positionWriteError maps constraint violations shared by Create and Update.
func positionWriteError(err error, action string) error {
	switch {
	case isUniqueViolation(err, "positions_name_key"):
		return position.ErrPositionNameExists
	case isForeignKeyViolation(err, "positions_department_id_fkey"):
		return department.ErrDepartmentNotFound
	}
	return fmt.Errorf("failed to %s position: %w", action, err)
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return position.Position{}, err
	}

	query := `
		INSERT INTO positions (id, department_id, name, base_salary, allowance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	if _, err := q.Exec(ctx, query, id, p.DepartmentID, p.Name, p.BaseSalary, p.Allowance); err != nil {
		return position.Position{}, positionWriteError(err, "create")
	}

	return r.GetByID(ctx, id)
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanPosition(q.QueryRow(ctx, positionSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return result, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context, filter position.PositionFilter) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		where += " AND p.department_id = $1"
		args = append(args, *filter.DepartmentID)
	}

	rows, err := q.Query(ctx, positionSelect+` WHERE `+where+` ORDER BY p.name ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET department_id = $2, name = $3, base_salary = $4, allowance = $5, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, p.ID, p.DepartmentID, p.Name, p.BaseSalary, p.Allowance)
	if err != nil {
		return position.Position{}, positionWriteError(err, "update")
	}
	if commandTag.RowsAffected() == 0 {
		return position.Position{}, position.ErrPositionNotFound
	}

	return r.GetByID(ctx, p.ID)
}

// Delete implements position.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// CountEmployees implements position.PositionRepository.
func (r *positionRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE position_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count position employees: %w", err)
	}
	return count, nil
}
