package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

const branchColumns = `b.id, b.name, b.address, b.latitude, b.longitude, b.radius_meters, b.timezone, b.created_at, b.updated_at`

func scanBranch(row pgx.Row) (branch.Branch, error) {
	var b branch.Branch
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Address,
		&b.Latitude,
		&b.Longitude,
		&b.RadiusMeters,
		&b.Timezone,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return branch.Branch{}, err
	}

	query := `
		INSERT INTO branches AS b (id, name, address, latitude, longitude, radius_meters, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + branchColumns

	result, err := scanBranch(q.QueryRow(ctx, query,
		id, b.Name, b.Address, b.Latitude, b.Longitude, b.RadiusMeters, b.Timezone,
	))
	if err != nil {
		if isUniqueViolation(err, "branches_name_key") {
			return branch.Branch{}, branch.ErrBranchNameExists
		}
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return result, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + branchColumns + ` FROM branches b WHERE b.id = $1`

	result, err := scanBranch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return result, nil
}

// GetByEmployeeID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + branchColumns + `
		FROM branches b
		JOIN employees e ON e.branch_id = b.id
		WHERE e.id = $1
	`

	result, err := scanBranch(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get employee branch: %w", err)
	}

	return result, nil
}

// List implements branch.BranchRepository.
func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + branchColumns + ` FROM branches b ORDER BY b.name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return branches, nil
}

// Update implements branch.BranchRepository.
func (r *branchRepositoryImpl) Update(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches AS b
		SET name = $2, address = $3, latitude = $4, longitude = $5,
			radius_meters = $6, timezone = $7, updated_at = NOW()
		WHERE b.id = $1
		RETURNING ` + branchColumns

	result, err := scanBranch(q.QueryRow(ctx, query,
		b.ID, b.Name, b.Address, b.Latitude, b.Longitude, b.RadiusMeters, b.Timezone,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		if isUniqueViolation(err, "branches_name_key") {
			return branch.Branch{}, branch.ErrBranchNameExists
		}
		return branch.Branch{}, fmt.Errorf("failed to update branch: %w", err)
	}

	return result, nil
}

// Delete implements branch.BranchRepository.
func (r *branchRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

// CountEmployees implements branch.BranchRepository.
func (r *branchRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE branch_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count branch employees: %w", err)
	}
	return count, nil
}
