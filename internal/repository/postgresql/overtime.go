package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

const overtimeSelect = `
	SELECT
		o.id, o.employee_id, o.date, o.start_time, o.end_time, o.duration, o.reason,
		o.status, o.rate, o.amount, o.approved_by, o.approved_at, o.created_at, o.updated_at,
		e.full_name AS employee_name
	FROM overtimes o
	LEFT JOIN employees e ON e.id = o.employee_id
`

func scanOvertime(row pgx.Row) (overtime.Overtime, error) {
	var o overtime.Overtime
	err := row.Scan(
		&o.ID, &o.EmployeeID, &o.Date, &o.StartTime, &o.EndTime, &o.Duration, &o.Reason,
		&o.Status, &o.Rate, &o.Amount, &o.ApprovedBy, &o.ApprovedAt, &o.CreatedAt, &o.UpdatedAt,
		&o.EmployeeName,
	)
	return o, err
}

// overtimeWhere builds the shared filter clause for List and Summary.
func overtimeWhere(filter overtime.OvertimeFilter) (string, []interface{}) {
	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND o.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND o.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND o.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND o.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
	}

	return where, args
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepository) Create(ctx context.Context, o overtime.Overtime) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return overtime.Overtime{}, err
	}

	query := `
		INSERT INTO overtimes (
			id, employee_id, date, start_time, end_time, duration, reason, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query,
		id, o.EmployeeID, o.Date, o.StartTime, o.EndTime, o.Duration, o.Reason, o.Status,
	)
	if err != nil {
		return overtime.Overtime{}, fmt.Errorf("failed to create overtime: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements overtime.OvertimeRepository.
func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOvertime(q.QueryRow(ctx, overtimeSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Overtime{}, overtime.ErrOvertimeNotFound
		}
		return overtime.Overtime{}, fmt.Errorf("failed to get overtime: %w", err)
	}

	return o, nil
}

// List implements overtime.OvertimeRepository.
func (r *overtimeRepository) List(ctx context.Context, filter overtime.OvertimeFilter) ([]overtime.Overtime, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := overtimeWhere(filter)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM overtimes o WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count overtimes: %w", err)
	}

	argIdx := len(args) + 1
	query := overtimeSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY o.date DESC, o.start_time DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query overtimes: %w", err)
	}
	defer rows.Close()

	var overtimes []overtime.Overtime
	for rows.Next() {
		o, err := scanOvertime(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan overtime: %w", err)
		}
		overtimes = append(overtimes, o)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return overtimes, total, nil
}

// Approve implements overtime.OvertimeRepository.
func (r *overtimeRepository) Approve(ctx context.Context, id string, rate, amount decimal.Decimal, approverID string, at time.Time) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtimes
		SET status = $2, rate = $3, amount = $4, approved_by = $5, approved_at = $6, updated_at = NOW()
		WHERE id = $1 AND status = $7
	`

	commandTag, err := q.Exec(ctx, query,
		id, overtime.OvertimeStatusApproved, rate, amount, approverID, at, overtime.OvertimeStatusPending,
	)
	if err != nil {
		return overtime.Overtime{}, fmt.Errorf("failed to approve overtime: %w", err)
	}

	return r.afterTransition(ctx, id, commandTag.RowsAffected())
}

// Reject implements overtime.OvertimeRepository.
func (r *overtimeRepository) Reject(ctx context.Context, id string, approverID string, at time.Time) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtimes
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`

	commandTag, err := q.Exec(ctx, query,
		id, overtime.OvertimeStatusRejected, approverID, at, overtime.OvertimeStatusPending,
	)
	if err != nil {
		return overtime.Overtime{}, fmt.Errorf("failed to reject overtime: %w", err)
	}

	return r.afterTransition(ctx, id, commandTag.RowsAffected())
}

func (r *overtimeRepository) afterTransition(ctx context.Context, id string, affected int64) (overtime.Overtime, error) {
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return overtime.Overtime{}, err
		}
		return overtime.Overtime{}, overtime.ErrNotPending
	}
	return r.GetByID(ctx, id)
}

// Delete implements overtime.OvertimeRepository.
func (r *overtimeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM overtimes WHERE id = $1 AND status <> $2`, id, overtime.OvertimeStatusApproved)
	if err != nil {
		return fmt.Errorf("failed to delete overtime: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return overtime.ErrOvertimeApproved
	}
	return nil
}

// ApprovedTotals implements overtime.OvertimeRepository.
func (r *overtimeRepository) ApprovedTotals(ctx context.Context, employeeID string, from, to time.Time) (overtime.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(duration), 0), COALESCE(SUM(amount), 0)
		FROM overtimes
		WHERE employee_id = $1 AND status = $2 AND date BETWEEN $3 AND $4
	`

	var totals overtime.Totals
	err := q.QueryRow(ctx, query, employeeID, overtime.OvertimeStatusApproved, from, to).Scan(
		&totals.Count, &totals.TotalHours, &totals.TotalAmount,
	)
	if err != nil {
		return overtime.Totals{}, fmt.Errorf("failed to sum approved overtime: %w", err)
	}
	return totals, nil
}

// Summary implements overtime.OvertimeRepository.
func (r *overtimeRepository) Summary(ctx context.Context, filter overtime.OvertimeFilter) (overtime.Summary, error) {
	q := GetQuerier(ctx, r.db)

	where, args := overtimeWhere(filter)
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE o.status = 'PENDING'),
			COUNT(*) FILTER (WHERE o.status = 'APPROVED'),
			COUNT(*) FILTER (WHERE o.status = 'REJECTED'),
			COALESCE(SUM(o.duration) FILTER (WHERE o.status = 'APPROVED'), 0),
			COALESCE(SUM(o.amount) FILTER (WHERE o.status = 'APPROVED'), 0)
		FROM overtimes o
		WHERE ` + where

	var s overtime.Summary
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.Total, &s.Pending, &s.Approved, &s.Rejected, &s.TotalHours, &s.TotalAmount,
	)
	if err != nil {
		return overtime.Summary{}, fmt.Errorf("failed to summarize overtime: %w", err)
	}
	return s, nil
}
