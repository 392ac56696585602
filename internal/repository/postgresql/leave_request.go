package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT
		lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.duration,
		lr.reason, lr.status, lr.approved_by, lr.approved_at, lr.notes,
		lr.created_at, lr.updated_at,
		e.full_name AS employee_name
	FROM leave_requests lr
	LEFT JOIN employees e ON e.id = lr.employee_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Duration,
		&lr.Reason, &lr.Status, &lr.ApprovedBy, &lr.ApprovedAt, &lr.Notes,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, duration,
			reason, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query,
		id, request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate, request.Duration,
		request.Reason, request.Status,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		baseWhere += fmt.Sprintf(" AND lr.leave_type = $%d", argIdx)
		args = append(args, *filter.LeaveType)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM lr.start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests lr WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := leaveRequestSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveStatus, actorID *string, at time.Time, notes *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// The status guard in WHERE makes concurrent reviews race-safe.
	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = COALESCE($3, approved_by),
			approved_at = CASE WHEN $3::uuid IS NULL THEN approved_at ELSE $4 END,
			notes = COALESCE($5, notes),
			updated_at = NOW()
		WHERE id = $1 AND status = $6
	`

	commandTag, err := q.Exec(ctx, query, id, status, actorID, at, notes, leave.LeaveStatusPending)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, leave.ErrNotPending
	}

	return r.GetByID(ctx, id)
}

// SumApprovedDuration implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApprovedDuration(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(duration), 0)
		FROM leave_requests
		WHERE employee_id = $1
			AND leave_type = $2
			AND status = $3
			AND EXTRACT(YEAR FROM start_date) = $4
	`

	var used int
	if err := q.QueryRow(ctx, query, employeeID, leaveType, leave.LeaveStatusApproved, year).Scan(&used); err != nil {
		return 0, fmt.Errorf("failed to sum approved leave: %w", err)
	}
	return used, nil
}
