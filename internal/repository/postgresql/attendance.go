package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT
		a.id, a.employee_id, a.date, a.check_in, a.check_out,
		a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
		a.method, a.status, a.shift_id, a.notes, a.created_at, a.updated_at,
		e.full_name AS employee_name,
		s.name AS shift_name
	FROM attendances a
	LEFT JOIN employees e ON e.id = a.employee_id
	LEFT JOIN shifts s ON s.id = a.shift_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.Method, &att.Status, &att.ShiftID, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.ShiftName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
			method, status, shift_id, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query,
		id, att.EmployeeID, att.Date, att.CheckIn, att.CheckOut,
		att.CheckInLatitude, att.CheckInLongitude, att.CheckOutLatitude, att.CheckOutLongitude,
		att.Method, att.Status, att.ShiftID, att.Notes,
	)
	if err != nil {
		if isUniqueViolation(err, "attendances_employee_date_key") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.employee_id = $1 AND a.date = $2`, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &att, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CheckOut(ctx context.Context, id string, at time.Time, lat, lng float64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $2, check_out_latitude = $3, check_out_longitude = $4, updated_at = NOW()
		WHERE id = $1 AND check_out IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id, at, lat, lng)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check out: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		// Either the row is gone or another request checked out first.
		if _, err := a.GetByID(ctx, id); err != nil {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	return a.GetByID(ctx, id)
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, method = $4, status = $5, shift_id = $6,
			notes = $7, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		att.ID, att.CheckIn, att.CheckOut, att.Method, att.Status, att.ShiftID, att.Notes,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	return a.GetByID(ctx, att.ID)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances a WHERE `+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := attendanceSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY a.date DESC, a.check_in DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	attendances, err := a.query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := attendanceSelect + `
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date ASC
	`
	return a.query(ctx, query, employeeID, from, to)
}

func (a *attendanceRepository) query(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return attendances, nil
}
