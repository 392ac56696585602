package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, name, start_time, end_time, break_minutes, is_overnight, color, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.BreakMinutes,
		&s.IsOvernight, &s.Color, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return shift.Shift{}, err
	}

	query := `
		INSERT INTO shifts (id, name, start_time, end_time, break_minutes, is_overnight, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + shiftColumns

	result, err := scanShift(q.QueryRow(ctx, query,
		id, s.Name, s.StartTime, s.EndTime, s.BreakMinutes, s.IsOvernight, s.Color,
	))
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return result, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return result, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY start_time ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET name = $2, start_time = $3, end_time = $4, break_minutes = $5,
			is_overnight = $6, color = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shiftColumns

	result, err := scanShift(q.QueryRow(ctx, query,
		s.ID, s.Name, s.StartTime, s.EndTime, s.BreakMinutes, s.IsOvernight, s.Color,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return result, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// CountAttendances implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) CountAttendances(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE shift_id = $1`, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count shift attendances: %w", err)
	}
	return count, nil
}
