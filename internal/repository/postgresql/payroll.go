package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollSelect = `
	SELECT
		pr.id, pr.employee_id, pr.month, pr.year,
		pr.basic_salary, pr.allowances, pr.overtime, pr.gross_salary,
		pr.tax, pr.bpjs_kesehatan, pr.bpjs_ketenagakerjaan, pr.other_deductions,
		pr.total_deductions, pr.net_salary, pr.status, pr.approved_by, pr.paid_at,
		pr.created_at, pr.updated_at,
		e.full_name AS employee_name,
		e.employee_code,
		p.name AS position_name
	FROM payrolls pr
	LEFT JOIN employees e ON e.id = pr.employee_id
	LEFT JOIN positions p ON p.id = e.position_id
`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year,
		&p.BasicSalary, &p.Allowances, &p.Overtime, &p.GrossSalary,
		&p.Tax, &p.BPJSKesehatan, &p.BPJSKetenagakerjaan, &p.OtherDeductions,
		&p.TotalDeductions, &p.NetSalary, &p.Status, &p.ApprovedBy, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode, &p.PositionName,
	)
	return p, err
}

// ========== WRITES ==========

func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return payroll.Payroll{}, err
	}

	query := `
		INSERT INTO payrolls (
			id, employee_id, month, year,
			basic_salary, allowances, overtime, gross_salary,
			tax, bpjs_kesehatan, bpjs_ketenagakerjaan, other_deductions,
			total_deductions, net_salary, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query,
		id, p.EmployeeID, p.Month, p.Year,
		p.BasicSalary, p.Allowances, p.Overtime, p.GrossSalary,
		p.Tax, p.BPJSKesehatan, p.BPJSKetenagakerjaan, p.OtherDeductions,
		p.TotalDeductions, p.NetSalary, p.Status,
	)
	if err != nil {
		if isUniqueViolation(err, "payrolls_employee_period_key") {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) Approve(ctx context.Context, id string, approverID string, paidAt time.Time) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET status = $2, approved_by = $3, paid_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`

	commandTag, err := q.Exec(ctx, query,
		id, payroll.PayrollStatusApproved, approverID, paidAt, payroll.PayrollStatusPending,
	)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to approve payroll: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return payroll.Payroll{}, err
		}
		return payroll.Payroll{}, payroll.ErrPayrollNotPending
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1 AND status = $2`, id, payroll.PayrollStatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return payroll.ErrPayrollNotPending
	}
	return nil
}

// ========== READS ==========

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayroll(q.QueryRow(ctx, payrollSelect+` WHERE pr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM payrolls WHERE employee_id = $1 AND month = $2 AND year = $3)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll period: %w", err)
	}
	return exists, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		where += fmt.Sprintf(" AND pr.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(" AND pr.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payrolls pr WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	query := payrollSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY pr.year DESC, pr.month DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return payrolls, total, nil
}

func (r *payrollRepository) Summary(ctx context.Context, month, year int) (payroll.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COALESCE(SUM(gross_salary), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(net_salary), 0)
		FROM payrolls
		WHERE month = $1 AND year = $2
	`

	s := payroll.Summary{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&s.Count, &s.PendingCount, &s.ApprovedCount, &s.TotalGross, &s.TotalDeductions, &s.TotalNet,
	)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to summarize payroll: %w", err)
	}
	return s, nil
}
