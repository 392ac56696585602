package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/debt"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type debtRepository struct {
	db *database.DB
}

func NewDebtRepository(db *database.DB) debt.DebtRepository {
	return &debtRepository{db: db}
}

// ========== DEBTORS ==========

const debtorSelect = `
	SELECT
		dr.id, dr.name, dr.phone, dr.email, dr.address, dr.type, dr.employee_id,
		dr.created_at, dr.updated_at,
		COALESCE(SUM(d.amount) FILTER (WHERE d.status = 'ACTIVE'), 0) AS total_debt,
		COALESCE(SUM(d.remaining) FILTER (WHERE d.status = 'ACTIVE'), 0) AS total_remaining
	FROM debtors dr
	LEFT JOIN debts d ON d.debtor_id = dr.id
`

const debtorGroupBy = ` GROUP BY dr.id`

func scanDebtor(row pgx.Row) (debt.Debtor, error) {
	var d debt.Debtor
	err := row.Scan(
		&d.ID, &d.Name, &d.Phone, &d.Email, &d.Address, &d.Type, &d.EmployeeID,
		&d.CreatedAt, &d.UpdatedAt,
		&d.TotalDebt, &d.TotalRemaining,
	)
	return d, err
}

func (r *debtRepository) CreateDebtor(ctx context.Context, debtor debt.Debtor) (debt.Debtor, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return debt.Debtor{}, err
	}

	query := `
		INSERT INTO debtors (id, name, phone, email, address, type, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query,
		id, debtor.Name, debtor.Phone, debtor.Email, debtor.Address, debtor.Type, debtor.EmployeeID,
	)
	if err != nil {
		return debt.Debtor{}, fmt.Errorf("failed to create debtor: %w", err)
	}

	return r.GetDebtorByID(ctx, id)
}

func (r *debtRepository) GetDebtorByID(ctx context.Context, id string) (debt.Debtor, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDebtor(q.QueryRow(ctx, debtorSelect+` WHERE dr.id = $1`+debtorGroupBy, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return debt.Debtor{}, debt.ErrDebtorNotFound
		}
		return debt.Debtor{}, fmt.Errorf("failed to get debtor: %w", err)
	}

	return d, nil
}

func (r *debtRepository) ListDebtors(ctx context.Context, filter debt.DebtorFilter) ([]debt.Debtor, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Type != nil && *filter.Type != "" {
		where += fmt.Sprintf(" AND dr.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND dr.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Search+"%")
	}

	rows, err := q.Query(ctx, debtorSelect+` WHERE `+where+debtorGroupBy+` ORDER BY dr.name ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debtors: %w", err)
	}
	defer rows.Close()

	var debtors []debt.Debtor
	for rows.Next() {
		d, err := scanDebtor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debtor: %w", err)
		}
		debtors = append(debtors, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return debtors, nil
}

// DeleteDebtor relies on ON DELETE CASCADE for debts and payments.
func (r *debtRepository) DeleteDebtor(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM debtors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debtor: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return debt.ErrDebtorNotFound
	}
	return nil
}

// ========== DEBTS ==========

const debtSelect = `
	SELECT
		d.id, d.debtor_id, d.amount, d.remaining, d.status, d.due_date, d.description,
		d.created_at, d.updated_at,
		dr.name AS debtor_name
	FROM debts d
	JOIN debtors dr ON dr.id = d.debtor_id
`

func scanDebt(row pgx.Row) (debt.Debt, error) {
	var d debt.Debt
	err := row.Scan(
		&d.ID, &d.DebtorID, &d.Amount, &d.Remaining, &d.Status, &d.DueDate, &d.Description,
		&d.CreatedAt, &d.UpdatedAt,
		&d.DebtorName,
	)
	return d, err
}

func (r *debtRepository) CreateDebt(ctx context.Context, d debt.Debt) (debt.Debt, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return debt.Debt{}, err
	}

	query := `
		INSERT INTO debts (id, debtor_id, amount, remaining, status, due_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query, id, d.DebtorID, d.Amount, d.Remaining, d.Status, d.DueDate, d.Description)
	if err != nil {
		return debt.Debt{}, fmt.Errorf("failed to create debt: %w", err)
	}

	return r.GetDebtByID(ctx, id)
}

func (r *debtRepository) GetDebtByID(ctx context.Context, id string) (debt.Debt, error) {
	return r.getDebt(ctx, debtSelect+` WHERE d.id = $1`, id)
}

func (r *debtRepository) GetDebtForUpdate(ctx context.Context, id string) (debt.Debt, error) {
	return r.getDebt(ctx, debtSelect+` WHERE d.id = $1 FOR UPDATE OF d`, id)
}

func (r *debtRepository) getDebt(ctx context.Context, query string, id string) (debt.Debt, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDebt(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return debt.Debt{}, debt.ErrDebtNotFound
		}
		return debt.Debt{}, fmt.Errorf("failed to get debt: %w", err)
	}

	return d, nil
}

func (r *debtRepository) ListDebts(ctx context.Context, filter debt.DebtFilter) ([]debt.Debt, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.DebtorID != nil && *filter.DebtorID != "" {
		where += fmt.Sprintf(" AND d.debtor_id = $%d", argIdx)
		args = append(args, *filter.DebtorID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND d.status = $%d", argIdx)
		args = append(args, *filter.Status)
	}

	rows, err := q.Query(ctx, debtSelect+` WHERE `+where+` ORDER BY d.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []debt.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return debts, nil
}

func (r *debtRepository) UpdateBalance(ctx context.Context, id string, remaining decimal.Decimal, status debt.DebtStatus) (debt.Debt, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE debts SET remaining = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		id, remaining, status,
	)
	if err != nil {
		return debt.Debt{}, fmt.Errorf("failed to update debt balance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return debt.Debt{}, debt.ErrDebtNotFound
	}

	return r.GetDebtByID(ctx, id)
}

// ========== PAYMENTS ==========

func (r *debtRepository) CreatePayment(ctx context.Context, payment debt.DebtPayment) (debt.DebtPayment, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return debt.DebtPayment{}, err
	}

	query := `
		INSERT INTO debt_payments (id, debt_id, amount, method, payment_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, debt_id, amount, method, payment_date, notes, created_at
	`

	var p debt.DebtPayment
	err = q.QueryRow(ctx, query,
		id, payment.DebtID, payment.Amount, payment.Method, payment.PaymentDate, payment.Notes,
	).Scan(&p.ID, &p.DebtID, &p.Amount, &p.Method, &p.PaymentDate, &p.Notes, &p.CreatedAt)
	if err != nil {
		return debt.DebtPayment{}, fmt.Errorf("failed to create debt payment: %w", err)
	}

	return p, nil
}

func (r *debtRepository) ListPayments(ctx context.Context, debtID string) ([]debt.DebtPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, debt_id, amount, method, payment_date, notes, created_at
		FROM debt_payments
		WHERE debt_id = $1
		ORDER BY payment_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debt payments: %w", err)
	}
	defer rows.Close()

	var payments []debt.DebtPayment
	for rows.Next() {
		var p debt.DebtPayment
		if err := rows.Scan(&p.ID, &p.DebtID, &p.Amount, &p.Method, &p.PaymentDate, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debt payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return payments, nil
}

// ========== SUMMARY ==========

func (r *debtRepository) Summary(ctx context.Context, now time.Time) (debt.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM debtors),
			COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount - remaining), 0),
			COALESCE(SUM(remaining), 0),
			COUNT(*) FILTER (WHERE due_date < $2::date)
		FROM debts
		WHERE status = $1
	`

	var s debt.Summary
	err := q.QueryRow(ctx, query, debt.DebtStatusActive, now).Scan(
		&s.TotalDebtors, &s.ActiveDebts, &s.TotalDebt, &s.TotalPaid, &s.TotalRemaining, &s.OverdueDebts,
	)
	if err != nil {
		return debt.Summary{}, fmt.Errorf("failed to summarize debts: %w", err)
	}
	return s, nil
}
