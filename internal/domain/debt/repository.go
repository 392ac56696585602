package debt

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type DebtRepository interface {
	// Debtors
	CreateDebtor(ctx context.Context, debtor Debtor) (Debtor, error)
	GetDebtorByID(ctx context.Context, id string) (Debtor, error)
	ListDebtors(ctx context.Context, filter DebtorFilter) ([]Debtor, error)
	// DeleteDebtor removes the debtor with all debts and payments.
	DeleteDebtor(ctx context.Context, id string) error

	// Debts
	CreateDebt(ctx context.Context, debt Debt) (Debt, error)
	GetDebtByID(ctx context.Context, id string) (Debt, error)
	// GetDebtForUpdate locks the row until the surrounding transaction ends.
	GetDebtForUpdate(ctx context.Context, id string) (Debt, error)
	ListDebts(ctx context.Context, filter DebtFilter) ([]Debt, error)
	UpdateBalance(ctx context.Context, id string, remaining decimal.Decimal, status DebtStatus) (Debt, error)

	// Payments
	CreatePayment(ctx context.Context, payment DebtPayment) (DebtPayment, error)
	ListPayments(ctx context.Context, debtID string) ([]DebtPayment, error)

	Summary(ctx context.Context, now time.Time) (Summary, error)
}
