package debt

import (
	"time"

	"github.com/shopspring/decimal"
)

type DebtorType string

const (
	DebtorTypeEmployee DebtorType = "EMPLOYEE"
	DebtorTypeExternal DebtorType = "EXTERNAL"
)

type DebtStatus string

const (
	DebtStatusActive    DebtStatus = "ACTIVE"
	DebtStatusPaid      DebtStatus = "PAID"
	DebtStatusCancelled DebtStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "CASH"
	PaymentMethodTransfer  PaymentMethod = "TRANSFER"
	PaymentMethodDeduction PaymentMethod = "DEDUCTION"
	PaymentMethodOther     PaymentMethod = "OTHER"
)

type Debtor struct {
	ID         string
	Name       string
	Phone      *string
	Email      *string
	Address    *string
	Type       DebtorType
	EmployeeID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Aggregated over ACTIVE debts
	TotalDebt      decimal.Decimal
	TotalRemaining decimal.Decimal
}

type Debt struct {
	ID          string
	DebtorID    string
	Amount      decimal.Decimal
	Remaining   decimal.Decimal
	Status      DebtStatus
	DueDate     *time.Time
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	DebtorName *string
}

// ApplyPayment returns the debt after amount is paid off. The caller checks the
// amount against Remaining first.
func (d Debt) ApplyPayment(amount decimal.Decimal) Debt {
	d.Remaining = d.Remaining.Sub(amount)
	if d.Remaining.IsZero() {
		d.Status = DebtStatusPaid
	}
	return d
}

type DebtPayment struct {
	ID          string
	DebtID      string
	Amount      decimal.Decimal
	Method      PaymentMethod
	PaymentDate time.Time
	Notes       *string
	CreatedAt   time.Time
}

type Summary struct {
	TotalDebtors   int             `json:"total_debtors"`
	ActiveDebts    int             `json:"active_debts"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	OverdueDebts   int             `json:"overdue_debts"`
}
