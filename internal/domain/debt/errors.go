package debt

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrDebtorNotFound         = errors.New("debtor not found")
	ErrDebtNotFound           = errors.New("debt not found")
	ErrDebtNotActive          = errors.New("debt is not active")
	ErrAmountExceedsRemaining = errors.New("payment amount exceeds remaining debt")
	ErrEmployeeLinkRequired   = errors.New("employee debtor must be linked to an employee")
)

// ExceedsRemainingError reports the balance a payment was checked against.
type ExceedsRemainingError struct {
	Amount    decimal.Decimal
	Remaining decimal.Decimal
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment amount %s exceeds remaining debt %s", e.Amount.String(), e.Remaining.String())
}

func (e *ExceedsRemainingError) Unwrap() error {
	return ErrAmountExceedsRemaining
}
