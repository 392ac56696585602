package debt

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// maxAmount is the first value that no longer fits NUMERIC(15,2).
var maxAmount = decimal.New(1, 13)

// validateAmount keeps amounts representable as NUMERIC(15,2).
func validateAmount(errs *validator.ValidationErrors, amount decimal.Decimal) {
	switch {
	case !amount.IsPositive():
		errs.Add("amount", "amount must be greater than 0")
	case !amount.Equal(amount.Round(2)):
		errs.Add("amount", "amount must have at most 2 decimal places")
	case amount.GreaterThanOrEqual(maxAmount):
		errs.Add("amount", "amount must be less than 10000000000000")
	}
}

type CreateDebtorRequest struct {
	Name       string  `json:"name" validate:"required,max=150"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Address    *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Type       string  `json:"type" validate:"required,oneof=EMPLOYEE EXTERNAL"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
}

func (r *CreateDebtorRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must be a valid Indonesian number")
	}
	return errs.Err()
}

type CreateDebtRequest struct {
	DebtorID    string          `json:"debtor_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *string         `json:"due_date,omitempty"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=500"`

	// Parsed by Validate
	Due *time.Time `json:"-"`
}

func (r *CreateDebtRequest) Validate() error {
	errs := validator.Struct(r)

	validateAmount(&errs, r.Amount)
	if r.DueDate != nil {
		due, ok := validator.IsValidDate(*r.DueDate)
		if !ok {
			errs.Add("due_date", "due_date must be in YYYY-MM-DD format")
		} else {
			r.Due = &due
		}
	}

	return errs.Err()
}

type RecordPaymentRequest struct {
	DebtID      string          `json:"debt_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" validate:"required,oneof=CASH TRANSFER DEDUCTION OTHER"`
	PaymentDate string          `json:"payment_date" validate:"required"`
	Notes       *string         `json:"notes,omitempty" validate:"omitempty,max=500"`

	// Parsed by Validate
	Date time.Time `json:"-"`
}

func (r *RecordPaymentRequest) Validate() error {
	errs := validator.Struct(r)

	validateAmount(&errs, r.Amount)
	if r.PaymentDate != "" {
		date, ok := validator.IsValidDate(r.PaymentDate)
		if !ok {
			errs.Add("payment_date", "payment_date must be in YYYY-MM-DD format")
		}
		r.Date = date
	}

	return errs.Err()
}

type DebtorFilter struct {
	Type   *string
	Search *string
}

type DebtFilter struct {
	DebtorID *string
	Status   *string
}

type DebtorResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Address        *string         `json:"address,omitempty"`
	Type           DebtorType      `json:"type"`
	EmployeeID     *string         `json:"employee_id,omitempty"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	CreatedAt      string          `json:"created_at"`
}

type DebtResponse struct {
	ID          string          `json:"id"`
	DebtorID    string          `json:"debtor_id"`
	DebtorName  *string         `json:"debtor_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Remaining   decimal.Decimal `json:"remaining"`
	Status      DebtStatus      `json:"status"`
	DueDate     *string         `json:"due_date,omitempty"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	DebtID      string          `json:"debt_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate string          `json:"payment_date"`
	Notes       *string         `json:"notes,omitempty"`
}

type PaymentResult struct {
	Payment PaymentResponse `json:"payment"`
	Debt    DebtResponse    `json:"debt"`
}

func ToDebtorResponse(d Debtor) DebtorResponse {
	return DebtorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		Address:        d.Address,
		Type:           d.Type,
		EmployeeID:     d.EmployeeID,
		TotalDebt:      d.TotalDebt,
		TotalRemaining: d.TotalRemaining,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
	}
}

func ToDebtResponse(d Debt) DebtResponse {
	var due *string
	if d.DueDate != nil {
		s := d.DueDate.Format("2006-01-02")
		due = &s
	}
	return DebtResponse{
		ID:          d.ID,
		DebtorID:    d.DebtorID,
		DebtorName:  d.DebtorName,
		Amount:      d.Amount,
		Remaining:   d.Remaining,
		Status:      d.Status,
		DueDate:     due,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}

func ToPaymentResponse(p DebtPayment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		DebtID:      p.DebtID,
		Amount:      p.Amount,
		Method:      p.Method,
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		Notes:       p.Notes,
	}
}
