package debt

import "context"

type DebtService interface {
	CreateDebtor(ctx context.Context, req CreateDebtorRequest) (DebtorResponse, error)
	GetDebtor(ctx context.Context, id string) (DebtorResponse, error)
	ListDebtors(ctx context.Context, filter DebtorFilter) ([]DebtorResponse, error)
	DeleteDebtor(ctx context.Context, id string) error

	CreateDebt(ctx context.Context, req CreateDebtRequest) (DebtResponse, error)
	GetDebt(ctx context.Context, id string) (DebtResponse, error)
	ListDebts(ctx context.Context, filter DebtFilter) ([]DebtResponse, error)
	CancelDebt(ctx context.Context, id string) (DebtResponse, error)

	// RecordPayment applies a payment and updates the debt balance atomically.
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (PaymentResult, error)
	ListPayments(ctx context.Context, debtID string) ([]PaymentResponse, error)

	Summary(ctx context.Context) (Summary, error)
}
