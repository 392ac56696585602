package debt

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/debt"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeDebtRepo struct {
	debtors  map[string]debt.Debtor
	debts    map[string]debt.Debt
	payments map[string]debt.DebtPayment
	seq      int

	failUpdateBalance error
}

func newFakeDebtRepo() *fakeDebtRepo {
	return &fakeDebtRepo{
		debtors:  map[string]debt.Debtor{},
		debts:    map[string]debt.Debt{},
		payments: map[string]debt.DebtPayment{},
	}
}

func (f *fakeDebtRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeDebtRepo) CreateDebtor(ctx context.Context, d debt.Debtor) (debt.Debtor, error) {
	d.ID = f.nextID("debtor")
	f.debtors[d.ID] = d
	return d, nil
}

func (f *fakeDebtRepo) GetDebtorByID(ctx context.Context, id string) (debt.Debtor, error) {
	d, ok := f.debtors[id]
	if !ok {
		return debt.Debtor{}, debt.ErrDebtorNotFound
	}
	return d, nil
}

func (f *fakeDebtRepo) ListDebtors(ctx context.Context, filter debt.DebtorFilter) ([]debt.Debtor, error) {
	var list []debt.Debtor
	for _, d := range f.debtors {
		list = append(list, d)
	}
	return list, nil
}

func (f *fakeDebtRepo) DeleteDebtor(ctx context.Context, id string) error {
	delete(f.debtors, id)
	for debtID, d := range f.debts {
		if d.DebtorID != id {
			continue
		}
		for paymentID, p := range f.payments {
			if p.DebtID == debtID {
				delete(f.payments, paymentID)
			}
		}
		delete(f.debts, debtID)
	}
	return nil
}

func (f *fakeDebtRepo) CreateDebt(ctx context.Context, d debt.Debt) (debt.Debt, error) {
	d.ID = f.nextID("debt")
	f.debts[d.ID] = d
	return d, nil
}

func (f *fakeDebtRepo) GetDebtByID(ctx context.Context, id string) (debt.Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return debt.Debt{}, debt.ErrDebtNotFound
	}
	return d, nil
}

func (f *fakeDebtRepo) GetDebtForUpdate(ctx context.Context, id string) (debt.Debt, error) {
	return f.GetDebtByID(ctx, id)
}

func (f *fakeDebtRepo) ListDebts(ctx context.Context, filter debt.DebtFilter) ([]debt.Debt, error) {
	var list []debt.Debt
	for _, d := range f.debts {
		if filter.DebtorID != nil && d.DebtorID != *filter.DebtorID {
			continue
		}
		list = append(list, d)
	}
	return list, nil
}

func (f *fakeDebtRepo) UpdateBalance(ctx context.Context, id string, remaining decimal.Decimal, status debt.DebtStatus) (debt.Debt, error) {
	if f.failUpdateBalance != nil {
		return debt.Debt{}, f.failUpdateBalance
	}
	d := f.debts[id]
	d.Remaining = remaining
	d.Status = status
	f.debts[id] = d
	return d, nil
}

func (f *fakeDebtRepo) CreatePayment(ctx context.Context, p debt.DebtPayment) (debt.DebtPayment, error) {
	p.ID = f.nextID("payment")
	f.payments[p.ID] = p
	return p, nil
}

func (f *fakeDebtRepo) ListPayments(ctx context.Context, debtID string) ([]debt.DebtPayment, error) {
	var list []debt.DebtPayment
	for _, p := range f.payments {
		if p.DebtID == debtID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (f *fakeDebtRepo) Summary(ctx context.Context, now time.Time) (debt.Summary, error) {
	summary := debt.Summary{TotalDebtors: len(f.debtors)}
	for _, d := range f.debts {
		if d.Status != debt.DebtStatusActive {
			continue
		}
		summary.ActiveDebts++
		summary.TotalDebt = summary.TotalDebt.Add(d.Amount)
		summary.TotalRemaining = summary.TotalRemaining.Add(d.Remaining)
		summary.TotalPaid = summary.TotalPaid.Add(d.Amount.Sub(d.Remaining))
		if d.DueDate != nil && d.DueDate.Before(now) {
			summary.OverdueDebts++
		}
	}
	return summary, nil
}

func (f *fakeDebtRepo) snapshot() func() {
	debts := make(map[string]debt.Debt, len(f.debts))
	for k, v := range f.debts {
		debts[k] = v
	}
	payments := make(map[string]debt.DebtPayment, len(f.payments))
	for k, v := range f.payments {
		payments[k] = v
	}
	return func() {
		f.debts = debts
		f.payments = payments
	}
}

// fakeTransactor restores the repository when fn fails, like a rollback.
type fakeTransactor struct {
	repo *fakeDebtRepo
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	restore := t.repo.snapshot()
	if err := fn(ctx); err != nil {
		restore()
		return err
	}
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// ===== FIXTURES =====

const employeeID = "0190a8d2-5f3c-7a10-8000-000000000001"

func newTestDebtService() (*DebtServiceImpl, *fakeDebtRepo) {
	repo := newFakeDebtRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		employeeID: {ID: employeeID, FullName: "Budi"},
	}}
	svc := NewDebtService(&fakeTransactor{repo: repo}, repo, employees).(*DebtServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc, repo
}

func createDebt(t *testing.T, svc *DebtServiceImpl, amount int64) debt.DebtResponse {
	t.Helper()
	ctx := context.Background()

	debtor, err := svc.CreateDebtor(ctx, debt.CreateDebtorRequest{Name: "Toko Maju", Type: string(debt.DebtorTypeExternal)})
	require.NoError(t, err)

	created, err := svc.CreateDebt(ctx, debt.CreateDebtRequest{DebtorID: debtor.ID, Amount: decimal.NewFromInt(amount)})
	require.NoError(t, err)
	return created
}

func payment(debtID string, amount int64) debt.RecordPaymentRequest {
	return debt.RecordPaymentRequest{
		DebtID:      debtID,
		Amount:      decimal.NewFromInt(amount),
		Method:      string(debt.PaymentMethodTransfer),
		PaymentDate: "2024-05-20",
	}
}

// ===== TESTS =====

func TestDebtService_CreateDebtor_EmployeeNeedsLink(t *testing.T) {
	svc, _ := newTestDebtService()
	ctx := context.Background()

	_, err := svc.CreateDebtor(ctx, debt.CreateDebtorRequest{Name: "Budi", Type: string(debt.DebtorTypeEmployee)})
	assert.ErrorIs(t, err, debt.ErrEmployeeLinkRequired)

	id := employeeID
	created, err := svc.CreateDebtor(ctx, debt.CreateDebtorRequest{Name: "Budi", Type: string(debt.DebtorTypeEmployee), EmployeeID: &id})
	require.NoError(t, err)
	assert.Equal(t, debt.DebtorTypeEmployee, created.Type)
}

func TestDebtService_CreateDebt_RemainingEqualsAmount(t *testing.T) {
	svc, _ := newTestDebtService()

	created := createDebt(t, svc, 1000000)

	assert.Equal(t, debt.DebtStatusActive, created.Status)
	assert.True(t, created.Remaining.Equal(decimal.NewFromInt(1000000)))
}

func TestDebtService_CreateDebt_UnknownDebtor(t *testing.T) {
	svc, _ := newTestDebtService()

	_, err := svc.CreateDebt(context.Background(), debt.CreateDebtRequest{DebtorID: "missing", Amount: decimal.NewFromInt(10)})

	assert.ErrorIs(t, err, debt.ErrDebtorNotFound)
}

func TestDebtService_RecordPayment_Partial(t *testing.T) {
	svc, repo := newTestDebtService()
	created := createDebt(t, svc, 1000000)

	result, err := svc.RecordPayment(context.Background(), payment(created.ID, 400000))

	require.NoError(t, err)
	assert.Equal(t, debt.DebtStatusActive, result.Debt.Status)
	assert.True(t, result.Debt.Remaining.Equal(decimal.NewFromInt(600000)), result.Debt.Remaining.String())
	assert.Equal(t, "2024-05-20", result.Payment.PaymentDate)
	assert.Len(t, repo.payments, 1)
}

func TestDebtService_RecordPayment_ExactAmountMarksPaid(t *testing.T) {
	svc, _ := newTestDebtService()
	ctx := context.Background()
	created := createDebt(t, svc, 1000000)

	_, err := svc.RecordPayment(ctx, payment(created.ID, 400000))
	require.NoError(t, err)
	result, err := svc.RecordPayment(ctx, payment(created.ID, 600000))

	require.NoError(t, err)
	assert.Equal(t, debt.DebtStatusPaid, result.Debt.Status)
	assert.True(t, result.Debt.Remaining.IsZero())

	_, err = svc.RecordPayment(ctx, payment(created.ID, 1))
	assert.ErrorIs(t, err, debt.ErrDebtNotActive)
}

func TestDebtService_RecordPayment_ExceedsRemaining(t *testing.T) {
	svc, repo := newTestDebtService()
	created := createDebt(t, svc, 500000)

	_, err := svc.RecordPayment(context.Background(), payment(created.ID, 500001))

	require.ErrorIs(t, err, debt.ErrAmountExceedsRemaining)
	var exceeds *debt.ExceedsRemainingError
	require.ErrorAs(t, err, &exceeds)
	assert.True(t, exceeds.Remaining.Equal(decimal.NewFromInt(500000)))
	assert.Empty(t, repo.payments)
	assert.True(t, repo.debts[created.ID].Remaining.Equal(decimal.NewFromInt(500000)))
}

func TestDebtService_RecordPayment_RollsBackOnFailure(t *testing.T) {
	svc, repo := newTestDebtService()
	created := createDebt(t, svc, 500000)
	repo.failUpdateBalance = errors.New("connection reset")

	_, err := svc.RecordPayment(context.Background(), payment(created.ID, 100000))

	require.Error(t, err)
	assert.Empty(t, repo.payments)
	assert.True(t, repo.debts[created.ID].Remaining.Equal(decimal.NewFromInt(500000)))
}

func TestDebtService_RecordPayment_Validation(t *testing.T) {
	svc, _ := newTestDebtService()

	req := payment("debt-1", 0)
	req.Method = "CHEQUE"
	_, err := svc.RecordPayment(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "method")
}

func TestDebtService_RecordPayment_RejectsSubCentAmounts(t *testing.T) {
	svc, repo := newTestDebtService()
	created := createDebt(t, svc, 100)

	for _, amount := range []string{"99.999", "0.001"} {
		req := payment(created.ID, 0)
		req.Amount = decimal.RequireFromString(amount)

		_, err := svc.RecordPayment(context.Background(), req)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, amount)
		assert.Equal(t, "amount must have at most 2 decimal places", verrs.ToMap()["amount"], amount)
	}
	assert.Empty(t, repo.payments)
	assert.Equal(t, debt.DebtStatusActive, repo.debts[created.ID].Status)
	assert.True(t, repo.debts[created.ID].Remaining.Equal(decimal.NewFromInt(100)))
}

func TestDebtService_RecordPayment_CentsPayOffExactly(t *testing.T) {
	svc, _ := newTestDebtService()
	ctx := context.Background()
	created := createDebt(t, svc, 100)

	req := payment(created.ID, 0)
	req.Amount = decimal.RequireFromString("99.99")
	result, err := svc.RecordPayment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, debt.DebtStatusActive, result.Debt.Status)

	req.Amount = decimal.RequireFromString("0.010")
	result, err = svc.RecordPayment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, debt.DebtStatusPaid, result.Debt.Status)
	assert.True(t, result.Debt.Remaining.IsZero())
}

func TestDebtService_CreateDebt_AmountPrecision(t *testing.T) {
	svc, _ := newTestDebtService()
	ctx := context.Background()
	debtor, err := svc.CreateDebtor(ctx, debt.CreateDebtorRequest{Name: "Toko Maju", Type: string(debt.DebtorTypeExternal)})
	require.NoError(t, err)

	_, err = svc.CreateDebt(ctx, debt.CreateDebtRequest{DebtorID: debtor.ID, Amount: decimal.RequireFromString("100.005")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "amount")

	_, err = svc.CreateDebt(ctx, debt.CreateDebtRequest{DebtorID: debtor.ID, Amount: decimal.New(1, 13)})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "amount")
}

func TestDebtService_RecordPayment_NotFound(t *testing.T) {
	svc, _ := newTestDebtService()

	_, err := svc.RecordPayment(context.Background(), payment("missing", 10))

	assert.ErrorIs(t, err, debt.ErrDebtNotFound)
}

func TestDebtService_CancelDebt(t *testing.T) {
	svc, _ := newTestDebtService()
	ctx := context.Background()
	created := createDebt(t, svc, 500000)

	cancelled, err := svc.CancelDebt(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, debt.DebtStatusCancelled, cancelled.Status)

	_, err = svc.CancelDebt(ctx, created.ID)
	assert.ErrorIs(t, err, debt.ErrDebtNotActive)

	_, err = svc.RecordPayment(ctx, payment(created.ID, 10))
	assert.ErrorIs(t, err, debt.ErrDebtNotActive)
}

func TestDebtService_DeleteDebtor_Cascades(t *testing.T) {
	svc, repo := newTestDebtService()
	ctx := context.Background()
	created := createDebt(t, svc, 500000)
	_, err := svc.RecordPayment(ctx, payment(created.ID, 100000))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDebtor(ctx, created.DebtorID))

	assert.Empty(t, repo.debtors)
	assert.Empty(t, repo.debts)
	assert.Empty(t, repo.payments)
}

func TestDebtService_Summary(t *testing.T) {
	svc, repo := newTestDebtService()
	ctx := context.Background()
	first := createDebt(t, svc, 1000000)
	createDebt(t, svc, 500000)

	overdue := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d := repo.debts[first.ID]
	d.DueDate = &overdue
	repo.debts[first.ID] = d

	_, err := svc.RecordPayment(ctx, payment(first.ID, 250000))
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalDebtors)
	assert.Equal(t, 2, summary.ActiveDebts)
	assert.Equal(t, 1, summary.OverdueDebts)
	assert.True(t, summary.TotalDebt.Equal(decimal.NewFromInt(1500000)))
	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(250000)))
	assert.True(t, summary.TotalRemaining.Equal(decimal.NewFromInt(1250000)))
}
