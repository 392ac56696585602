package debt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/debt"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
)

type DebtServiceImpl struct {
	transactor   database.Transactor
	debtRepo     debt.DebtRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewDebtService(transactor database.Transactor, debtRepo debt.DebtRepository, employeeRepo employee.EmployeeRepository) debt.DebtService {
	return &DebtServiceImpl{
		transactor:   transactor,
		debtRepo:     debtRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// ==================== DEBTORS ====================

// CreateDebtor implements debt.DebtService.
func (s *DebtServiceImpl) CreateDebtor(ctx context.Context, req debt.CreateDebtorRequest) (debt.DebtorResponse, error) {
	if err := req.Validate(); err != nil {
		return debt.DebtorResponse{}, err
	}

	debtorType := debt.DebtorType(req.Type)
	if debtorType == debt.DebtorTypeEmployee {
		if req.EmployeeID == nil {
			return debt.DebtorResponse{}, debt.ErrEmployeeLinkRequired
		}
		if _, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID); err != nil {
			return debt.DebtorResponse{}, err
		}
	}

	created, err := s.debtRepo.CreateDebtor(ctx, debt.Debtor{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Type:       debtorType,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return debt.DebtorResponse{}, fmt.Errorf("failed to create debtor: %w", err)
	}
	return debt.ToDebtorResponse(created), nil
}

// GetDebtor implements debt.DebtService.
func (s *DebtServiceImpl) GetDebtor(ctx context.Context, id string) (debt.DebtorResponse, error) {
	found, err := s.debtRepo.GetDebtorByID(ctx, id)
	if err != nil {
		return debt.DebtorResponse{}, err
	}
	return debt.ToDebtorResponse(found), nil
}

// ListDebtors implements debt.DebtService.
func (s *DebtServiceImpl) ListDebtors(ctx context.Context, filter debt.DebtorFilter) ([]debt.DebtorResponse, error) {
	debtors, err := s.debtRepo.ListDebtors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}

	responses := make([]debt.DebtorResponse, 0, len(debtors))
	for _, d := range debtors {
		responses = append(responses, debt.ToDebtorResponse(d))
	}
	return responses, nil
}

// DeleteDebtor implements debt.DebtService.
func (s *DebtServiceImpl) DeleteDebtor(ctx context.Context, id string) error {
	if _, err := s.debtRepo.GetDebtorByID(ctx, id); err != nil {
		return err
	}
	if err := s.debtRepo.DeleteDebtor(ctx, id); err != nil {
		return fmt.Errorf("failed to delete debtor: %w", err)
	}

	slog.Info("debtor deleted", "debtor_id", id)
	return nil
}

// ==================== DEBTS ====================

// CreateDebt implements debt.DebtService.
func (s *DebtServiceImpl) CreateDebt(ctx context.Context, req debt.CreateDebtRequest) (debt.DebtResponse, error) {
	if err := req.Validate(); err != nil {
		return debt.DebtResponse{}, err
	}

	if _, err := s.debtRepo.GetDebtorByID(ctx, req.DebtorID); err != nil {
		return debt.DebtResponse{}, err
	}

	created, err := s.debtRepo.CreateDebt(ctx, debt.Debt{
		DebtorID:    req.DebtorID,
		Amount:      req.Amount,
		Remaining:   req.Amount,
		Status:      debt.DebtStatusActive,
		DueDate:     req.Due,
		Description: req.Description,
	})
	if err != nil {
		return debt.DebtResponse{}, fmt.Errorf("failed to create debt: %w", err)
	}

	slog.Info("debt created", "debt_id", created.ID, "debtor_id", created.DebtorID, "amount", created.Amount.String())
	return debt.ToDebtResponse(created), nil
}

// GetDebt implements debt.DebtService.
func (s *DebtServiceImpl) GetDebt(ctx context.Context, id string) (debt.DebtResponse, error) {
	found, err := s.debtRepo.GetDebtByID(ctx, id)
	if err != nil {
		return debt.DebtResponse{}, err
	}
	return debt.ToDebtResponse(found), nil
}

// ListDebts implements debt.DebtService.
func (s *DebtServiceImpl) ListDebts(ctx context.Context, filter debt.DebtFilter) ([]debt.DebtResponse, error) {
	debts, err := s.debtRepo.ListDebts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	responses := make([]debt.DebtResponse, 0, len(debts))
	for _, d := range debts {
		responses = append(responses, debt.ToDebtResponse(d))
	}
	return responses, nil
}

// CancelDebt implements debt.DebtService.
func (s *DebtServiceImpl) CancelDebt(ctx context.Context, id string) (debt.DebtResponse, error) {
	var cancelled debt.Debt
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.debtRepo.GetDebtForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if current.Status != debt.DebtStatusActive {
			return debt.ErrDebtNotActive
		}

		cancelled, err = s.debtRepo.UpdateBalance(txCtx, current.ID, current.Remaining, debt.DebtStatusCancelled)
		return err
	})
	if err != nil {
		return debt.DebtResponse{}, err
	}
	return debt.ToDebtResponse(cancelled), nil
}

// ==================== PAYMENTS ====================

// RecordPayment implements debt.DebtService.
func (s *DebtServiceImpl) RecordPayment(ctx context.Context, req debt.RecordPaymentRequest) (debt.PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return debt.PaymentResult{}, err
	}

	var result debt.PaymentResult
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		// The row lock serializes concurrent payments against the same debt.
		current, err := s.debtRepo.GetDebtForUpdate(txCtx, req.DebtID)
		if err != nil {
			return err
		}
		if current.Status != debt.DebtStatusActive {
			return debt.ErrDebtNotActive
		}
		if req.Amount.GreaterThan(current.Remaining) {
			return &debt.ExceedsRemainingError{Amount: req.Amount, Remaining: current.Remaining}
		}

		payment, err := s.debtRepo.CreatePayment(txCtx, debt.DebtPayment{
			DebtID:      current.ID,
			Amount:      req.Amount,
			Method:      debt.PaymentMethod(req.Method),
			PaymentDate: req.Date,
			Notes:       req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		next := current.ApplyPayment(req.Amount)
		updated, err := s.debtRepo.UpdateBalance(txCtx, next.ID, next.Remaining, next.Status)
		if err != nil {
			return fmt.Errorf("failed to update debt balance: %w", err)
		}

		result = debt.PaymentResult{
			Payment: debt.ToPaymentResponse(payment),
			Debt:    debt.ToDebtResponse(updated),
		}
		return nil
	})
	if err != nil {
		return debt.PaymentResult{}, err
	}

	slog.Info("debt payment recorded",
		"debt_id", req.DebtID,
		"amount", req.Amount.String(),
		"method", req.Method,
		"remaining", result.Debt.Remaining.String(),
		"status", result.Debt.Status,
	)
	return result, nil
}

// ListPayments implements debt.DebtService.
func (s *DebtServiceImpl) ListPayments(ctx context.Context, debtID string) ([]debt.PaymentResponse, error) {
	if _, err := s.debtRepo.GetDebtByID(ctx, debtID); err != nil {
		return nil, err
	}

	payments, err := s.debtRepo.ListPayments(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	responses := make([]debt.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, debt.ToPaymentResponse(p))
	}
	return responses, nil
}

// Summary implements debt.DebtService.
func (s *DebtServiceImpl) Summary(ctx context.Context) (debt.Summary, error) {
	summary, err := s.debtRepo.Summary(ctx, s.now().UTC())
	if err != nil {
		return debt.Summary{}, fmt.Errorf("failed to summarize debts: %w", err)
	}
	return summary, nil
}
