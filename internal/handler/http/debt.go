package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/debt"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DebtHandler interface {
	// Debtors
	CreateDebtor(w http.ResponseWriter, r *http.Request)
	GetDebtor(w http.ResponseWriter, r *http.Request)
	ListDebtors(w http.ResponseWriter, r *http.Request)
	DeleteDebtor(w http.ResponseWriter, r *http.Request)

	// Debts
	CreateDebt(w http.ResponseWriter, r *http.Request)
	GetDebt(w http.ResponseWriter, r *http.Request)
	ListDebts(w http.ResponseWriter, r *http.Request)
	CancelDebt(w http.ResponseWriter, r *http.Request)

	// Payments
	RecordPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)

	Summary(w http.ResponseWriter, r *http.Request)
}

type debtHandlerImpl struct {
	debtService debt.DebtService
}

func NewDebtHandler(debtService debt.DebtService) DebtHandler {
	return &debtHandlerImpl{debtService: debtService}
}

// ========== DEBTORS ==========

func (h *debtHandlerImpl) CreateDebtor(w http.ResponseWriter, r *http.Request) {
	var req debt.CreateDebtorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.debtService.CreateDebtor(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Debtor created successfully", result)
}

func (h *debtHandlerImpl) GetDebtor(w http.ResponseWriter, r *http.Request) {
	result, err := h.debtService.GetDebtor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *debtHandlerImpl) ListDebtors(w http.ResponseWriter, r *http.Request) {
	filter := debt.DebtorFilter{
		Type:   queryString(r, "type"),
		Search: queryString(r, "search"),
	}

	result, err := h.debtService.ListDebtors(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *debtHandlerImpl) DeleteDebtor(w http.ResponseWriter, r *http.Request) {
	if err := h.debtService.DeleteDebtor(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Debtor deleted successfully", nil)
}

// ========== DEBTS ==========

func (h *debtHandlerImpl) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debt.CreateDebtRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.debtService.CreateDebt(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Debt recorded successfully", result)
}

func (h *debtHandlerImpl) GetDebt(w http.ResponseWriter, r *http.Request) {
	result, err := h.debtService.GetDebt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *debtHandlerImpl) ListDebts(w http.ResponseWriter, r *http.Request) {
	filter := debt.DebtFilter{
		DebtorID: queryString(r, "debtor_id"),
		Status:   queryString(r, "status"),
	}

	result, err := h.debtService.ListDebts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *debtHandlerImpl) CancelDebt(w http.ResponseWriter, r *http.Request) {
	result, err := h.debtService.CancelDebt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Debt cancelled", result)
}

// ========== PAYMENTS ==========

func (h *debtHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req debt.RecordPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.DebtID = chi.URLParam(r, "id")

	result, err := h.debtService.RecordPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment recorded successfully", result)
}

func (h *debtHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.debtService.ListPayments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SUMMARY ==========

func (h *debtHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.debtService.Summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
