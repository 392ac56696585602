package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateBulk(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	now            func() time.Time
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		now:            time.Now,
	}
}

// ========== GENERATION ==========

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated successfully", result)
}

// GenerateBulk reports per-employee failures in the body and still answers 200.
func (h *payrollHandlerImpl) GenerateBulk(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateBulkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.GenerateBulk(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk payroll generation finished", result)
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Approve(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll approved", result)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted successfully", nil)
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := payroll.PayrollFilter{
		EmployeeID: queryString(r, "employee_id"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		Status:     queryString(r, "status"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Payrolls, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

// ========== SUMMARY ==========

func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	month := queryIntOr(r, "month", int(now.Month()))
	year := queryIntOr(r, "year", now.Year())

	result, err := h.payrollService.Summary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
