package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyOvertime(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	ApprovedTotals(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

func (h *overtimeHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	var req overtime.CreateOvertimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	result, err := h.overtimeService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted successfully", result)
}

func (h *overtimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req overtime.ApproveOvertimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ApproverID = identity.UserID

	result, err := h.overtimeService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime approved", result)
}

func (h *overtimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	req := overtime.RejectOvertimeRequest{
		ID:         chi.URLParam(r, "id"),
		ApproverID: identity.UserID,
	}

	result, err := h.overtimeService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime rejected", result)
}

func (h *overtimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.overtimeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request deleted", nil)
}

func (h *overtimeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *overtimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := overtimeFilterFromQuery(r)
	filter.EmployeeID = queryString(r, "employee_id")

	result, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Overtimes, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

func (h *overtimeHandlerImpl) GetMyOvertime(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	filter := overtimeFilterFromQuery(r)
	filter.EmployeeID = &employeeID

	result, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Overtimes, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

func (h *overtimeHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	filter := overtimeFilterFromQuery(r)
	filter.EmployeeID = queryString(r, "employee_id")

	result, err := h.overtimeService.Summary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *overtimeHandlerImpl) ApprovedTotals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := overtime.ApprovedTotalsRequest{
		EmployeeID: q.Get("employee_id"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}

	result, err := h.overtimeService.ApprovedTotals(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func overtimeFilterFromQuery(r *http.Request) overtime.OvertimeFilter {
	page, limit := pagination(r)
	return overtime.OvertimeFilter{
		Status:    queryString(r, "status"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Page:      page,
		Limit:     limit,
	}
}
