package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := employee.EmployeeFilter{
		BranchID:   queryString(r, "branch_id"),
		PositionID: queryString(r, "position_id"),
		Search:     queryString(r, "search"),
		Page:       page,
		Limit:      limit,
	}
	if status := queryString(r, "status"); status != nil {
		s := employee.EmploymentStatus(*status)
		if !s.IsValid() {
			response.BadRequest(w, "Invalid status filter", nil)
			return
		}
		filter.Status = &s
	}

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Employees, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
