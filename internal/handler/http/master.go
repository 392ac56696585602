package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Branch handlers
	CreateBranch(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
	UpdateBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)

	// Department handlers
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	// Position handlers
	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

// ==================== BRANCH HANDLERS ====================

func (h *masterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created successfully", result)
}

func (h *masterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetBranch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListBranches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.UpdateBranchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch updated successfully", result)
}

func (h *masterHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteBranch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted successfully", nil)
}

// ==================== DEPARTMENT HANDLERS ====================

func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", result)
}

func (h *masterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetDepartment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpdateDepartmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", result)
}

func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// ==================== POSITION HANDLERS ====================

func (h *masterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.CreatePositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreatePosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created successfully", result)
}

func (h *masterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetPosition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	var filter position.PositionFilter
	if departmentID := r.URL.Query().Get("department_id"); departmentID != "" {
		filter.DepartmentID = &departmentID
	}

	result, err := h.masterService.ListPositions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.UpdatePositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdatePosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated successfully", result)
}

func (h *masterHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeletePosition(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted successfully", nil)
}
