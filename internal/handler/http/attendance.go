package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	MonthlySummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		now:               time.Now,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	var req attendance.CheckInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	var req attendance.CheckOutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AttendanceID = chi.URLParam(r, "id")
	req.EmployeeID = employeeID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Correct implements AttendanceHandler.
func (h *attendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.Correct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := h.filterFromQuery(r)
	filter.EmployeeID = queryString(r, "employee_id")

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Attendances, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	filter := h.filterFromQuery(r)
	filter.EmployeeID = &employeeID

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Attendances, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

// MonthlySummary implements AttendanceHandler. Month and year default to the current month.
func (h *attendanceHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	now := h.now()
	month := queryIntOr(r, "month", int(now.Month()))
	year := queryIntOr(r, "year", now.Year())

	result, err := h.attendanceService.MonthlySummary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) filterFromQuery(r *http.Request) attendance.AttendanceFilter {
	page, limit := pagination(r)
	return attendance.AttendanceFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      page,
		Limit:     limit,
	}
}
