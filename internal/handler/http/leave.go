package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	now          func() time.Time
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		now:          time.Now,
	}
}

// GetBalance implements LeaveHandler. Staff may read another employee's balance
// with ?employee_id=.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" || !identity.IsStaff() {
		if !identity.HasEmployee() {
			response.BadRequest(w, "employee_id is required", nil)
			return
		}
		employeeID = *identity.EmployeeID
	}

	year := queryIntOr(r, "year", l.now().Year())

	balance, err := l.leaveService.GetBalance(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	result, err := l.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", result)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := l.reviewRequest(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := l.reviewRequest(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// reviewRequest accepts an optional body carrying notes.
func (l *LeaveHandlerImpl) reviewRequest(w http.ResponseWriter, r *http.Request) (leave.ReviewLeaveRequest, bool) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return leave.ReviewLeaveRequest{}, false
	}

	var req leave.ReviewLeaveRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return leave.ReviewLeaveRequest{}, false
	}
	req.ID = chi.URLParam(r, "id")
	req.ApproverID = identity.UserID
	return req, true
}

// GetRequest implements LeaveHandler. Employees only see their own requests.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !identity.IsStaff() && (!identity.HasEmployee() || *identity.EmployeeID != result.EmployeeID) {
		response.HandleError(w, leave.ErrLeaveRequestNotFound)
		return
	}

	response.Success(w, result)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := l.filterFromQuery(r)
	filter.EmployeeID = queryString(r, "employee_id")

	result, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Requests, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	_, employeeID, ok := employeeFrom(w, r)
	if !ok {
		return
	}

	filter := l.filterFromQuery(r)
	filter.EmployeeID = &employeeID

	result, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Requests, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

func (l *LeaveHandlerImpl) filterFromQuery(r *http.Request) leave.LeaveRequestFilter {
	page, limit := pagination(r)
	return leave.LeaveRequestFilter{
		LeaveType: queryString(r, "leave_type"),
		Status:    queryString(r, "status"),
		Year:      queryInt(r, "year"),
		Page:      page,
		Limit:     limit,
	}
}
