package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
	seq      int
}

func newFakeLeaveRequestRepo() *fakeLeaveRequestRepo {
	return &fakeLeaveRequestRepo{requests: map[string]leave.LeaveRequest{}}
}

func (f *fakeLeaveRequestRepo) Create(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.seq++
	r.ID = fmt.Sprintf("leave-%d", f.seq)
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRequestRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var list []leave.LeaveRequest
	for _, r := range f.requests {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		list = append(list, r)
	}
	return list, int64(len(list)), nil
}

func (f *fakeLeaveRequestRepo) UpdateStatus(ctx context.Context, id string, status leave.LeaveStatus, actorID *string, at time.Time, notes *string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if r.Status != leave.LeaveStatusPending {
		return leave.LeaveRequest{}, leave.ErrNotPending
	}
	r.Status = status
	if actorID != nil {
		r.ApprovedBy = actorID
		r.ApprovedAt = &at
	}
	if notes != nil {
		r.Notes = notes
	}
	f.requests[id] = r
	return r, nil
}

func (f *fakeLeaveRequestRepo) SumApprovedDuration(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (int, error) {
	total := 0
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.LeaveType == leaveType &&
			r.Status == leave.LeaveStatusApproved && r.StartDate.Year() == year {
			total += r.Duration
		}
	}
	return total, nil
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

func newTestLeaveService() (*LeaveServiceImpl, *fakeLeaveRequestRepo) {
	repo := newFakeLeaveRequestRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", AnnualLeaveQuota: 12, MonthlyLeaveQuota: 1},
		"emp-2": {ID: "emp-2", AnnualLeaveQuota: 12, MonthlyLeaveQuota: 1},
	}}
	svc := NewLeaveService(repo, employees).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC) }
	return svc, repo
}

func seedApproved(repo *fakeLeaveRequestRepo, employeeID string, leaveType leave.LeaveType, start time.Time, duration int) {
	repo.seq++
	id := fmt.Sprintf("seed-%d", repo.seq)
	repo.requests[id] = leave.LeaveRequest{
		ID:         id,
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    start,
		Duration:   duration,
		Status:     leave.LeaveStatusApproved,
	}
}

func annualRequest(start, end string) leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  string(leave.LeaveTypeAnnual),
		StartDate:  start,
		EndDate:    end,
		Reason:     "family trip",
	}
}

func TestLeaveService_GetBalance(t *testing.T) {
	svc, repo := newTestLeaveService()
	seedApproved(repo, "emp-1", leave.LeaveTypeAnnual, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), 3)
	seedApproved(repo, "emp-1", leave.LeaveTypeAnnual, time.Date(2023, 12, 4, 0, 0, 0, 0, time.UTC), 5)
	seedApproved(repo, "emp-1", leave.LeaveTypeMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1)

	balance, err := svc.GetBalance(context.Background(), "emp-1", 2024)

	require.NoError(t, err)
	assert.Equal(t, leave.Quota{Quota: 12, Used: 3, Remaining: 9}, balance.Annual)
	assert.Equal(t, leave.Quota{Quota: 1, Used: 1, Remaining: 0}, balance.Monthly)
}

func TestLeaveService_CreateRequest_WithinQuota(t *testing.T) {
	svc, _ := newTestLeaveService()

	// Mon 2024-01-01 .. Fri 2024-01-12 is ten working days
	resp, err := svc.CreateRequest(context.Background(), annualRequest("2024-01-01", "2024-01-12"))

	require.NoError(t, err)
	assert.Equal(t, 10, resp.Duration)
	assert.Equal(t, leave.LeaveStatusPending, resp.Status)
}

func TestLeaveService_CreateRequest_InsufficientQuota(t *testing.T) {
	svc, repo := newTestLeaveService()
	seedApproved(repo, "emp-1", leave.LeaveTypeAnnual, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), 7)

	_, err := svc.CreateRequest(context.Background(), annualRequest("2024-03-04", "2024-03-15"))

	require.ErrorIs(t, err, leave.ErrInsufficientQuota)
	var quotaErr *leave.QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 10, quotaErr.Requested)
	assert.Equal(t, 5, quotaErr.Remaining)
	assert.Equal(t, "insufficient annual leave quota. you have 5 days remaining", err.Error())
	assert.Len(t, repo.requests, 1)
}

func TestLeaveService_CreateRequest_UngatedTypeIgnoresQuota(t *testing.T) {
	svc, repo := newTestLeaveService()
	seedApproved(repo, "emp-1", leave.LeaveTypeAnnual, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), 12)

	req := annualRequest("2024-03-04", "2024-03-15")
	req.LeaveType = string(leave.LeaveTypeSick)
	resp, err := svc.CreateRequest(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveTypeSick, resp.LeaveType)
}

func TestLeaveService_CreateRequest_InvalidRange(t *testing.T) {
	svc, _ := newTestLeaveService()

	_, err := svc.CreateRequest(context.Background(), annualRequest("2024-01-12", "2024-01-01"))

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_CreateRequest_WeekendOnly(t *testing.T) {
	svc, repo := newTestLeaveService()

	// Sat 2024-01-06 .. Sun 2024-01-07
	req := annualRequest("2024-01-06", "2024-01-07")
	req.LeaveType = string(leave.LeaveTypeSick)
	resp, err := svc.CreateRequest(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Duration)
	assert.Equal(t, leave.LeaveStatusPending, resp.Status)
	assert.Len(t, repo.requests, 1)
}

func TestLeaveService_CreateRequest_WeekendOnlyAnnualUsesNoQuota(t *testing.T) {
	svc, repo := newTestLeaveService()
	seedApproved(repo, "emp-1", leave.LeaveTypeAnnual, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), 12)

	resp, err := svc.CreateRequest(context.Background(), annualRequest("2024-03-09", "2024-03-10"))

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Duration)
}

func TestLeaveService_CreateRequest_ValidationErrors(t *testing.T) {
	svc, _ := newTestLeaveService()

	_, err := svc.CreateRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "HOLIDAY",
		StartDate:  "01/02/2024",
		EndDate:    "2024-01-05",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "leave_type")
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "reason")
}

func TestLeaveService_ApproveThenApproveAgain(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, annualRequest("2024-01-08", "2024-01-09"))
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, leave.ReviewLeaveRequest{ID: created.ID, ApproverID: "hr-1"})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "hr-1", *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	_, err = svc.Reject(ctx, leave.ReviewLeaveRequest{ID: created.ID, ApproverID: "hr-2"})
	assert.ErrorIs(t, err, leave.ErrNotPending)

	balance, err := svc.GetBalance(ctx, "emp-1", 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Annual.Used)
}

func TestLeaveService_RejectStoresNotes(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, annualRequest("2024-01-08", "2024-01-09"))
	require.NoError(t, err)

	notes := "project deadline"
	rejected, err := svc.Reject(ctx, leave.ReviewLeaveRequest{ID: created.ID, ApproverID: "hr-1", Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusRejected, rejected.Status)
	assert.Equal(t, &notes, rejected.Notes)
}

func TestLeaveService_Cancel(t *testing.T) {
	svc, _ := newTestLeaveService()
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, annualRequest("2024-01-08", "2024-01-09"))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, created.ID, "emp-2")
	assert.ErrorIs(t, err, leave.ErrNotOwner)

	cancelled, err := svc.Cancel(ctx, created.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, created.ID, "emp-1")
	assert.ErrorIs(t, err, leave.ErrNotPending)
}

func TestLeaveService_Approve_NotFound(t *testing.T) {
	svc, _ := newTestLeaveService()

	_, err := svc.Approve(context.Background(), leave.ReviewLeaveRequest{ID: "missing", ApproverID: "hr-1"})

	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}
