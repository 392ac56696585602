package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	attendance.AttendanceService
	lastCheckIn attendance.CheckInRequest
	checkInErr  error
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	f.lastCheckIn = req
	if f.checkInErr != nil {
		return attendance.AttendanceResponse{}, f.checkInErr
	}
	return attendance.AttendanceResponse{
		ID:         "att-1",
		EmployeeID: req.EmployeeID,
		Status:     attendance.StatusPresent,
	}, nil
}

type fakeLeaveService struct {
	leave.LeaveService
	balanceFor string
	yearFor    int
}

func (f *fakeLeaveService) GetBalance(ctx context.Context, employeeID string, year int) (leave.Balance, error) {
	f.balanceFor = employeeID
	f.yearFor = year
	return leave.Balance{}, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	generateErr error
	approvedBy  string
}

func (f *fakePayrollService) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	if f.generateErr != nil {
		return payroll.PayrollResponse{}, f.generateErr
	}
	return payroll.PayrollResponse{ID: "pr-1", EmployeeID: req.EmployeeID, Month: req.Month, Year: req.Year}, nil
}

func (f *fakePayrollService) Approve(ctx context.Context, id string, approverID string) (payroll.PayrollResponse, error) {
	f.approvedBy = approverID
	return payroll.PayrollResponse{ID: id, Status: payroll.PayrollStatusApproved}, nil
}

type routerFixture struct {
	t          *testing.T
	handler    http.Handler
	jwtService jwt.Service
	attendance *fakeAttendanceService
	leave      *fakeLeaveService
	payroll    *fakePayrollService
}

func newRouterFixture(t *testing.T) *routerFixture {
	f := &routerFixture{
		t:          t,
		jwtService: jwt.NewJWTService("router-test-secret", "1h"),
		attendance: &fakeAttendanceService{},
		leave:      &fakeLeaveService{},
		payroll:    &fakePayrollService{},
	}

	logger := NewLogger(io.Discard, "test", slog.LevelError)
	f.handler = NewRouter(logger, RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       slog.LevelError,
	}, f.jwtService, Handlers{
		Attendance: NewAttendanceHandler(f.attendance),
		Shift:      NewShiftHandler(nil),
		Leave:      NewLeaveHandler(f.leave),
		Overtime:   NewOvertimeHandler(nil),
		Debt:       NewDebtHandler(nil),
		Payroll:    NewPayrollHandler(f.payroll),
		Master:     NewMasterHandler(nil),
		Employee:   NewEmployeeHandler(nil),
	})
	return f
}

func (f *routerFixture) token(role user.Role, employeeID *string) string {
	token, _, err := f.jwtService.GenerateAccessToken("0192f0c4-7b5e-7c1a-9f00-000000000001", employeeID, role)
	require.NoError(f.t, err)
	return token
}

func (f *routerFixture) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var parsed response.Response
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(f.t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func strPtr(s string) *string { return &s }

func TestRouter_HealthNeedsNoToken(t *testing.T) {
	f := newRouterFixture(t)

	rec, _ := f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	f := newRouterFixture(t)

	rec, body := f.do(http.MethodGet, "/api/v1/payroll", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestRouter_RejectsForeignSignature(t *testing.T) {
	f := newRouterFixture(t)
	other := jwt.NewJWTService("another-secret", "1h")
	token, _, err := other.GenerateAccessToken("u1", nil, user.RoleAdmin)
	require.NoError(t, err)

	rec, _ := f.do(http.MethodGet, "/api/v1/payroll", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_EmployeeCannotGeneratePayroll(t *testing.T) {
	f := newRouterFixture(t)

	rec, body := f.do(http.MethodPost, "/api/v1/payroll/generate", f.token(user.RoleEmployee, strPtr("emp-1")),
		map[string]interface{}{"employee_id": "emp-1", "month": 3, "year": 2024})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestRouter_GeneratePayroll(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(user.RoleHR, nil)

	t.Run("created", func(t *testing.T) {
		rec, body := f.do(http.MethodPost, "/api/v1/payroll/generate", token,
			map[string]interface{}{"employee_id": "emp-1", "month": 3, "year": 2024})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, body.Success)
	})

	t.Run("duplicate period", func(t *testing.T) {
		f.payroll.generateErr = payroll.ErrPayrollAlreadyExists
		defer func() { f.payroll.generateErr = nil }()

		rec, body := f.do(http.MethodPost, "/api/v1/payroll/generate", token,
			map[string]interface{}{"employee_id": "emp-1", "month": 3, "year": 2024})
		assert.Equal(t, http.StatusConflict, rec.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, payroll.ErrPayrollAlreadyExists.Error(), body.Error.Message)
	})

	t.Run("invalid period", func(t *testing.T) {
		rec, _ := f.do(http.MethodPost, "/api/v1/payroll/generate", token,
			map[string]interface{}{"employee_id": "emp-1", "month": 13, "year": 2024})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing employee", func(t *testing.T) {
		rec, body := f.do(http.MethodPost, "/api/v1/payroll/generate", token,
			map[string]interface{}{"month": 3, "year": 2024})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, body.Error)
		assert.Contains(t, body.Error.Details, "employee_id")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/generate", bytes.NewReader([]byte("{")))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_ApprovePayrollUsesCaller(t *testing.T) {
	f := newRouterFixture(t)

	rec, _ := f.do(http.MethodPost, "/api/v1/payroll/pr-1/approve", f.token(user.RoleAdmin, nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0192f0c4-7b5e-7c1a-9f00-000000000001", f.payroll.approvedBy)
}

func TestRouter_CheckInTakesEmployeeFromToken(t *testing.T) {
	f := newRouterFixture(t)

	rec, body := f.do(http.MethodPost, "/api/v1/attendance/check-in", f.token(user.RoleEmployee, strPtr("emp-7")),
		map[string]interface{}{"employee_id": "someone-else", "latitude": -6.2, "longitude": 106.8})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "emp-7", f.attendance.lastCheckIn.EmployeeID)
	assert.InDelta(t, -6.2, f.attendance.lastCheckIn.Latitude, 1e-9)
}

func TestRouter_CheckInOutsideGeofence(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.checkInErr = &geo.GeofenceError{Branch: "Head Office", DistanceMeters: 120.2, RadiusMeters: 50}

	rec, body := f.do(http.MethodPost, "/api/v1/attendance/check-in", f.token(user.RoleEmployee, strPtr("emp-7")),
		map[string]interface{}{"latitude": -6.2, "longitude": 106.8})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "you are 120m away from Head Office. maximum allowed: 50m", body.Error.Message)
}

func TestRouter_CheckInRequiresEmployeeLink(t *testing.T) {
	f := newRouterFixture(t)

	rec, body := f.do(http.MethodPost, "/api/v1/attendance/check-in", f.token(user.RoleAdmin, nil),
		map[string]interface{}{"latitude": -6.2, "longitude": 106.8})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, user.ErrEmployeeLinkRequired.Error(), body.Error.Message)
}

func TestRouter_LeaveBalanceScope(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("employee reads own balance", func(t *testing.T) {
		rec, _ := f.do(http.MethodGet, "/api/v1/leave/balance?year=2024&employee_id=emp-9", f.token(user.RoleEmployee, strPtr("emp-7")), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "emp-7", f.leave.balanceFor)
		assert.Equal(t, 2024, f.leave.yearFor)
	})

	t.Run("hr reads another employee", func(t *testing.T) {
		rec, _ := f.do(http.MethodGet, "/api/v1/leave/balance?year=2024&employee_id=emp-9", f.token(user.RoleHR, nil), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "emp-9", f.leave.balanceFor)
	})

	t.Run("hr without target", func(t *testing.T) {
		rec, _ := f.do(http.MethodGet, "/api/v1/leave/balance", f.token(user.RoleHR, nil), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_EmployeeCannotApproveLeave(t *testing.T) {
	f := newRouterFixture(t)

	rec, _ := f.do(http.MethodPost, "/api/v1/leave/lr-1/approve", f.token(user.RoleEmployee, strPtr("emp-7")), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
