package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	shiftservice "github.com/cmlabs-hris/hris-core-go/internal/service/shift"
)

type AttendanceServiceImpl struct {
	attendanceRepo  attendance.AttendanceRepository
	employeeRepo    employee.EmployeeRepository
	branchRepo      branch.BranchRepository
	shiftRepo       shift.ShiftRepository
	defaultTimezone string
	now             func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	shiftRepo shift.ShiftRepository,
	defaultTimezone string,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo:  attendanceRepo,
		employeeRepo:    employeeRepo,
		branchRepo:      branchRepo,
		shiftRepo:       shiftRepo,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotActive
	}

	br, err := s.branchRepo.GetByID(ctx, emp.BranchID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// The branch timezone decides which day the check-in belongs to.
	nowLocal := s.now().In(br.Location(s.defaultTimezone))
	day := dayOf(nowLocal)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	location, err := geo.ValidateLocation(br.Geofence(), req.Latitude, req.Longitude)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status, shiftID, err := s.resolveStatus(ctx, nowLocal)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn := nowLocal.UTC()
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:       emp.ID,
		Date:             day,
		CheckIn:          &checkIn,
		CheckInLatitude:  &req.Latitude,
		CheckInLongitude: &req.Longitude,
		Method:           attendance.MethodGPS,
		Status:           status,
		ShiftID:          shiftID,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	slog.Info("employee checked in",
		"employee_id", emp.ID,
		"attendance_id", created.ID,
		"status", created.Status,
		"distance_meters", math.Round(location.DistanceMeters),
	)

	resp := attendance.ToResponse(created)
	resp.DistanceMeters = &location.DistanceMeters
	return resp, nil
}

// resolveStatus detects the shift covering now. Arriving after the shift's
// start on the same calendar day is LATE; no matching shift is PRESENT.
func (s *AttendanceServiceImpl) resolveStatus(ctx context.Context, nowLocal time.Time) (attendance.Status, *string, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	matched, err := shiftservice.Detect(shifts, nowLocal)
	if err != nil {
		if errors.Is(err, shift.ErrNoShiftMatched) {
			return attendance.StatusPresent, nil, nil
		}
		return "", nil, err
	}

	start, err := shiftservice.StartOn(matched, nowLocal)
	if err != nil {
		return "", nil, err
	}

	shiftID := matched.ID
	if nowLocal.After(start) {
		return attendance.StatusLate, &shiftID, nil
	}
	return attendance.StatusPresent, &shiftID, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.EmployeeID != req.EmployeeID {
		return attendance.AttendanceResponse{}, attendance.ErrNotOwner
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	br, err := s.branchRepo.GetByEmployeeID(ctx, record.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	location, err := geo.ValidateLocation(br.Geofence(), req.Latitude, req.Longitude)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.CheckOut(ctx, record.ID, s.now().UTC(), req.Latitude, req.Longitude)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	slog.Info("employee checked out",
		"employee_id", updated.EmployeeID,
		"attendance_id", updated.ID,
		"worked_hours", updated.WorkedHours(),
	)

	resp := attendance.ToResponse(updated)
	resp.DistanceMeters = &location.DistanceMeters
	return resp, nil
}

// Correct implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Correct(ctx context.Context, req attendance.CorrectAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckIn != nil {
		checkIn, _ := validator.IsValidDateTime(*req.CheckIn)
		checkIn = checkIn.UTC()
		record.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, _ := validator.IsValidDateTime(*req.CheckOut)
		checkOut = checkOut.UTC()
		record.CheckOut = &checkOut
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	record.Method = attendance.MethodManual

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to correct attendance: %w", err)
	}

	slog.Info("attendance corrected", "attendance_id", updated.ID, "status", updated.Status)
	return attendance.ToResponse(updated), nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// MonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthlySummary, error) {
	if month < 1 || month > 12 || year < 2000 {
		return attendance.MonthlySummary{}, attendance.ErrInvalidPeriod
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthlySummary{}, err
	}

	from, to := attendance.MonthRange(month, year)
	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list attendance for summary: %w", err)
	}

	return attendance.Summarize(employeeID, month, year, records), nil
}

// dayOf returns the calendar day of t as a UTC midnight, the form stored in
// the date column.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
