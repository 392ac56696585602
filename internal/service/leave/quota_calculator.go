package leave

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
)

// QuotaCalculator derives leave balances from the employee's yearly quotas and
// the requests approved so far. Nothing is stored; balances are always
// recomputed.
type QuotaCalculator struct {
	leaveRequestRepo leave.LeaveRequestRepository
}

func NewQuotaCalculator(leaveRequestRepo leave.LeaveRequestRepository) *QuotaCalculator {
	return &QuotaCalculator{leaveRequestRepo: leaveRequestRepo}
}

// Balance returns the annual and monthly balance of emp for year. Remaining
// can go negative when approvals exceeded the quota.
func (c *QuotaCalculator) Balance(ctx context.Context, emp employee.Employee, year int) (leave.Balance, error) {
	annualUsed, err := c.leaveRequestRepo.SumApprovedDuration(ctx, emp.ID, leave.LeaveTypeAnnual, year)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to sum approved annual leave: %w", err)
	}

	monthlyUsed, err := c.leaveRequestRepo.SumApprovedDuration(ctx, emp.ID, leave.LeaveTypeMonthly, year)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to sum approved monthly leave: %w", err)
	}

	return leave.Balance{
		EmployeeID: emp.ID,
		Year:       year,
		Annual:     leave.NewQuota(emp.AnnualLeaveQuota, annualUsed),
		Monthly:    leave.NewQuota(emp.MonthlyLeaveQuota, monthlyUsed),
	}, nil
}

// CheckQuota rejects a request of duration days when its type is quota gated
// and the balance cannot cover it.
func (c *QuotaCalculator) CheckQuota(ctx context.Context, emp employee.Employee, leaveType leave.LeaveType, year, duration int) error {
	if !leaveType.IsQuotaGated() {
		return nil
	}

	balance, err := c.Balance(ctx, emp, year)
	if err != nil {
		return err
	}

	quota, _ := balance.For(leaveType)
	if duration > quota.Remaining {
		return &leave.QuotaError{
			LeaveType: leaveType,
			Requested: duration,
			Remaining: quota.Remaining,
		}
	}
	return nil
}
