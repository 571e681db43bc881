package payroll

import (
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/attendance"
	"github.com/ik-portal/hr-backend/internal/domain/leave"
	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type AdjustInput struct {
	BasePay    decimal.Decimal
	Start      time.Time
	End        time.Time
	Leaves     []leave.LeaveRecord
	Attendance []attendance.Attendance
}

type Adjustment struct {
	WorkingDays     int
	UnpaidDays      int
	DailyRate       decimal.Decimal
	UnpaidDeduction decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimePay     decimal.Decimal
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkingDays counts the dates in [start, end] that fall on a day of the work week.
func WorkingDays(start, end time.Time, workWeek []time.Weekday) int {
	days := make(map[time.Weekday]bool, len(workWeek))
	for _, d := range workWeek {
		days[d] = true
	}

	n := 0
	for d, last := dateOf(start), dateOf(end); !d.After(last); d = d.AddDate(0, 0, 1) {
		if days[d.Weekday()] {
			n++
		}
	}
	return n
}

// Adjust turns the period's approved leave and attendance into the unpaid-leave
// deduction and overtime pay. It returns ErrNoWorkingDays instead of dividing
// by zero.
func (p Policy) Adjust(in AdjustInput) (Adjustment, error) {
	start, end := dateOf(in.Start), dateOf(in.End)
	workingDays := WorkingDays(start, end, p.WorkWeek)
	if workingDays == 0 {
		return Adjustment{}, payroll.ErrNoWorkingDays
	}

	unpaidDays := 0
	for _, l := range in.Leaves {
		if l.Status != leave.LeaveStatusApproved || l.Paid {
			continue
		}
		from, to := dateOf(l.StartDate), dateOf(l.EndDate)
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		if to.Before(from) {
			continue
		}
		unpaidDays += WorkingDays(from, to, p.WorkWeek)
	}

	hours := decimal.Zero
	for _, a := range in.Attendance {
		if a.OvertimeHours != nil {
			hours = hours.Add(*a.OvertimeHours)
		}
	}

	dailyRate := in.BasePay.Div(decimal.NewFromInt(int64(workingDays)))
	return Adjustment{
		WorkingDays:     workingDays,
		UnpaidDays:      unpaidDays,
		DailyRate:       dailyRate,
		UnpaidDeduction: round2(dailyRate.Mul(decimal.NewFromInt(int64(unpaidDays)))),
		OvertimeHours:   hours,
		OvertimePay:     round2(dailyRate.Mul(hours).Mul(p.OvertimeMultiplier).Div(p.HoursPerDay)),
	}, nil
}
