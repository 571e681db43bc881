package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	ListByEmployeePeriod(ctx context.Context, employeeID int64, start, end time.Time) ([]Attendance, error)
}
