package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	// ListActiveForPayroll returns active employees hired on or before
	// periodEnd, optionally narrowed to a single employee.
	ListActiveForPayroll(ctx context.Context, periodEnd time.Time, employeeID *int64) ([]Employee, error)
}
