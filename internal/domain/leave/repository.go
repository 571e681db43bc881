package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// ListApprovedInPeriod returns approved leave of the employee that
	// overlaps [start, end].
	ListApprovedInPeriod(ctx context.Context, employeeID int64, start, end time.Time) ([]LeaveRecord, error)
}
