package leave

import "time"

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "Beklemede"
	LeaveStatusApproved  LeaveStatus = "Onaylandi"
	LeaveStatusRejected  LeaveStatus = "Reddedildi"
	LeaveStatusCancelled LeaveStatus = "Iptal"
)

// LeaveRecord is a leave request joined with its type's paid flag.
type LeaveRecord struct {
	ID          int64
	EmployeeID  int64
	LeaveTypeID int64
	StartDate   time.Time
	EndDate     time.Time
	DayCount    int
	Status      LeaveStatus

	// Joined fields
	TypeName string
	Paid     bool
}
