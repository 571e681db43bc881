package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusNormal  Status = "Normal"
	StatusOnLeave Status = "Izinli"
	StatusAbsent  Status = "Devamsiz"
)

// Attendance is one row per employee per date.
type Attendance struct {
	ID            int64
	EmployeeID    int64
	Date          time.Time
	Status        Status
	OvertimeHours *decimal.Decimal
}
