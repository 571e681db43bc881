package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the payroll view of a directory record. BaseSalary comes from
// the employee's current position and is nil when no position is assigned.
type Employee struct {
	ID             int64
	FirstName      string
	LastName       string
	DepartmentName *string
	HireDate       time.Time
	Active         bool
	BaseSalary     *decimal.Decimal
}

// FullName joins the name parts, skipping an empty one.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Salary returns the base salary, treating a missing position as zero.
func (e Employee) Salary() decimal.Decimal {
	if e.BaseSalary == nil {
		return decimal.Zero
	}
	return *e.BaseSalary
}
