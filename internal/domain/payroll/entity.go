package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentCategory enum
type ComponentCategory string

const (
	ComponentCategoryAddition     ComponentCategory = "addition"
	ComponentCategoryDeduction    ComponentCategory = "deduction"
	ComponentCategoryEmployerCost ComponentCategory = "employer_cost"
)

// Catalog component names
const (
	ComponentEmployeeSGK = "Employee Social-Security Share"
	ComponentEmployerSGK = "Employer Social-Security Share"
	ComponentIncomeTax   = "Income Tax"
	ComponentUnpaidLeave = "Unpaid-Leave Deduction"
	ComponentOvertimePay = "Overtime Pay"
)

// Component - entry of the payroll component catalog
type Component struct {
	ID       int64
	Name     string
	Category ComponentCategory
}

// Header - one payroll result per employee per period
type Header struct {
	ID              int64
	EmployeeID      int64
	PeriodYear      int
	PeriodMonth     int
	GrossPay        decimal.Decimal
	TotalAdditions  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Paid            bool
	PaymentDate     *time.Time

	// Joined fields
	FirstName      *string
	LastName       *string
	DepartmentName *string
}

// Detail - itemized component row owned by a header
type Detail struct {
	ID          int64
	HeaderID    int64
	ComponentID int64
	Amount      decimal.Decimal

	// Joined fields
	ComponentName     string
	ComponentCategory ComponentCategory
}

// DetailLine - component line produced by a computation, before catalog lookup
type DetailLine struct {
	Name     string
	Category ComponentCategory
	Amount   decimal.Decimal
}

// Period is an inclusive calendar month
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

func (p Period) String() string {
	return p.Start().Format("2006-01")
}
