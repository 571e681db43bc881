package user

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - runs and pays payroll
	RoleEmployee Role = "employee" // Regular employee
)
