package user

type Permission string

const (
	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"
	PermissionPayrollRun     Permission = "payroll.run"
	PermissionPayrollPay     Permission = "payroll.pay"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollRun,
		PermissionPayrollPay,
	},
	RoleEmployee: {
		PermissionPayrollViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
