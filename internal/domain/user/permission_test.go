package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionPayrollRun))
	assert.True(t, HasPermission(RoleAdmin, PermissionPayrollPay))
	assert.True(t, HasPermission(RoleEmployee, PermissionPayrollViewOwn))
	assert.False(t, HasPermission(RoleEmployee, PermissionPayrollViewAll))
	assert.False(t, HasPermission(RoleEmployee, PermissionPayrollRun))
	assert.False(t, HasPermission(Role("unknown"), PermissionPayrollViewOwn))
}
