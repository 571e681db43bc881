package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEmployee_FullName(t *testing.T) {
	tests := []struct {
		name string
		emp  Employee
		want string
	}{
		{"both parts", Employee{FirstName: "Ayse", LastName: "Yilmaz"}, "Ayse Yilmaz"},
		{"no last name", Employee{FirstName: "Ayse"}, "Ayse"},
		{"no first name", Employee{LastName: "Yilmaz"}, "Yilmaz"},
		{"empty", Employee{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.emp.FullName())
		})
	}
}

func TestEmployee_Salary(t *testing.T) {
	assert.True(t, Employee{}.Salary().IsZero())

	base := decimal.RequireFromString("42500.50")
	assert.True(t, base.Equal(Employee{BaseSalary: &base}.Salary()))
}
