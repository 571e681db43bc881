package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/ik-portal/hr-backend/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEmployee(t *testing.T, ctx context.Context, setup *TestDatabaseSetup, salary string) int64 {
	t.Helper()

	var departmentID, employeeID, positionID int64
	err := setup.DB.QueryRow(ctx, `INSERT INTO departman (departman_adi) VALUES ('Finans') RETURNING departman_id`).Scan(&departmentID)
	require.NoError(t, err)

	err = setup.DB.QueryRow(ctx, `
		INSERT INTO personel (ad, soyad, ise_giris_tarihi, departman_id, aktif_mi)
		VALUES ('Ayse', 'Yilmaz', '2020-01-06', $1, true)
		RETURNING personel_id
	`, departmentID).Scan(&employeeID)
	require.NoError(t, err)

	err = setup.DB.QueryRow(ctx, `
		INSERT INTO pozisyon (pozisyon_adi, taban_maas) VALUES ('Muhasebeci', $1) RETURNING pozisyon_id
	`, salary).Scan(&positionID)
	require.NoError(t, err)

	_, err = setup.DB.Exec(ctx, `
		INSERT INTO personel_pozisyon (personel_id, pozisyon_id, baslangic_tarihi, guncel_mi)
		VALUES ($1, $2, '2020-01-06', true)
	`, employeeID, positionID)
	require.NoError(t, err)

	return employeeID
}

func TestPayrollRepository_UpsertHeader_ReplacesUnpaid(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(setup.DB)
	employeeID := createTestEmployee(t, ctx, setup, "10000.00")

	header := payroll.Header{
		EmployeeID:      employeeID,
		PeriodYear:      2024,
		PeriodMonth:     3,
		GrossPay:        decimal.RequireFromString("10000"),
		TotalAdditions:  decimal.Zero,
		TotalDeductions: decimal.RequireFromString("3180.33"),
		NetPay:          decimal.RequireFromString("6819.67"),
	}
	firstID, ok, err := repo.UpsertHeader(ctx, header)
	require.NoError(t, err)
	require.True(t, ok)

	header.NetPay = decimal.RequireFromString("7000.00")
	secondID, ok, err := repo.UpsertHeader(ctx, header)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, firstID, secondID)

	got, err := repo.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("7000.00").Equal(got.NetPay))
	require.NotNil(t, got.DepartmentName)
	assert.Equal(t, "Finans", *got.DepartmentName)

	var count int
	err = setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM maas_hesap WHERE personel_id = $1`, employeeID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPayrollRepository_UpsertHeader_SkipsPaid(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(setup.DB)
	employeeID := createTestEmployee(t, ctx, setup, "10000.00")

	header := payroll.Header{
		EmployeeID:  employeeID,
		PeriodYear:  2024,
		PeriodMonth: 3,
		GrossPay:    decimal.RequireFromString("10000"),
		NetPay:      decimal.RequireFromString("6819.67"),
	}
	id, ok, err := repo.UpsertHeader(ctx, header)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.MarkPaid(ctx, id, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))

	header.NetPay = decimal.RequireFromString("1.00")
	_, ok, err = repo.UpsertHeader(ctx, header)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.True(t, decimal.RequireFromString("6819.67").Equal(got.NetPay))
}

func TestPayrollRepository_MarkPaid(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(setup.DB)
	employeeID := createTestEmployee(t, ctx, setup, "10000.00")

	id, _, err := repo.UpsertHeader(ctx, payroll.Header{EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 3})
	require.NoError(t, err)

	paidOn := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkPaid(ctx, id, paidOn))

	err = repo.MarkPaid(ctx, id, paidOn.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyPaid)

	err = repo.MarkPaid(ctx, id+1000, paidOn)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, "2024-04-01", got.PaymentDate.Format("2006-01-02"))
}

func TestPayrollRepository_ReplaceDetails(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(setup.DB)
	employeeID := createTestEmployee(t, ctx, setup, "10000.00")

	id, _, err := repo.UpsertHeader(ctx, payroll.Header{EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 3})
	require.NoError(t, err)

	sgk, err := repo.UpsertComponent(ctx, payroll.ComponentEmployeeSGK, payroll.ComponentCategoryDeduction)
	require.NoError(t, err)
	again, err := repo.UpsertComponent(ctx, payroll.ComponentEmployeeSGK, payroll.ComponentCategoryDeduction)
	require.NoError(t, err)
	assert.Equal(t, sgk.ID, again.ID)

	details := []payroll.Detail{{ComponentID: sgk.ID, Amount: decimal.RequireFromString("1400.00")}}
	require.NoError(t, repo.ReplaceDetails(ctx, id, details))
	require.NoError(t, repo.ReplaceDetails(ctx, id, details))

	got, err := repo.GetDetails(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, payroll.ComponentEmployeeSGK, got[0].ComponentName)
	assert.Equal(t, payroll.ComponentCategoryDeduction, got[0].ComponentCategory)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(setup.DB)
	transactor := postgresql.NewTransactor(setup.DB)
	employeeID := createTestEmployee(t, ctx, setup, "10000.00")

	boom := errors.New("boom")
	err := transactor.WithinTx(ctx, func(ctx context.Context) error {
		if _, _, err := repo.UpsertHeader(ctx, payroll.Header{EmployeeID: employeeID, PeriodYear: 2024, PeriodMonth: 3}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	headers, err := repo.List(ctx, payroll.PayrollFilter{PersonelID: &employeeID})
	require.NoError(t, err)
	assert.Empty(t, headers)
}

func TestEmployeeRepository_ListActiveForPayroll(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	employeeID := createTestEmployee(t, ctx, setup, "80000.00")

	employees, err := repo.ListActiveForPayroll(ctx, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, employeeID, employees[0].ID)
	require.NotNil(t, employees[0].BaseSalary)
	assert.True(t, decimal.RequireFromString("80000").Equal(*employees[0].BaseSalary))

	employees, err = repo.ListActiveForPayroll(ctx, time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Empty(t, employees)
}
