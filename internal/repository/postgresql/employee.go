package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/employee"
	"github.com/ik-portal/hr-backend/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) ListActiveForPayroll(ctx context.Context, periodEnd time.Time, employeeID *int64) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	// One row per employee; the most recent current position wins.
	query := `
		SELECT DISTINCT ON (p.personel_id)
			   p.personel_id, p.ad, p.soyad, d.departman_adi,
			   p.ise_giris_tarihi, p.aktif_mi, poz.taban_maas
		FROM personel p
		LEFT JOIN departman d ON d.departman_id = p.departman_id
		LEFT JOIN personel_pozisyon pp ON pp.personel_id = p.personel_id AND pp.guncel_mi = true
		LEFT JOIN pozisyon poz ON poz.pozisyon_id = pp.pozisyon_id
		WHERE p.aktif_mi = true
		  AND p.ise_giris_tarihi <= $1
		  AND ($2::bigint IS NULL OR p.personel_id = $2)
		ORDER BY p.personel_id, pp.baslangic_tarihi DESC NULLS LAST
	`

	rows, err := q.Query(ctx, query, periodEnd, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.FirstName, &e.LastName, &e.DepartmentName,
			&e.HireDate, &e.Active, &e.BaseSalary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
