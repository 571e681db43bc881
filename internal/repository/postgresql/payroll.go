package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/ik-portal/hr-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== COMPONENTS ==========

// UpsertComponent returns the catalog row for name, creating it when missing.
// An existing row keeps its category.
func (r *payrollRepository) UpsertComponent(ctx context.Context, name string, category payroll.ComponentCategory) (payroll.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO maas_bileseni (bilesen_adi, bilesen_tipi)
		VALUES ($1, $2)
		ON CONFLICT (bilesen_adi) DO UPDATE SET bilesen_adi = EXCLUDED.bilesen_adi
		RETURNING bilesen_id, bilesen_adi, bilesen_tipi
	`

	var c payroll.Component
	err := q.QueryRow(ctx, query, name, string(category)).Scan(&c.ID, &c.Name, &c.Category)
	if err != nil {
		return payroll.Component{}, fmt.Errorf("failed to upsert payroll component: %w", err)
	}

	return c, nil
}

// ========== HEADERS ==========

func (r *payrollRepository) UpsertHeader(ctx context.Context, header payroll.Header) (int64, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO maas_hesap (
			personel_id, donem_yil, donem_ay, brut_maas,
			toplam_ekleme, toplam_kesinti, net_maas, odendi_mi
		) VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		ON CONFLICT (personel_id, donem_yil, donem_ay) DO UPDATE SET
			brut_maas = EXCLUDED.brut_maas,
			toplam_ekleme = EXCLUDED.toplam_ekleme,
			toplam_kesinti = EXCLUDED.toplam_kesinti,
			net_maas = EXCLUDED.net_maas
		WHERE maas_hesap.odendi_mi = false
		RETURNING maas_hesap_id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		header.EmployeeID, header.PeriodYear, header.PeriodMonth, header.GrossPay,
		header.TotalAdditions, header.TotalDeductions, header.NetPay,
	).Scan(&id)
	if err != nil {
		// The conflicting header is paid, so the WHERE clause suppressed the update.
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to upsert payroll header: %w", err)
	}

	return id, true, nil
}

const headerSelect = `
	SELECT m.maas_hesap_id, m.personel_id, m.donem_yil, m.donem_ay, m.brut_maas,
		   m.toplam_ekleme, m.toplam_kesinti, m.net_maas, m.odendi_mi, m.odeme_tarihi,
		   p.ad, p.soyad, d.departman_adi
	FROM maas_hesap m
	JOIN personel p ON p.personel_id = m.personel_id
	LEFT JOIN departman d ON d.departman_id = p.departman_id
`

func scanHeader(row pgx.Row) (payroll.Header, error) {
	var h payroll.Header
	err := row.Scan(
		&h.ID, &h.EmployeeID, &h.PeriodYear, &h.PeriodMonth, &h.GrossPay,
		&h.TotalAdditions, &h.TotalDeductions, &h.NetPay, &h.Paid, &h.PaymentDate,
		&h.FirstName, &h.LastName, &h.DepartmentName,
	)
	return h, err
}

func (r *payrollRepository) GetByID(ctx context.Context, id int64) (payroll.Header, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHeader(q.QueryRow(ctx, headerSelect+" WHERE m.maas_hesap_id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Header{}, payroll.ErrPayrollNotFound
		}
		return payroll.Header{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return h, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Header, error) {
	q := GetQuerier(ctx, r.db)

	query := headerSelect + " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Yil != nil {
		query += fmt.Sprintf(" AND m.donem_yil = $%d", argIdx)
		args = append(args, *filter.Yil)
		argIdx++
	}
	if filter.Ay != nil {
		query += fmt.Sprintf(" AND m.donem_ay = $%d", argIdx)
		args = append(args, *filter.Ay)
		argIdx++
	}
	if filter.PersonelID != nil {
		query += fmt.Sprintf(" AND m.personel_id = $%d", argIdx)
		args = append(args, *filter.PersonelID)
		argIdx++
	}
	query += " ORDER BY m.donem_yil DESC, m.donem_ay DESC, p.ad, p.soyad"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var headers []payroll.Header
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return headers, nil
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id int64, paidOn time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE maas_hesap
		SET odendi_mi = true, odeme_tarihi = $2
		WHERE maas_hesap_id = $1 AND odendi_mi = false
	`, id, paidOn)
	if err != nil {
		return fmt.Errorf("failed to mark payroll as paid: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var paid bool
	err = q.QueryRow(ctx, `SELECT odendi_mi FROM maas_hesap WHERE maas_hesap_id = $1`, id).Scan(&paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to check payroll status: %w", err)
	}
	return payroll.ErrPayrollAlreadyPaid
}

// ========== DETAILS ==========

func (r *payrollRepository) ReplaceDetails(ctx context.Context, headerID int64, details []payroll.Detail) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM maas_detay WHERE maas_hesap_id = $1`, headerID); err != nil {
		return fmt.Errorf("failed to delete payroll details: %w", err)
	}

	for _, d := range details {
		_, err := q.Exec(ctx, `
			INSERT INTO maas_detay (maas_hesap_id, bilesen_id, tutar)
			VALUES ($1, $2, $3)
		`, headerID, d.ComponentID, d.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert payroll detail: %w", err)
		}
	}

	return nil
}

func (r *payrollRepository) GetDetails(ctx context.Context, headerID int64) ([]payroll.Detail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT md.maas_detay_id, md.maas_hesap_id, md.bilesen_id, md.tutar,
			   b.bilesen_adi, b.bilesen_tipi
		FROM maas_detay md
		JOIN maas_bileseni b ON b.bilesen_id = md.bilesen_id
		WHERE md.maas_hesap_id = $1
		ORDER BY md.maas_detay_id
	`

	rows, err := q.Query(ctx, query, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll details: %w", err)
	}
	defer rows.Close()

	var details []payroll.Detail
	for rows.Next() {
		var d payroll.Detail
		if err := rows.Scan(&d.ID, &d.HeaderID, &d.ComponentID, &d.Amount, &d.ComponentName, &d.ComponentCategory); err != nil {
			return nil, fmt.Errorf("failed to scan payroll detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll details: %w", err)
	}

	return details, nil
}
