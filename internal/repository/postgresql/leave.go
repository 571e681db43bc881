package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/leave"
	"github.com/ik-portal/hr-backend/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) ListApprovedInPeriod(ctx context.Context, employeeID int64, start, end time.Time) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT k.izin_kayit_id, k.personel_id, k.izin_turu_id, k.baslangic_tarihi, k.bitis_tarihi,
			   k.gun_sayisi, k.onay_durumu, t.izin_adi, t.ucretli_mi
		FROM izin_kayit k
		JOIN izin_turu t ON t.izin_turu_id = k.izin_turu_id
		WHERE k.personel_id = $1
		  AND k.onay_durumu = $2
		  AND k.baslangic_tarihi <= $4
		  AND k.bitis_tarihi >= $3
		ORDER BY k.baslangic_tarihi
	`

	rows, err := q.Query(ctx, query, employeeID, string(leave.LeaveStatusApproved), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var l leave.LeaveRecord
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.LeaveTypeID, &l.StartDate, &l.EndDate,
			&l.DayCount, &l.Status, &l.TypeName, &l.Paid,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave records: %w", err)
	}

	return records, nil
}
