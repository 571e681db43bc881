package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/attendance"
	"github.com/ik-portal/hr-backend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByEmployeePeriod(ctx context.Context, employeeID int64, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT devam_id, personel_id, tarih, durum, ek_mesai_saat
		FROM devam
		WHERE personel_id = $1 AND tarih BETWEEN $2 AND $3
		ORDER BY tarih
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.OvertimeHours); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}
