package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/payroll"
)

// PayrollJobs generates the previous month's payroll once the configured day
// of the current month is reached.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	runDay         int
	now            func() time.Time
	logger         *slog.Logger

	mu         sync.Mutex
	lastPeriod string
}

func NewPayrollJobs(payrollService payroll.PayrollService, runDay int, logger *slog.Logger) *PayrollJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollJobs{
		payrollService: payrollService,
		runDay:         runDay,
		now:            time.Now,
		logger:         logger,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	// Checked hourly, runs once per closed month
	scheduler.AddJob("generate_closed_month_payroll", 1*time.Hour, j.GenerateClosedMonth)
}

func (j *PayrollJobs) GenerateClosedMonth(ctx context.Context) error {
	now := j.now().UTC()
	if now.Day() < j.runDay {
		return nil
	}

	closed := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	period := closed.Format("2006-01")

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastPeriod == period {
		return nil
	}

	result, err := j.payrollService.Generate(ctx, payroll.GenerateRequest{
		Yil: json.Number(strconv.Itoa(closed.Year())),
		Ay:  json.Number(strconv.Itoa(int(closed.Month()))),
	})
	if err != nil {
		return fmt.Errorf("failed to generate payroll for %s: %w", period, err)
	}

	j.lastPeriod = period
	j.logger.Info("Cron: payroll generated",
		"period", period,
		"run_id", result.RunID,
		"created", len(result.Created),
		"skipped", len(result.Skipped),
	)
	return nil
}
