package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/ik-portal/hr-backend/internal/domain/attendance"
	"github.com/ik-portal/hr-backend/internal/domain/employee"
	"github.com/ik-portal/hr-backend/internal/domain/leave"
	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/ik-portal/hr-backend/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	transactor     payroll.Transactor
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRepository
	attendanceRepo attendance.AttendanceRepository
	policy         Policy
	now            func() time.Time
	logger         *slog.Logger
}

type Option func(*PayrollServiceImpl)

// WithClock overrides the clock used for payment dates.
func WithClock(now func() time.Time) Option {
	return func(s *PayrollServiceImpl) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *PayrollServiceImpl) { s.logger = logger }
}

func NewPayrollService(
	transactor payroll.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	policy Policy,
	opts ...Option,
) payroll.PayrollService {
	s := &PayrollServiceImpl{
		transactor:     transactor,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		policy:         policy,
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// computation is one employee's adjusted and calculated pay for a period.
type computation struct {
	employee   employee.Employee
	adjustment Adjustment
	breakdown  Breakdown
}

func (s *PayrollServiceImpl) validatePeriod(req payroll.PeriodRequest) (payroll.Period, error) {
	if err := req.Validate(); err != nil {
		return payroll.Period{}, err
	}
	period := req.Period()
	if WorkingDays(period.Start(), period.End(), s.policy.WorkWeek) == 0 {
		return payroll.Period{}, validator.ValidationErrors{
			{Field: "ay", Message: "period has no working days"},
		}
	}
	return period, nil
}

func (s *PayrollServiceImpl) compute(ctx context.Context, period payroll.Period, emp employee.Employee) (computation, error) {
	start, end := period.Start(), period.End()

	leaves, err := s.leaveRepo.ListApprovedInPeriod(ctx, emp.ID, start, end)
	if err != nil {
		return computation{}, fmt.Errorf("failed to get leave for employee %d: %w", emp.ID, err)
	}
	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, emp.ID, start, end)
	if err != nil {
		return computation{}, fmt.Errorf("failed to get attendance for employee %d: %w", emp.ID, err)
	}

	base := emp.Salary()
	adj, err := s.policy.Adjust(AdjustInput{
		BasePay:    base,
		Start:      start,
		End:        end,
		Leaves:     leaves,
		Attendance: records,
	})
	if err != nil {
		return computation{}, err
	}

	brk, err := s.policy.Calculate(Input{
		BasePay:         base,
		UnpaidDeduction: adj.UnpaidDeduction,
		OvertimePay:     adj.OvertimePay,
	})
	if err != nil {
		return computation{}, fmt.Errorf("failed to calculate payroll for employee %d: %w", emp.ID, err)
	}

	return computation{employee: emp, adjustment: adj, breakdown: brk}, nil
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResponse, error) {
	period, err := s.validatePeriod(req)
	if err != nil {
		return payroll.GenerateResponse{}, err
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID, "period", period.String())
	logger.Info("Payroll run started")

	var (
		created []payroll.GeneratedItem
		skipped []int64
	)
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		employees, err := s.employeeRepo.ListActiveForPayroll(ctx, period.End(), req.PersonelID)
		if err != nil {
			return fmt.Errorf("failed to get employees: %w", err)
		}

		components := make(map[string]payroll.Component)
		for _, emp := range employees {
			c, err := s.compute(ctx, period, emp)
			if errors.Is(err, payroll.ErrNoWorkingDays) {
				logger.Warn("Employee skipped", "personel_id", emp.ID, "name", emp.FullName(), "error", err)
				continue
			}
			if err != nil {
				return err
			}

			brk := c.breakdown
			headerID, ok, err := s.payrollRepo.UpsertHeader(ctx, payroll.Header{
				EmployeeID:      emp.ID,
				PeriodYear:      period.Year,
				PeriodMonth:     int(period.Month),
				GrossPay:        brk.BasePay,
				TotalAdditions:  brk.TotalAdditions,
				TotalDeductions: brk.TotalDeductions,
				NetPay:          brk.NetPay,
			})
			if err != nil {
				return fmt.Errorf("failed to save payroll for employee %d: %w", emp.ID, err)
			}
			if !ok {
				logger.Info("Paid payroll left untouched", "personel_id", emp.ID, "name", emp.FullName())
				skipped = append(skipped, emp.ID)
				continue
			}

			var details []payroll.Detail
			for _, line := range brk.Lines() {
				comp, found := components[line.Name]
				if !found {
					comp, err = s.payrollRepo.UpsertComponent(ctx, line.Name, line.Category)
					if err != nil {
						return fmt.Errorf("failed to resolve component %q: %w", line.Name, err)
					}
					components[line.Name] = comp
				}
				details = append(details, payroll.Detail{
					HeaderID:    headerID,
					ComponentID: comp.ID,
					Amount:      line.Amount,
				})
			}
			if err := s.payrollRepo.ReplaceDetails(ctx, headerID, details); err != nil {
				return fmt.Errorf("failed to save payroll details for employee %d: %w", emp.ID, err)
			}

			created = append(created, payroll.GeneratedItem{
				PersonelID: emp.ID,
				NetMaas:    brk.NetPay,
				Kesinti:    brk.TotalDeductions,
			})
		}
		return nil
	})
	if err != nil {
		logger.Error("Payroll run failed", "error", err)
		return payroll.GenerateResponse{}, err
	}

	logger.Info("Payroll run finished", "created", len(created), "skipped", len(skipped))

	if created == nil {
		created = []payroll.GeneratedItem{}
	}
	return payroll.GenerateResponse{
		Message: fmt.Sprintf("Payroll generated for %d employee(s) for %s", len(created), period),
		RunID:   runID,
		Created: created,
		Skipped: skipped,
	}, nil
}

func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewRequest) (payroll.PreviewResponse, error) {
	period, err := s.validatePeriod(req)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}

	employees, err := s.employeeRepo.ListActiveForPayroll(ctx, period.End(), req.PersonelID)
	if err != nil {
		return payroll.PreviewResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	previews := make([]payroll.PreviewItem, 0, len(employees))
	for _, emp := range employees {
		c, err := s.compute(ctx, period, emp)
		if errors.Is(err, payroll.ErrNoWorkingDays) {
			continue
		}
		if err != nil {
			return payroll.PreviewResponse{}, err
		}

		adj, brk := c.adjustment, c.breakdown
		previews = append(previews, payroll.PreviewItem{
			PersonelID:       emp.ID,
			Ad:               emp.FirstName,
			Soyad:            emp.LastName,
			BrutMaas:         brk.BasePay,
			WorkingDays:      adj.WorkingDays,
			UnpaidDays:       adj.UnpaidDays,
			UnpaidDeduction:  brk.UnpaidDeduction,
			SGKEmployee:      brk.EmployeeSGK,
			SGKEmployer:      brk.EmployerSGK,
			MonthlyIncomeTax: brk.IncomeTax,
			OvertimeHours:    adj.OvertimeHours,
			OvertimePay:      brk.OvertimePay,
			ToplamKesinti:    brk.TotalDeductions,
			ToplamEkleme:     brk.TotalAdditions,
			NetMaas:          brk.NetPay,
		})
	}

	return payroll.PreviewResponse{Previews: previews}, nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id int64) error {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := s.payrollRepo.MarkPaid(ctx, id, today); err != nil {
		return err
	}
	s.logger.Info("Payroll marked as paid", "maas_hesap_id", id, "odeme_tarihi", today.Format("2006-01-02"))
	return nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, error) {
	headers, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToPayrollResponses(headers), nil
}

// GetPayroll reads the header and its details concurrently.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id int64) (payroll.PayrollDetailResponse, error) {
	var (
		header  payroll.Header
		details []payroll.Detail
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		header, err = s.payrollRepo.GetByID(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		details, err = s.payrollRepo.GetDetails(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return payroll.PayrollDetailResponse{}, err
	}

	resp := payroll.PayrollDetailResponse{
		Maas:     mapToPayrollResponse(header),
		Detaylar: make([]payroll.DetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Detaylar = append(resp.Detaylar, payroll.DetailResponse{
			BilesenAdi: d.ComponentName,
			Tip:        string(d.ComponentCategory),
			Tutar:      d.Amount,
		})
	}
	return resp, nil
}

func (s *PayrollServiceImpl) ListMyPayrolls(ctx context.Context) ([]payroll.PayrollResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListPayrolls(ctx, payroll.PayrollFilter{PersonelID: &employeeID})
}

// employeeIDFromContext reads the personel_id claim of the caller.
func employeeIDFromContext(ctx context.Context) (int64, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var id int64
	switch v := claims["personel_id"].(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	case int:
		id = int64(v)
	case json.Number:
		id, _ = v.Int64()
	case string:
		id, _ = strconv.ParseInt(v, 10, 64)
	}
	if id <= 0 {
		return 0, payroll.ErrEmployeeNotLinked
	}
	return id, nil
}

func mapToPayrollResponse(h payroll.Header) payroll.PayrollResponse {
	resp := payroll.PayrollResponse{
		MaasHesapID:   h.ID,
		PersonelID:    h.EmployeeID,
		DonemYil:      h.PeriodYear,
		DonemAy:       h.PeriodMonth,
		BrutMaas:      h.GrossPay,
		ToplamEkleme:  h.TotalAdditions,
		ToplamKesinti: h.TotalDeductions,
		NetMaas:       h.NetPay,
		OdendiMi:      h.Paid,
		DepartmanAdi:  h.DepartmentName,
	}
	if h.PaymentDate != nil {
		date := h.PaymentDate.Format("2006-01-02")
		resp.OdemeTarihi = &date
	}
	if h.FirstName != nil {
		resp.Ad = *h.FirstName
	}
	if h.LastName != nil {
		resp.Soyad = *h.LastName
	}
	return resp
}

func mapToPayrollResponses(headers []payroll.Header) []payroll.PayrollResponse {
	responses := make([]payroll.PayrollResponse, 0, len(headers))
	for _, h := range headers {
		responses = append(responses, mapToPayrollResponse(h))
	}
	return responses
}
