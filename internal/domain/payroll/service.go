package payroll

import "context"

type PayrollService interface {
	// Runs
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	MarkPaid(ctx context.Context, id int64) error

	// Records
	ListPayrolls(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)
	GetPayroll(ctx context.Context, id int64) (PayrollDetailResponse, error)
	ListMyPayrolls(ctx context.Context) ([]PayrollResponse, error)
}
