package payroll

import (
	"encoding/json"
	"time"

	"github.com/ik-portal/hr-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== RUN DTOs ==========

// PeriodRequest is the body shared by generate and preview. Year and month
// accept both JSON numbers and numeric strings.
type PeriodRequest struct {
	Yil        json.Number `json:"yil"`
	Ay         json.Number `json:"ay"`
	PersonelID *int64      `json:"personel_id,omitempty"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Yil == "" {
		errs = append(errs, validator.ValidationError{Field: "yil", Message: "is required"})
	} else if year, err := r.Yil.Int64(); err != nil {
		errs = append(errs, validator.ValidationError{Field: "yil", Message: "must be an integer"})
	} else if year < 1 || year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "yil", Message: "must be between 1 and 9999"})
	}

	if r.Ay == "" {
		errs = append(errs, validator.ValidationError{Field: "ay", Message: "is required"})
	} else if month, err := r.Ay.Int64(); err != nil {
		errs = append(errs, validator.ValidationError{Field: "ay", Message: "must be an integer"})
	} else if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "ay", Message: "must be between 1 and 12"})
	}

	if r.PersonelID != nil && *r.PersonelID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "personel_id", Message: "must be a positive integer"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the requested period. Call Validate first.
func (r *PeriodRequest) Period() Period {
	year, _ := r.Yil.Int64()
	month, _ := r.Ay.Int64()
	return Period{Year: int(year), Month: time.Month(month)}
}

type GenerateRequest = PeriodRequest

type PreviewRequest = PeriodRequest

type GeneratedItem struct {
	PersonelID int64           `json:"personel_id"`
	NetMaas    decimal.Decimal `json:"net_maas"`
	Kesinti    decimal.Decimal `json:"kesinti"`
}

type GenerateResponse struct {
	Message string          `json:"message"`
	RunID   string          `json:"run_id"`
	Created []GeneratedItem `json:"created"`
	Skipped []int64         `json:"skipped,omitempty"` // already paid, left untouched
}

type PreviewItem struct {
	PersonelID       int64           `json:"personel_id"`
	Ad               string          `json:"ad"`
	Soyad            string          `json:"soyad"`
	BrutMaas         decimal.Decimal `json:"brut_maas"`
	WorkingDays      int             `json:"working_days"`
	UnpaidDays       int             `json:"unpaid_days"`
	UnpaidDeduction  decimal.Decimal `json:"unpaid_deduction"`
	SGKEmployee      decimal.Decimal `json:"sgk_employee"`
	SGKEmployer      decimal.Decimal `json:"sgk_employer"`
	MonthlyIncomeTax decimal.Decimal `json:"monthly_income_tax"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	ToplamKesinti    decimal.Decimal `json:"toplam_kesinti"`
	ToplamEkleme     decimal.Decimal `json:"toplam_ekleme"`
	NetMaas          decimal.Decimal `json:"net_maas"`
}

type PreviewResponse struct {
	Previews []PreviewItem `json:"previews"`
}

// ========== RECORD DTOs ==========

type PayrollFilter struct {
	Yil        *int
	Ay         *int
	PersonelID *int64
}

type PayrollResponse struct {
	MaasHesapID   int64           `json:"maas_hesap_id"`
	PersonelID    int64           `json:"personel_id"`
	DonemYil      int             `json:"donem_yil"`
	DonemAy       int             `json:"donem_ay"`
	BrutMaas      decimal.Decimal `json:"brut_maas"`
	ToplamEkleme  decimal.Decimal `json:"toplam_ekleme"`
	ToplamKesinti decimal.Decimal `json:"toplam_kesinti"`
	NetMaas       decimal.Decimal `json:"net_maas"`
	OdemeTarihi   *string         `json:"odeme_tarihi"`
	OdendiMi      bool            `json:"odendi_mi"`
	Ad            string          `json:"ad"`
	Soyad         string          `json:"soyad"`
	DepartmanAdi  *string         `json:"departman_adi"`
}

type DetailResponse struct {
	BilesenAdi string          `json:"bilesen_adi"`
	Tip        string          `json:"tip"`
	Tutar      decimal.Decimal `json:"tutar"`
}

type PayrollDetailResponse struct {
	Maas     PayrollResponse  `json:"maas"`
	Detaylar []DetailResponse `json:"detaylar"`
}
