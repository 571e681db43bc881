package payroll

import (
	"fmt"
	"sort"

	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// Input is one employee's monthly figures. UnpaidDeduction and OvertimePay
// come from Adjust and are already rounded.
type Input struct {
	BasePay         decimal.Decimal
	UnpaidDeduction decimal.Decimal
	OvertimePay     decimal.Decimal
	Additions       map[string]decimal.Decimal
}

// Breakdown is the itemized result of Calculate. Every monetary field is
// rounded to two places except the taxable bases.
type Breakdown struct {
	BasePay         decimal.Decimal
	EmployeeSGK     decimal.Decimal
	EmployerSGK     decimal.Decimal
	MonthlyTaxable  decimal.Decimal
	AnnualTaxable   decimal.Decimal
	IncomeTax       decimal.Decimal
	UnpaidDeduction decimal.Decimal
	OvertimePay     decimal.Decimal
	Additions       map[string]decimal.Decimal
	TotalAdditions  decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Calculate charges both contribution shares on the full base pay. The
// unpaid-leave deduction only lowers the income tax base and is itself a
// deduction from net pay.
func (p Policy) Calculate(in Input) (Breakdown, error) {
	if in.BasePay.IsNegative() || in.UnpaidDeduction.IsNegative() || in.OvertimePay.IsNegative() {
		return Breakdown{}, payroll.ErrNegativeAmount
	}

	employeeSGK := round2(in.BasePay.Mul(p.EmployeeSGKRate))
	employerSGK := round2(in.BasePay.Mul(p.EmployerSGKRate))

	monthlyTaxable := decimal.Max(in.BasePay.Sub(employeeSGK).Sub(in.UnpaidDeduction), decimal.Zero)
	annualTaxable := monthlyTaxable.Mul(twelve)
	incomeTax := round2(p.AnnualIncomeTax(annualTaxable).Div(twelve))

	additions := make(map[string]decimal.Decimal, len(in.Additions))
	sum := in.OvertimePay
	for name, amount := range in.Additions {
		if amount.IsNegative() {
			return Breakdown{}, fmt.Errorf("%w: addition %q", payroll.ErrNegativeAmount, name)
		}
		additions[name] = amount
		sum = sum.Add(amount)
	}
	totalAdditions := round2(sum)
	totalDeductions := employeeSGK.Add(incomeTax).Add(in.UnpaidDeduction)

	return Breakdown{
		BasePay:         in.BasePay,
		EmployeeSGK:     employeeSGK,
		EmployerSGK:     employerSGK,
		MonthlyTaxable:  monthlyTaxable,
		AnnualTaxable:   annualTaxable,
		IncomeTax:       incomeTax,
		UnpaidDeduction: in.UnpaidDeduction,
		OvertimePay:     in.OvertimePay,
		Additions:       additions,
		TotalAdditions:  totalAdditions,
		TotalDeductions: totalDeductions,
		NetPay:          round2(in.BasePay.Add(totalAdditions).Sub(totalDeductions)),
	}, nil
}

// AnnualIncomeTax walks the bracket table and returns the unrounded tax.
func (p Policy) AnnualIncomeTax(annualTaxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	remaining := annualTaxable
	for _, b := range p.Brackets {
		if !remaining.IsPositive() {
			break
		}
		band := remaining
		if b.Width != nil {
			band = decimal.Min(remaining, *b.Width)
		}
		tax = tax.Add(band.Mul(b.Rate))
		remaining = remaining.Sub(band)
	}
	return tax
}

// Lines lists the detail rows to persist. Zero amounts are dropped except the
// employer contribution, which is always kept for cost reporting.
func (b Breakdown) Lines() []payroll.DetailLine {
	var lines []payroll.DetailLine
	add := func(name string, category payroll.ComponentCategory, amount decimal.Decimal) {
		if amount.IsZero() {
			return
		}
		lines = append(lines, payroll.DetailLine{Name: name, Category: category, Amount: amount})
	}

	add(payroll.ComponentEmployeeSGK, payroll.ComponentCategoryDeduction, b.EmployeeSGK)
	add(payroll.ComponentIncomeTax, payroll.ComponentCategoryDeduction, b.IncomeTax)
	add(payroll.ComponentUnpaidLeave, payroll.ComponentCategoryDeduction, b.UnpaidDeduction)
	add(payroll.ComponentOvertimePay, payroll.ComponentCategoryAddition, b.OvertimePay)

	names := make([]string, 0, len(b.Additions))
	for name := range b.Additions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(name, payroll.ComponentCategoryAddition, round2(b.Additions[name]))
	}

	return append(lines, payroll.DetailLine{
		Name:     payroll.ComponentEmployerSGK,
		Category: payroll.ComponentCategoryEmployerCost,
		Amount:   b.EmployerSGK,
	})
}
