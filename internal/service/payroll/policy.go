package payroll

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Bracket is one band of the annual income tax table. A nil Width marks the
// open-ended top band.
type Bracket struct {
	Width *decimal.Decimal
	Rate  decimal.Decimal
}

// Policy holds the statutory rates and calendar rules the engine computes with.
type Policy struct {
	EmployeeSGKRate    decimal.Decimal
	EmployerSGKRate    decimal.Decimal
	Brackets           []Bracket
	OvertimeMultiplier decimal.Decimal
	HoursPerDay        decimal.Decimal
	WorkWeek           []time.Weekday
}

func DefaultPolicy() Policy {
	width := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return Policy{
		EmployeeSGKRate: decimal.RequireFromString("0.14"),
		EmployerSGKRate: decimal.RequireFromString("0.205"),
		Brackets: []Bracket{
			{Width: width(32000), Rate: decimal.RequireFromString("0.15")},
			{Width: width(38000), Rate: decimal.RequireFromString("0.20")},
			{Width: width(180000), Rate: decimal.RequireFromString("0.27")},
			{Width: width(630000), Rate: decimal.RequireFromString("0.35")},
			{Rate: decimal.RequireFromString("0.40")},
		},
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
		HoursPerDay:        decimal.NewFromInt(8),
		WorkWeek: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

func (p Policy) Validate() error {
	if p.EmployeeSGKRate.IsNegative() || p.EmployerSGKRate.IsNegative() {
		return fmt.Errorf("%w: contribution rates must be non-negative", payroll.ErrInvalidPolicy)
	}
	if p.OvertimeMultiplier.IsNegative() {
		return fmt.Errorf("%w: overtime multiplier must be non-negative", payroll.ErrInvalidPolicy)
	}
	if !p.HoursPerDay.IsPositive() {
		return fmt.Errorf("%w: hours per day must be positive", payroll.ErrInvalidPolicy)
	}
	if len(p.Brackets) == 0 {
		return fmt.Errorf("%w: at least one tax bracket is required", payroll.ErrInvalidPolicy)
	}
	for i, b := range p.Brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: bracket %d has a negative rate", payroll.ErrInvalidPolicy, i+1)
		}
		last := i == len(p.Brackets)-1
		if b.Width == nil && !last {
			return fmt.Errorf("%w: only the last bracket may be unbounded", payroll.ErrInvalidPolicy)
		}
		if b.Width != nil && !b.Width.IsPositive() {
			return fmt.Errorf("%w: bracket %d width must be positive", payroll.ErrInvalidPolicy, i+1)
		}
	}
	return nil
}

type policyFile struct {
	EmployeeSGKRate    string          `yaml:"employee_sgk_rate"`
	EmployerSGKRate    string          `yaml:"employer_sgk_rate"`
	OvertimeMultiplier string          `yaml:"overtime_multiplier"`
	HoursPerDay        string          `yaml:"hours_per_day"`
	WorkWeek           *[]string       `yaml:"work_week"`
	Brackets           []bracketRecord `yaml:"brackets"`
}

type bracketRecord struct {
	Width string `yaml:"width"`
	Rate  string `yaml:"rate"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParsePolicyYAML overlays the document on DefaultPolicy. Keys that are
// absent keep their default; a brackets list replaces the whole table.
func ParsePolicyYAML(b []byte) (Policy, error) {
	var f policyFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", payroll.ErrInvalidPolicy, err)
	}

	p := DefaultPolicy()
	for _, field := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"employee_sgk_rate", f.EmployeeSGKRate, &p.EmployeeSGKRate},
		{"employer_sgk_rate", f.EmployerSGKRate, &p.EmployerSGKRate},
		{"overtime_multiplier", f.OvertimeMultiplier, &p.OvertimeMultiplier},
		{"hours_per_day", f.HoursPerDay, &p.HoursPerDay},
	} {
		if field.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(field.raw)
		if err != nil {
			return Policy{}, fmt.Errorf("%w: %s: %v", payroll.ErrInvalidPolicy, field.name, err)
		}
		*field.dst = v
	}

	if f.WorkWeek != nil {
		p.WorkWeek = make([]time.Weekday, 0, len(*f.WorkWeek))
		for _, name := range *f.WorkWeek {
			d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return Policy{}, fmt.Errorf("%w: unknown weekday %q", payroll.ErrInvalidPolicy, name)
			}
			p.WorkWeek = append(p.WorkWeek, d)
		}
	}

	if len(f.Brackets) > 0 {
		p.Brackets = make([]Bracket, 0, len(f.Brackets))
		for i, rec := range f.Brackets {
			rate, err := decimal.NewFromString(rec.Rate)
			if err != nil {
				return Policy{}, fmt.Errorf("%w: bracket %d rate: %v", payroll.ErrInvalidPolicy, i+1, err)
			}
			br := Bracket{Rate: rate}
			if rec.Width != "" {
				w, err := decimal.NewFromString(rec.Width)
				if err != nil {
					return Policy{}, fmt.Errorf("%w: bracket %d width: %v", payroll.ErrInvalidPolicy, i+1, err)
				}
				br.Width = &w
			}
			p.Brackets = append(p.Brackets, br)
		}
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicy reads a policy file; an empty path yields DefaultPolicy.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read payroll policy: %w", err)
	}
	return ParsePolicyYAML(b)
}
