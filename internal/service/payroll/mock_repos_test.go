package payroll

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ik-portal/hr-backend/internal/domain/attendance"
	"github.com/ik-portal/hr-backend/internal/domain/employee"
	"github.com/ik-portal/hr-backend/internal/domain/leave"
	"github.com/ik-portal/hr-backend/internal/domain/payroll"
)

// ========== PAYROLL STORE ==========

type periodKey struct {
	employeeID int64
	year       int
	month      int
}

type storeState struct {
	headers    map[int64]payroll.Header
	byPeriod   map[periodKey]int64
	details    map[int64][]payroll.Detail
	components map[string]payroll.Component
	nextID     int64
}

func (s storeState) clone() storeState {
	c := storeState{
		headers:    make(map[int64]payroll.Header, len(s.headers)),
		byPeriod:   make(map[periodKey]int64, len(s.byPeriod)),
		details:    make(map[int64][]payroll.Detail, len(s.details)),
		components: make(map[string]payroll.Component, len(s.components)),
		nextID:     s.nextID,
	}
	for k, v := range s.headers {
		c.headers[k] = v
	}
	for k, v := range s.byPeriod {
		c.byPeriod[k] = v
	}
	for k, v := range s.details {
		c.details[k] = append([]payroll.Detail(nil), v...)
	}
	for k, v := range s.components {
		c.components[k] = v
	}
	return c
}

// mockPayrollStore is an in-memory PayrollRepository and Transactor. A failed
// transaction restores the state it started from.
type mockPayrollStore struct {
	mu    sync.Mutex
	state storeState

	replaceCalls    int
	failReplaceCall int // 1-based; 0 never fails
}

func newMockPayrollStore() *mockPayrollStore {
	return &mockPayrollStore{state: storeState{
		headers:    map[int64]payroll.Header{},
		byPeriod:   map[periodKey]int64{},
		details:    map[int64][]payroll.Detail{},
		components: map[string]payroll.Component{},
	}}
}

func (m *mockPayrollStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	snapshot := m.state.clone()
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.state = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *mockPayrollStore) UpsertComponent(ctx context.Context, name string, category payroll.ComponentCategory) (payroll.Component, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.state.components[name]; ok {
		return c, nil
	}
	m.state.nextID++
	c := payroll.Component{ID: m.state.nextID, Name: name, Category: category}
	m.state.components[name] = c
	return c, nil
}

func (m *mockPayrollStore) UpsertHeader(ctx context.Context, header payroll.Header) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := periodKey{header.EmployeeID, header.PeriodYear, header.PeriodMonth}
	if id, ok := m.state.byPeriod[key]; ok {
		existing := m.state.headers[id]
		if existing.Paid {
			return 0, false, nil
		}
		header.ID = id
		m.state.headers[id] = header
		return id, true, nil
	}

	m.state.nextID++
	header.ID = m.state.nextID
	m.state.headers[header.ID] = header
	m.state.byPeriod[key] = header.ID
	return header.ID, true, nil
}

func (m *mockPayrollStore) GetByID(ctx context.Context, id int64) (payroll.Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.state.headers[id]
	if !ok {
		return payroll.Header{}, payroll.ErrPayrollNotFound
	}
	return h, nil
}

func (m *mockPayrollStore) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var headers []payroll.Header
	for _, h := range m.state.headers {
		if filter.Yil != nil && h.PeriodYear != *filter.Yil {
			continue
		}
		if filter.Ay != nil && h.PeriodMonth != *filter.Ay {
			continue
		}
		if filter.PersonelID != nil && h.EmployeeID != *filter.PersonelID {
			continue
		}
		headers = append(headers, h)
	}
	sort.Slice(headers, func(i, j int) bool { return headers[i].ID < headers[j].ID })
	return headers, nil
}

func (m *mockPayrollStore) MarkPaid(ctx context.Context, id int64, paidOn time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.state.headers[id]
	if !ok {
		return payroll.ErrPayrollNotFound
	}
	if h.Paid {
		return payroll.ErrPayrollAlreadyPaid
	}
	h.Paid = true
	h.PaymentDate = &paidOn
	m.state.headers[id] = h
	return nil
}

func (m *mockPayrollStore) ReplaceDetails(ctx context.Context, headerID int64, details []payroll.Detail) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replaceCalls++
	if m.failReplaceCall > 0 && m.replaceCalls == m.failReplaceCall {
		return errors.New("connection reset by peer")
	}

	rows := make([]payroll.Detail, 0, len(details))
	for _, d := range details {
		m.state.nextID++
		d.ID = m.state.nextID
		d.HeaderID = headerID
		rows = append(rows, d)
	}
	m.state.details[headerID] = rows
	return nil
}

func (m *mockPayrollStore) GetDetails(ctx context.Context, headerID int64) ([]payroll.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[int64]payroll.Component, len(m.state.components))
	for _, c := range m.state.components {
		byID[c.ID] = c
	}

	var details []payroll.Detail
	for _, d := range m.state.details[headerID] {
		c := byID[d.ComponentID]
		d.ComponentName = c.Name
		d.ComponentCategory = c.Category
		details = append(details, d)
	}
	return details, nil
}

// detailAmounts maps component name to amount for one header.
func (m *mockPayrollStore) detailAmounts(headerID int64) map[string]string {
	details, _ := m.GetDetails(context.Background(), headerID)
	out := make(map[string]string, len(details))
	for _, d := range details {
		out[d.ComponentName] = d.Amount.StringFixed(2)
	}
	return out
}

func (m *mockPayrollStore) headerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.headers)
}

// ========== COLLABORATORS ==========

type mockEmployeeRepo struct {
	employees []employee.Employee
}

func (m *mockEmployeeRepo) ListActiveForPayroll(ctx context.Context, periodEnd time.Time, employeeID *int64) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if !e.Active || e.HireDate.After(periodEnd) {
			continue
		}
		if employeeID != nil && e.ID != *employeeID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type mockLeaveRepo struct {
	records []leave.LeaveRecord
}

func (m *mockLeaveRepo) ListApprovedInPeriod(ctx context.Context, employeeID int64, start, end time.Time) ([]leave.LeaveRecord, error) {
	var out []leave.LeaveRecord
	for _, l := range m.records {
		if l.EmployeeID != employeeID || l.Status != leave.LeaveStatusApproved {
			continue
		}
		if l.StartDate.After(end) || l.EndDate.Before(start) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type mockAttendanceRepo struct {
	records []attendance.Attendance
}

func (m *mockAttendanceRepo) ListByEmployeePeriod(ctx context.Context, employeeID int64, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.records {
		if a.EmployeeID != employeeID || a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
