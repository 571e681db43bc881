package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll headers, details
// and the component catalog.
type PayrollRepository interface {
	// Components
	UpsertComponent(ctx context.Context, name string, category ComponentCategory) (Component, error)

	// Headers
	// UpsertHeader inserts the header or overwrites an unpaid one for the same
	// employee and period. ok is false when the existing header is already paid.
	UpsertHeader(ctx context.Context, header Header) (id int64, ok bool, err error)
	GetByID(ctx context.Context, id int64) (Header, error)
	List(ctx context.Context, filter PayrollFilter) ([]Header, error)
	MarkPaid(ctx context.Context, id int64, paidOn time.Time) error

	// Details
	ReplaceDetails(ctx context.Context, headerID int64, details []Detail) error
	GetDetails(ctx context.Context, headerID int64) ([]Detail, error)
}

// Transactor runs fn inside a single database transaction. Repositories
// called with the ctx passed to fn take part in that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
