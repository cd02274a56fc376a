package repositories

import (
	"context"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the grouped aggregations the report generator
// and balance calculator are built on. All queries consider posted, active
// entries only.
type ReportingRepository interface {
	// GetAccountActivity returns per-account debit/credit sums for entries
	// dated within the range, for every active account with activity, in one
	// grouped query.
	GetAccountActivity(ctx context.Context, quarryID string, from, to time.Time) ([]domain.AccountActivity, error)

	// GetAccountBalanceSums returns the debit and credit sums for one account
	// across entries dated on or before asOf.
	GetAccountBalanceSums(ctx context.Context, quarryID, accountID string, asOf time.Time) (debit, credit decimal.Decimal, err error)

	// GetLedgerLines returns the posted lines affecting one account within the
	// range, in chronological order.
	GetLedgerLines(ctx context.Context, quarryID, accountID string, from, to time.Time) ([]domain.GeneralLedgerLine, error)
}
