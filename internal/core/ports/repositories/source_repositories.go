package repositories

import (
	"context"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// SourceReader exposes the operational transaction records owned by the
// sales/expenses/banking/prepayment modules. The accounting core only reads
// them; it never creates or mutates source transactions.
type SourceReader interface {
	// ListSales retrieves sales dated within the range, inclusive at day
	// precision.
	ListSales(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Sale, error)

	// ListUnpaidSales retrieves sales still unpaid as of the date.
	ListUnpaidSales(ctx context.Context, quarryID string, asOf time.Time) ([]domain.Sale, error)

	// ListSalesPaidBetween retrieves paid sales whose payment date falls in the range.
	ListSalesPaidBetween(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Sale, error)

	// FindSaleByID retrieves one sale.
	FindSaleByID(ctx context.Context, quarryID, saleID string) (*domain.Sale, error)

	// ListExpenses retrieves expenses dated within the range, inclusive.
	ListExpenses(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Expense, error)

	// ListBankings retrieves bank deposits dated within the range, inclusive.
	ListBankings(ctx context.Context, quarryID string, from, to time.Time) ([]domain.BankingDeposit, error)

	// ListPrepayments retrieves prepayments dated within the range, inclusive.
	ListPrepayments(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Prepayment, error)
}

// QuarrySettingsRepository reads the per-quarry fee configuration seeded at
// provisioning.
type QuarrySettingsRepository interface {
	// GetSettings retrieves a quarry's fee configuration.
	GetSettings(ctx context.Context, quarryID string) (*domain.QuarrySettings, error)

	// SaveSettings persists a quarry's fee configuration (provisioning surface).
	SaveSettings(ctx context.Context, settings domain.QuarrySettings) error
}

// AccountMappingRepository resolves operational names to ledger account codes.
// The mapping tables are static configuration seeded per quarry.
type AccountMappingRepository interface {
	// RevenueCodeForProduct returns the revenue account code mapped to a
	// product name, or ErrNotFound.
	RevenueCodeForProduct(ctx context.Context, quarryID, productName string) (string, error)

	// ExpenseCodeForCategory returns the expense account code mapped to an
	// expense category, or ErrNotFound.
	ExpenseCodeForCategory(ctx context.Context, quarryID, category string) (string, error)

	// SaveMappings seeds or replaces a quarry's mapping rows (provisioning surface).
	SaveMappings(ctx context.Context, quarryID string, productToRevenue, categoryToExpense map[string]string) error
}
