package repositories

import (
	"context"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
// All lookups return active accounts only.
type AccountReader interface {
	// ListAccounts retrieves the active chart of accounts for a quarry,
	// ordered by display order then code.
	ListAccounts(ctx context.Context, quarryID string) ([]domain.LedgerAccount, error)

	// FindAccountByID retrieves a single active account.
	FindAccountByID(ctx context.Context, quarryID, accountID string) (*domain.LedgerAccount, error)

	// FindAccountByCode retrieves a single active account by its code.
	FindAccountByCode(ctx context.Context, quarryID, code string) (*domain.LedgerAccount, error)

	// HasJournalLines reports whether any journal line has ever referenced the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for the chart of accounts.
type AccountWriter interface {
	// SaveAccount persists a new ledger account.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error

	// SaveAccounts persists a batch of accounts atomically (chart seeding).
	SaveAccounts(ctx context.Context, accounts []domain.LedgerAccount) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.LedgerAccount) error

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, quarryID, accountID, updatedBy string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
