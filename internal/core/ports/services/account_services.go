package services

import (
	"context"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/quarryworks/quarry_books_app/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts.
type AccountReaderSvc interface {
	// GetChartOfAccounts retrieves the active chart for a quarry.
	GetChartOfAccounts(ctx context.Context, quarryID string) ([]domain.LedgerAccount, error)

	// GetAccountByID retrieves a single active account.
	GetAccountByID(ctx context.Context, quarryID, accountID string) (*domain.LedgerAccount, error)

	// GetAccountByCode retrieves a single active account by code.
	GetAccountByCode(ctx context.Context, quarryID, code string) (*domain.LedgerAccount, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount adds a non-system account to the chart.
	CreateAccount(ctx context.Context, quarryID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.LedgerAccount, error)

	// UpdateAccount changes name, description or display order.
	UpdateAccount(ctx context.Context, quarryID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.LedgerAccount, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, quarryID, accountID, updaterUserID string) error

	// SeedChartOfAccounts installs the standard chart for a new quarry.
	SeedChartOfAccounts(ctx context.Context, quarryID, creatorUserID string) ([]domain.LedgerAccount, error)
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
