package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService is the balance calculator. Only posted, active entries count.
type ledgerService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{accountRepo: accountRepo, reportingRepo: reportingRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AccountBalance computes one account's balance from posted lines dated on or
// before asOf, signed by the account's normal balance.
func (s *ledgerService) AccountBalance(ctx context.Context, quarryID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, quarryID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	debit, credit, err := s.reportingRepo.GetAccountBalanceSums(ctx, quarryID, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to sum account lines: %w", err)
	}

	return accounting.SignedBalance(debit, credit, account.IsDebitNormal), nil
}

// AllBalances computes balances for every active account in the chart with a
// single grouped aggregation. Accounts without activity report zero.
func (s *ledgerService) AllBalances(ctx context.Context, quarryID string, asOf time.Time) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, quarryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list chart of accounts", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to list chart of accounts: %w", err)
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, quarryID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account activity", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	activityByID := make(map[string]domain.AccountActivity, len(activity))
	for _, a := range activity {
		activityByID[a.AccountID] = a
	}

	balances := make([]domain.AccountBalance, len(accounts))
	for i, account := range accounts {
		balance := decimal.Zero
		if a, ok := activityByID[account.AccountID]; ok {
			balance = accounting.SignedBalance(a.Debit, a.Credit, account.IsDebitNormal)
		}
		balances[i] = domain.AccountBalance{
			AccountID: account.AccountID,
			Code:      account.Code,
			Name:      account.Name,
			Category:  account.Category,
			Balance:   balance,
		}
	}
	return balances, nil
}
