package services

import (
	"context"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the balance calculator.
type LedgerSvcFacade interface {
	// AccountBalance computes one account's balance from posted lines dated
	// on or before asOf, signed by the account's normal balance.
	AccountBalance(ctx context.Context, quarryID, accountID string, asOf time.Time) (decimal.Decimal, error)

	// AllBalances computes balances for every active account in the chart
	// with a single grouped aggregation.
	AllBalances(ctx context.Context, quarryID string, asOf time.Time) ([]domain.AccountBalance, error)
}

// ReportingSvcFacade builds the seven financial statements.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, quarryID string, asOf time.Time) (*domain.TrialBalanceReport, error)
	ProfitAndLoss(ctx context.Context, quarryID string, from, to time.Time, comparative bool) (*domain.ProfitAndLossReport, error)
	BalanceSheet(ctx context.Context, quarryID string, asOf time.Time, comparative bool) (*domain.BalanceSheetReport, error)
	CashFlow(ctx context.Context, quarryID string, from, to time.Time) (*domain.CashFlowReport, error)
	ARAging(ctx context.Context, quarryID string, asOf time.Time) (*domain.ARAgingReport, error)
	APSummary(ctx context.Context, quarryID string, asOf time.Time) (*domain.APSummaryReport, error)
	GeneralLedger(ctx context.Context, quarryID, accountID string, from, to time.Time) (*domain.GeneralLedgerReport, error)
}
