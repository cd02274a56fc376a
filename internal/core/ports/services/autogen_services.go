package services

import (
	"context"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// AutoGenSvcFacade derives posted journal entries from operational
// transactions. Generation is idempotent per (source kind, source id): a
// second call for the same transaction returns the existing entry untouched.
// A nil entry with nil error means the transaction produced nothing (e.g. a
// collection that is not applicable).
type AutoGenSvcFacade interface {
	GenerateForSale(ctx context.Context, sale domain.Sale, actorID string) (*domain.JournalEntry, error)
	GenerateForExpense(ctx context.Context, expense domain.Expense, actorID string) (*domain.JournalEntry, error)
	GenerateForBanking(ctx context.Context, deposit domain.BankingDeposit, actorID string) (*domain.JournalEntry, error)
	GenerateForPrepayment(ctx context.Context, prepayment domain.Prepayment, actorID string) (*domain.JournalEntry, error)

	// GenerateForCollection derives the late-payment entry for a sale whose
	// payment arrived after the sale date.
	GenerateForCollection(ctx context.Context, sale domain.Sale, actorID string) (*domain.JournalEntry, error)

	// RegenerateAll re-derives entries for every source transaction in the
	// range, skipping those already generated. Individual transaction
	// failures are counted and skipped, never aborting the batch.
	RegenerateAll(ctx context.Context, quarryID string, from, to time.Time, actorID string) (*domain.RegenerationSummary, error)
}
