package services

import (
	"context"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// PeriodCloseChecker is the narrow interface the journal store consults when
// unposting. Closed-period enforcement happens lazily here, not at close time.
type PeriodCloseChecker interface {
	// IsDateInClosedPeriod reports whether the date falls inside a closed period.
	IsDateInClosedPeriod(ctx context.Context, quarryID string, date time.Time) (bool, error)
}

// PeriodSvcFacade defines fiscal period management operations.
type PeriodSvcFacade interface {
	PeriodCloseChecker

	// ListPeriods retrieves periods for a quarry, optionally for one fiscal year.
	ListPeriods(ctx context.Context, quarryID string, fiscalYear *int) ([]domain.AccountingPeriod, error)

	// GetPeriodByID retrieves a single period.
	GetPeriodByID(ctx context.Context, quarryID, periodID string) (*domain.AccountingPeriod, error)

	// ClosePeriod locks a period against unposting.
	ClosePeriod(ctx context.Context, quarryID, periodID, actorID, notes string) (*domain.AccountingPeriod, error)

	// ReopenPeriod unlocks a closed period.
	ReopenPeriod(ctx context.Context, quarryID, periodID, actorID string) (*domain.AccountingPeriod, error)

	// ProvisionFiscalYear seeds twelve monthly periods for a fiscal year.
	ProvisionFiscalYear(ctx context.Context, quarryID string, fiscalYear int, creatorUserID string) ([]domain.AccountingPeriod, error)
}
