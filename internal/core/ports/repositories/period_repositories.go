package repositories

import (
	"context"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// PeriodRepository defines operations for accounting period records.
type PeriodRepository interface {
	// ListPeriods retrieves all periods for a quarry ordered by start date.
	ListPeriods(ctx context.Context, quarryID string, fiscalYear *int) ([]domain.AccountingPeriod, error)

	// FindPeriodByID retrieves a single period.
	FindPeriodByID(ctx context.Context, quarryID, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodForDate returns the period whose range contains the date, or
	// ErrNotFound when none does.
	FindPeriodForDate(ctx context.Context, quarryID string, date time.Time) (*domain.AccountingPeriod, error)

	// SavePeriods persists a batch of periods (fiscal year provisioning).
	SavePeriods(ctx context.Context, periods []domain.AccountingPeriod) error

	// UpdatePeriod persists close/reopen state changes.
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error
}
