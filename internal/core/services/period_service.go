package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
)

// periodService manages fiscal period open/close state. Closing a period does
// not touch entries; enforcement happens lazily in the journal store at
// unpost time.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepository
}

// NewPeriodService creates a new period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepository) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// ListPeriods retrieves periods for a quarry, optionally for one fiscal year.
func (s *periodService) ListPeriods(ctx context.Context, quarryID string, fiscalYear *int) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, quarryID, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// GetPeriodByID retrieves a single period.
func (s *periodService) GetPeriodByID(ctx context.Context, quarryID, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, quarryID, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period", slog.String("period_id", periodID))
		}
		return nil, err
	}
	return period, nil
}

// IsDateInClosedPeriod reports whether the date falls inside a closed period.
// A date with no period at all is treated as open. The date is truncated to
// midnight UTC first; period boundaries are stored at day precision, so an
// intraday timestamp on a period's last day must still resolve to that period.
func (s *periodService) IsDateInClosedPeriod(ctx context.Context, quarryID string, date time.Time) (bool, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	period, err := s.periodRepo.FindPeriodForDate(ctx, quarryID, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to find period for date", slog.Time("date", date))
		return false, fmt.Errorf("failed to find period for date: %w", err)
	}
	return period.IsClosed, nil
}

// ClosePeriod locks a period against unposting.
func (s *periodService) ClosePeriod(ctx context.Context, quarryID, periodID, actorID, notes string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, quarryID, periodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: period %d/%d is already closed", apperrors.ErrConflict, period.FiscalYear, period.PeriodNumber)
	}

	now := time.Now().UTC()
	period.IsClosed = true
	period.ClosedBy = actorID
	period.ClosedAt = &now
	period.ClosingNotes = notes
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actorID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		s.LogError(ctx, err, "Failed to close period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close period: %w", err)
	}

	s.LogInfo(ctx, "Period closed",
		slog.String("period_id", periodID),
		slog.Int("fiscal_year", period.FiscalYear),
		slog.Int("period_number", period.PeriodNumber))
	return period, nil
}

// ReopenPeriod unlocks a closed period.
func (s *periodService) ReopenPeriod(ctx context.Context, quarryID, periodID, actorID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, quarryID, periodID)
	if err != nil {
		return nil, err
	}
	if !period.IsClosed {
		return nil, fmt.Errorf("%w: period %d/%d is not closed", apperrors.ErrConflict, period.FiscalYear, period.PeriodNumber)
	}

	period.IsClosed = false
	period.ClosedBy = ""
	period.ClosedAt = nil
	period.ClosingNotes = ""
	period.LastUpdatedAt = time.Now().UTC()
	period.LastUpdatedBy = actorID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		s.LogError(ctx, err, "Failed to reopen period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to reopen period: %w", err)
	}

	s.LogInfo(ctx, "Period reopened",
		slog.String("period_id", periodID),
		slog.Int("fiscal_year", period.FiscalYear),
		slog.Int("period_number", period.PeriodNumber))
	return period, nil
}

// ProvisionFiscalYear seeds twelve monthly periods for a fiscal year. Called
// by tenant provisioning alongside chart seeding.
func (s *periodService) ProvisionFiscalYear(ctx context.Context, quarryID string, fiscalYear int, creatorUserID string) ([]domain.AccountingPeriod, error) {
	existing, err := s.periodRepo.ListPeriods(ctx, quarryID, &fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to check existing periods", slog.Int("fiscal_year", fiscalYear))
		return nil, fmt.Errorf("failed to check existing periods: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: fiscal year %d already provisioned", apperrors.ErrDuplicate, fiscalYear)
	}

	now := time.Now().UTC()
	periods := make([]domain.AccountingPeriod, 12)
	for month := 1; month <= 12; month++ {
		start := time.Date(fiscalYear, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
		periods[month-1] = domain.AccountingPeriod{
			PeriodID:     uuid.NewString(),
			QuarryID:     quarryID,
			FiscalYear:   fiscalYear,
			PeriodNumber: month,
			StartDate:    start,
			EndDate:      end,
			IsClosed:     false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := s.periodRepo.SavePeriods(ctx, periods); err != nil {
		s.LogError(ctx, err, "Failed to provision fiscal year", slog.Int("fiscal_year", fiscalYear))
		return nil, fmt.Errorf("failed to provision fiscal year: %w", err)
	}

	s.LogInfo(ctx, "Fiscal year provisioned",
		slog.String("quarry_id", quarryID), slog.Int("fiscal_year", fiscalYear))
	return periods, nil
}
