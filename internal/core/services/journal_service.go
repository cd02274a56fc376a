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
	"github.com/quarryworks/quarry_books_app/internal/dto"
	"github.com/quarryworks/quarry_books_app/internal/utils/accounting"
)

// journalService is the journal store: it owns the balanced-entry invariant,
// reference numbering and the posting lifecycle.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryWithTx
	accountRepo  portsrepo.AccountReader
	periodSvc    portssvc.PeriodCloseChecker
	manualPrefix string
	autoPrefix   string
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountReader,
	periodSvc portssvc.PeriodCloseChecker,
	manualPrefix, autoPrefix string,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		periodSvc:    periodSvc,
		manualPrefix: manualPrefix,
		autoPrefix:   autoPrefix,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, quarryID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, quarryID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves entries for a quarry, newest first. Lines are not loaded.
func (s *journalService) ListEntries(ctx context.Context, quarryID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx, quarryID, portsrepo.ListEntriesParams{
		FromDate:  params.FromDate,
		ToDate:    params.ToDate,
		EntryType: params.EntryType,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// FindEntryBySource returns the entry derived from a source transaction, or
// nil when none exists. The not-found case is a normal answer here, not an error.
func (s *journalService) FindEntryBySource(ctx context.Context, quarryID string, kind domain.SourceKind, sourceID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryBySource(ctx, quarryID, kind, sourceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up entry by source",
			slog.String("source_type", string(kind)), slog.String("source_id", sourceID))
		return nil, fmt.Errorf("failed to look up entry by source: %w", err)
	}
	return entry, nil
}

// buildLines validates the request lines against the chart and assigns IDs
// and 1-based line numbers.
func (s *journalService) buildLines(ctx context.Context, quarryID, entryID string, reqLines []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, rl := range reqLines {
		if rl.Debit.IsNegative() || rl.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if rl.Debit.IsZero() && rl.Credit.IsZero() {
			return nil, fmt.Errorf("%w: line %d has neither debit nor credit", apperrors.ErrValidation, i+1)
		}
		if _, err := s.accountRepo.FindAccountByID(ctx, quarryID, rl.AccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: line %d references unknown account %s", apperrors.ErrValidation, i+1, rl.AccountID)
			}
			return nil, fmt.Errorf("failed to validate line account: %w", err)
		}
		lines[i] = domain.JournalLine{
			LineID:     uuid.NewString(),
			EntryID:    entryID,
			AccountID:  rl.AccountID,
			Debit:      rl.Debit,
			Credit:     rl.Credit,
			Memo:       rl.Memo,
			LineNumber: i + 1,
		}
	}
	return lines, nil
}

// CreateManualEntry persists a new unposted manual entry after validating the
// balanced invariant and minting a reference number.
func (s *journalService) CreateManualEntry(ctx context.Context, quarryID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, quarryID, entryID, req.Lines)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit := accounting.LineTotals(lines)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: debits %s do not equal credits %s",
			apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}

	entryDate := dayOf(req.EntryDate)
	fiscalYear := entryDate.Year()
	seq, err := s.journalRepo.NextReferenceNumber(ctx, quarryID, s.manualPrefix, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate reference number", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to allocate reference number: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:      entryID,
		QuarryID:     quarryID,
		EntryDate:    entryDate,
		Reference:    formatReference(s.manualPrefix, fiscalYear, seq),
		Description:  req.Description,
		EntryType:    domain.Manual,
		FiscalYear:   fiscalYear,
		FiscalPeriod: int(entryDate.Month()),
		IsPosted:     false,
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	entry.Lines = lines
	s.LogInfo(ctx, "Manual journal entry created",
		slog.String("entry_id", entryID), slog.String("reference", entry.Reference))
	return &entry, nil
}

// UpdateManualEntry replaces an unposted manual entry's fields and lines wholesale.
func (s *journalService) UpdateManualEntry(ctx context.Context, quarryID, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, quarryID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.EntryType != domain.Manual {
		return nil, fmt.Errorf("%w: derived entries cannot be edited", apperrors.ErrForbidden)
	}
	if entry.IsPosted {
		return nil, fmt.Errorf("%w: entry %s is posted", apperrors.ErrForbidden, entry.Reference)
	}

	if req.EntryDate != nil {
		entryDate := dayOf(*req.EntryDate)
		entry.EntryDate = entryDate
		entry.FiscalYear = entryDate.Year()
		entry.FiscalPeriod = int(entryDate.Month())
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	lines, err := s.buildLines(ctx, quarryID, entryID, req.Lines)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit := accounting.LineTotals(lines)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: debits %s do not equal credits %s",
			apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = updaterUserID

	if err := s.journalRepo.ReplaceEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to replace journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to replace journal entry: %w", err)
	}

	entry.Lines = lines
	s.LogInfo(ctx, "Manual journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteManualEntry soft-deletes an unposted manual entry. Posted entries and
// derived entries are protected.
func (s *journalService) DeleteManualEntry(ctx context.Context, quarryID, entryID, actorID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, quarryID, entryID)
	if err != nil {
		return err
	}
	if entry.EntryType == domain.Auto {
		return fmt.Errorf("%w: derived entries cannot be deleted", apperrors.ErrForbidden)
	}
	if entry.IsPosted {
		return fmt.Errorf("%w: entry %s is posted", apperrors.ErrForbidden, entry.Reference)
	}

	if err := s.journalRepo.SoftDeleteEntry(ctx, entryID, actorID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.LogInfo(ctx, "Manual journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// PostEntry finalises an entry so it affects balances. Backdating into a
// closed period is allowed; only unposting is gated on period state.
func (s *journalService) PostEntry(ctx context.Context, quarryID, entryID, actorID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, quarryID, entryID)
	if err != nil {
		return err
	}
	if entry.IsPosted {
		return fmt.Errorf("%w: entry %s is already posted", apperrors.ErrConflict, entry.Reference)
	}

	if err := s.journalRepo.SetPosted(ctx, entryID, true, actorID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to post journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("posted_by", actorID))
	return nil
}

// UnpostEntry reverts an entry to draft. Rejected when the entry's date falls
// in a closed period.
func (s *journalService) UnpostEntry(ctx context.Context, quarryID, entryID, actorID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, quarryID, entryID)
	if err != nil {
		return err
	}
	if !entry.IsPosted {
		return fmt.Errorf("%w: entry %s is not posted", apperrors.ErrConflict, entry.Reference)
	}

	closed, err := s.periodSvc.IsDateInClosedPeriod(ctx, quarryID, entry.EntryDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period state", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to check period state: %w", err)
	}
	if closed {
		return fmt.Errorf("%w: entry %s is dated inside a closed period", apperrors.ErrPeriodClosed, entry.Reference)
	}

	if err := s.journalRepo.SetPosted(ctx, entryID, false, actorID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to unpost journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to unpost journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry unposted", slog.String("entry_id", entryID))
	return nil
}

// CreateAutoEntry persists a derived entry, minting its reference and marking
// it posted. The caller (the auto-generation engine) supplies balanced lines;
// an unbalanced set here is a programming error, rejected before persistence.
func (s *journalService) CreateAutoEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	if entry.SourceType == nil || entry.SourceID == nil {
		return nil, fmt.Errorf("%w: derived entry missing source key", apperrors.ErrValidation)
	}

	totalDebit, totalCredit := accounting.LineTotals(lines)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: derived entry for %s %s is unbalanced (%s / %s)",
			apperrors.ErrUnbalanced, *entry.SourceType, *entry.SourceID,
			totalDebit.String(), totalCredit.String())
	}

	fiscalYear := entry.EntryDate.Year()
	seq, err := s.journalRepo.NextReferenceNumber(ctx, entry.QuarryID, s.autoPrefix, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate reference number", slog.String("quarry_id", entry.QuarryID))
		return nil, fmt.Errorf("failed to allocate reference number: %w", err)
	}

	now := time.Now().UTC()
	entry.EntryType = domain.Auto
	entry.Reference = formatReference(s.autoPrefix, fiscalYear, seq)
	entry.FiscalYear = fiscalYear
	entry.FiscalPeriod = int(entry.EntryDate.Month())
	entry.IsPosted = true
	entry.PostedBy = entry.CreatedBy
	entry.PostedAt = &now
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.IsActive = true

	for i := range lines {
		lines[i].EntryID = entry.EntryID
		lines[i].LineNumber = i + 1
		if lines[i].LineID == "" {
			lines[i].LineID = uuid.NewString()
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save derived entry",
			slog.String("source_type", string(*entry.SourceType)), slog.String("source_id", *entry.SourceID))
		return nil, fmt.Errorf("failed to save derived entry: %w", err)
	}

	entry.Lines = lines
	return &entry, nil
}

// formatReference renders {PREFIX}-{fiscalYear}-{5-digit-seq}.
func formatReference(prefix string, fiscalYear int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, fiscalYear, seq)
}

// dayOf truncates a timestamp to midnight UTC. Entry dates are day-precision;
// sources and API clients may send full timestamps.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
