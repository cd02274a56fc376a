package services

import (
	"context"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/quarryworks/quarry_books_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, quarryID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries for a quarry, newest first.
	ListEntries(ctx context.Context, quarryID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error)

	// FindEntryBySource returns the entry derived from a source transaction,
	// or nil when none exists.
	FindEntryBySource(ctx context.Context, quarryID string, kind domain.SourceKind, sourceID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entries.
type JournalWriterSvc interface {
	// CreateManualEntry persists a new unposted manual entry.
	CreateManualEntry(ctx context.Context, quarryID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateManualEntry replaces an unposted manual entry's fields and lines.
	UpdateManualEntry(ctx context.Context, quarryID, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error)

	// DeleteManualEntry soft-deletes an unposted manual entry.
	DeleteManualEntry(ctx context.Context, quarryID, entryID, actorID string) error

	// PostEntry finalises an entry so it affects balances.
	PostEntry(ctx context.Context, quarryID, entryID, actorID string) error

	// UnpostEntry reverts an entry to draft. Rejected when the entry's date
	// falls in a closed period.
	UnpostEntry(ctx context.Context, quarryID, entryID, actorID string) error

	// CreateAutoEntry persists a derived entry, already posted. Used by the
	// auto-generation engine only.
	CreateAutoEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
