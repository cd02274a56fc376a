package repositories

import (
	"context"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// ListEntriesParams narrows a journal entry listing.
type ListEntriesParams struct {
	FromDate  *time.Time
	ToDate    *time.Time
	EntryType *domain.EntryType
	Limit     int
	Offset    int
}

// JournalReader defines read operations for journal entries and lines.
type JournalReader interface {
	// FindEntryByID retrieves a single active entry without its lines.
	FindEntryByID(ctx context.Context, quarryID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindEntryBySource returns the active entry derived from the given source
	// transaction, or ErrNotFound when no entry exists for that key.
	FindEntryBySource(ctx context.Context, quarryID string, kind domain.SourceKind, sourceID string) (*domain.JournalEntry, error)

	// ListEntries retrieves active entries for a quarry, newest first.
	ListEntries(ctx context.Context, quarryID string, params ListEntriesParams) ([]domain.JournalEntry, error)

	// ListSourceKeys returns the source keys of all active auto entries for a
	// quarry. Used to seed the idempotency set before a batch regeneration.
	ListSourceKeys(ctx context.Context, quarryID string) ([]domain.SourceKey, error)
}

// JournalWriter defines write operations for journal entries and lines.
type JournalWriter interface {
	// SaveEntry persists an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SaveEntries persists a batch of entries with their lines in one
	// database transaction. Used by batch regeneration.
	SaveEntries(ctx context.Context, entries []domain.JournalEntry, linesByEntry map[string][]domain.JournalLine) error

	// ReplaceEntry updates an entry's header fields and replaces its lines wholesale.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SetPosted toggles an entry's posted flag.
	SetPosted(ctx context.Context, entryID string, posted bool, actorID string, at time.Time) error

	// SoftDeleteEntry marks an entry inactive.
	SoftDeleteEntry(ctx context.Context, entryID, actorID string, at time.Time) error
}

// SequenceAllocator mints monotonic reference numbers. Implementations must
// increment atomically; deriving the next number from a row count races under
// concurrent writers.
type SequenceAllocator interface {
	// NextReferenceNumber returns the next number in the (quarry, prefix,
	// fiscal year) sequence.
	NextReferenceNumber(ctx context.Context, quarryID, prefix string, fiscalYear int) (int64, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	SequenceAllocator
}

// JournalRepositoryWithTx extends the facade with transaction management.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
