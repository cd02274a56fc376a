package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	"github.com/quarryworks/quarry_books_app/internal/models"
	"github.com/quarryworks/quarry_books_app/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, quarry_id, entry_date, reference, description, entry_type, source_type, source_id, fiscal_year, fiscal_period, is_posted, posted_by, posted_at, total_debit, total_credit, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.QuarryID,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.EntryType,
		&m.SourceType,
		&m.SourceID,
		&m.FiscalYear,
		&m.FiscalPeriod,
		&m.IsPosted,
		&m.PostedBy,
		&m.PostedAt,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntryByID retrieves a single active entry without its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, quarryID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE quarry_id = $1 AND entry_id = $2 AND is_active = TRUE;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, quarryID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, memo, line_number
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Memo, &m.LineNumber); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	return lines, nil
}

// FindEntryBySource returns the active entry derived from the given source
// transaction. The (quarry, source_type, source_id) pair is unique-indexed.
func (r *PgxJournalRepository) FindEntryBySource(ctx context.Context, quarryID string, kind domain.SourceKind, sourceID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE quarry_id = $1 AND source_type = $2 AND source_id = $3 AND is_active = TRUE;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, quarryID, string(kind), sourceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry for source %s/%s: %w", kind, sourceID, err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// ListEntries retrieves active entries for a quarry, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, quarryID string, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + entryColumns + ` FROM journal_entries WHERE quarry_id = $1 AND is_active = TRUE`)
	args := []any{quarryID}

	if params.FromDate != nil {
		args = append(args, *params.FromDate)
		fmt.Fprintf(&sb, " AND entry_date >= $%d", len(args))
	}
	if params.ToDate != nil {
		args = append(args, *params.ToDate)
		fmt.Fprintf(&sb, " AND entry_date <= $%d", len(args))
	}
	if params.EntryType != nil {
		args = append(args, string(*params.EntryType))
		fmt.Fprintf(&sb, " AND entry_type = $%d", len(args))
	}

	sb.WriteString(" ORDER BY entry_date DESC, reference DESC")

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	if params.Offset > 0 {
		args = append(args, params.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for quarry %s: %w", quarryID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}
	return entries, nil
}

// ListSourceKeys returns the source keys of all active auto entries for a quarry.
func (r *PgxJournalRepository) ListSourceKeys(ctx context.Context, quarryID string) ([]domain.SourceKey, error) {
	query := `
		SELECT source_type, source_id
		FROM journal_entries
		WHERE quarry_id = $1 AND source_type IS NOT NULL AND is_active = TRUE;
	`
	rows, err := r.Pool.Query(ctx, query, quarryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query source keys for quarry %s: %w", quarryID, err)
	}
	defer rows.Close()

	keys := []domain.SourceKey{}
	for rows.Next() {
		var kind, id string
		if err := rows.Scan(&kind, &id); err != nil {
			return nil, fmt.Errorf("failed to scan source key: %w", err)
		}
		keys = append(keys, domain.SourceKey{Kind: domain.SourceKind(kind), ID: id})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source keys: %w", err)
	}
	return keys, nil
}

const insertEntryQuery = `
	INSERT INTO journal_entries (entry_id, quarry_id, entry_date, reference, description, entry_type, source_type, source_id, fiscal_year, fiscal_period, is_posted, posted_by, posted_at, total_debit, total_credit, is_active, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, memo, line_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func entryInsertArgs(m models.JournalEntry) []any {
	return []any{
		m.EntryID,
		m.QuarryID,
		m.EntryDate,
		m.Reference,
		m.Description,
		m.EntryType,
		m.SourceType,
		m.SourceID,
		m.FiscalYear,
		m.FiscalPeriod,
		m.IsPosted,
		m.PostedBy,
		m.PostedAt,
		m.TotalDebit,
		m.TotalCredit,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func lineInsertArgs(m models.JournalLine) []any {
	return []any{m.LineID, m.EntryID, m.AccountID, m.Debit, m.Credit, m.Memo, m.LineNumber}
}

// queueEntryInsert queues one entry with its lines onto a batch.
func queueEntryInsert(batch *pgx.Batch, entry domain.JournalEntry, lines []domain.JournalLine) int {
	batch.Queue(insertEntryQuery, entryInsertArgs(mapping.ToModelJournalEntry(entry))...)
	for _, line := range lines {
		batch.Queue(insertLineQuery, lineInsertArgs(mapping.ToModelJournalLine(line))...)
	}
	return 1 + len(lines)
}

func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, queued int) error {
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: entry already exists for this source", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to execute journal batch statement: %w", err)
		}
	}
	return br.Close()
}

// SaveEntry persists an entry and its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for entry save: %w", err)
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queued := queueEntryInsert(batch, entry, lines)
	if err := execBatch(ctx, tx, batch, queued); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveEntries persists a batch of entries with their lines in one database
// transaction. Used by batch regeneration.
func (r *PgxJournalRepository) SaveEntries(ctx context.Context, entries []domain.JournalEntry, linesByEntry map[string][]domain.JournalLine) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for entry batch: %w", err)
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queued := 0
	for _, entry := range entries {
		queued += queueEntryInsert(batch, entry, linesByEntry[entry.EntryID])
	}
	if err := execBatch(ctx, tx, batch, queued); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceEntry updates an entry's header fields and replaces its lines wholesale.
func (r *PgxJournalRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for entry replace: %w", err)
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $1, description = $2, fiscal_year = $3, fiscal_period = $4, total_debit = $5, total_credit = $6, last_updated_at = $7, last_updated_by = $8
		WHERE quarry_id = $9 AND entry_id = $10 AND is_active = TRUE;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.EntryDate, m.Description, m.FiscalYear, m.FiscalPeriod, m.TotalDebit, m.TotalCredit,
		m.LastUpdatedAt, m.LastUpdatedBy, m.QuarryID, m.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines for entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(insertLineQuery, lineInsertArgs(mapping.ToModelJournalLine(line))...)
	}
	if err := execBatch(ctx, tx, batch, len(lines)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SetPosted toggles an entry's posted flag.
func (r *PgxJournalRepository) SetPosted(ctx context.Context, entryID string, posted bool, actorID string, at time.Time) error {
	var query string
	var args []any
	if posted {
		query = `
			UPDATE journal_entries
			SET is_posted = TRUE, posted_by = $1, posted_at = $2, last_updated_at = $2, last_updated_by = $1
			WHERE entry_id = $3 AND is_active = TRUE;
		`
		args = []any{actorID, at, entryID}
	} else {
		query = `
			UPDATE journal_entries
			SET is_posted = FALSE, posted_by = '', posted_at = NULL, last_updated_at = $1, last_updated_by = $2
			WHERE entry_id = $3 AND is_active = TRUE;
		`
		args = []any{at, actorID, entryID}
	}

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set posted state for entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteEntry marks an entry inactive.
func (r *PgxJournalRepository) SoftDeleteEntry(ctx context.Context, entryID, actorID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE entry_id = $3 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, at, actorID, entryID)
	if err != nil {
		return fmt.Errorf("failed to soft-delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NextReferenceNumber mints the next number in the (quarry, prefix, fiscal
// year) sequence via an atomic upsert. The counter row is created on first
// use; deriving the number from a row count would race under concurrent
// writers.
func (r *PgxJournalRepository) NextReferenceNumber(ctx context.Context, quarryID, prefix string, fiscalYear int) (int64, error) {
	query := `
		INSERT INTO reference_sequences (quarry_id, prefix, fiscal_year, value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (quarry_id, prefix, fiscal_year)
		DO UPDATE SET value = reference_sequences.value + 1
		RETURNING value;
	`
	var value int64
	if err := r.Pool.QueryRow(ctx, query, quarryID, prefix, fiscalYear).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to allocate reference number for %s/%s/%d: %w", quarryID, prefix, fiscalYear, err)
	}
	return value, nil
}
