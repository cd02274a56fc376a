package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	"github.com/quarryworks/quarry_books_app/internal/models"
	"github.com/quarryworks/quarry_books_app/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, quarry_id, fiscal_year, period_number, start_date, end_date, is_closed, closed_by, closed_at, closing_notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.QuarryID,
		&m.FiscalYear,
		&m.PeriodNumber,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.ClosedBy,
		&m.ClosedAt,
		&m.ClosingNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ListPeriods retrieves all periods for a quarry ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, quarryID string, fiscalYear *int) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE quarry_id = $1`
	args := []any{quarryID}
	if fiscalYear != nil {
		args = append(args, *fiscalYear)
		query += ` AND fiscal_year = $2`
	}
	query += ` ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for quarry %s: %w", quarryID, err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainAccountingPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return periods, nil
}

// FindPeriodByID retrieves a single period.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, quarryID, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE quarry_id = $1 AND period_id = $2;`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, quarryID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	d := mapping.ToDomainAccountingPeriod(m)
	return &d, nil
}

// FindPeriodForDate returns the period whose range contains the date. When
// ranges overlap the earliest-starting match wins. Period boundaries are
// stored at midnight, so the date compares at day precision to keep intraday
// timestamps on the last day of a period inside it.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, quarryID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE quarry_id = $1 AND start_date <= $2 AND end_date >= $2::timestamptz::date
		ORDER BY start_date
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, quarryID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period for date %s: %w", date.Format(time.DateOnly), err)
	}
	d := mapping.ToDomainAccountingPeriod(m)
	return &d, nil
}

// SavePeriods persists a batch of periods in one transaction (fiscal year provisioning).
func (r *PgxPeriodRepository) SavePeriods(ctx context.Context, periods []domain.AccountingPeriod) error {
	if len(periods) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for period provisioning: %w", err)
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	batch := &pgx.Batch{}
	for _, period := range periods {
		m := mapping.ToModelAccountingPeriod(period)
		batch.Queue(insertQuery,
			m.PeriodID, m.QuarryID, m.FiscalYear, m.PeriodNumber, m.StartDate, m.EndDate,
			m.IsClosed, m.ClosedBy, m.ClosedAt, m.ClosingNotes,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range periods {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert period during provisioning: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close provisioning batch: %w", err)
	}
	return r.Commit(ctx, tx)
}

// UpdatePeriod persists close/reopen state changes.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelAccountingPeriod(period)
	query := `
		UPDATE accounting_periods
		SET is_closed = $1, closed_by = $2, closed_at = $3, closing_notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE quarry_id = $7 AND period_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.IsClosed, m.ClosedBy, m.ClosedAt, m.ClosingNotes, m.LastUpdatedAt, m.LastUpdatedBy,
		m.QuarryID, m.PeriodID,
	)
	if err != nil {
		return fmt.Errorf("failed to update period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
