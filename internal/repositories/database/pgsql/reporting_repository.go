package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository runs the grouped aggregations the balance calculator
// and report generator are built on. Only posted, active entries count.
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting aggregations.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity returns per-account debit/credit sums for posted entries
// dated within the range, in one grouped query. A zero from bound means
// unbounded history.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, quarryID string, from, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.category, a.is_debit_normal,
			COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN ledger_accounts a ON a.account_id = l.account_id
		WHERE e.quarry_id = $1
			AND e.is_posted = TRUE AND e.is_active = TRUE
			AND a.is_active = TRUE
			AND e.entry_date <= $2
			AND ($3::timestamptz IS NULL OR e.entry_date >= $3)
		GROUP BY a.account_id, a.code, a.name, a.category, a.is_debit_normal
		ORDER BY a.code;
	`
	var fromArg any
	if !from.IsZero() {
		fromArg = from
	}

	rows, err := r.Pool.Query(ctx, query, quarryID, to, fromArg)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate account activity for quarry %s: %w", quarryID, err)
	}
	defer rows.Close()

	activity := []domain.AccountActivity{}
	for rows.Next() {
		var a domain.AccountActivity
		var category string
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &category, &a.IsDebitNormal, &a.Debit, &a.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		a.Category = domain.AccountCategory(category)
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return activity, nil
}

// GetAccountBalanceSums returns the debit and credit sums for one account
// across posted entries dated on or before asOf.
func (r *PgxReportingRepository) GetAccountBalanceSums(ctx context.Context, quarryID, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.quarry_id = $1
			AND l.account_id = $2
			AND e.is_posted = TRUE AND e.is_active = TRUE
			AND e.entry_date <= $3;
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, quarryID, accountID, asOf).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum lines for account %s: %w", accountID, err)
	}
	return debit, credit, nil
}

// GetLedgerLines returns the posted lines affecting one account within the
// range, in chronological order.
func (r *PgxReportingRepository) GetLedgerLines(ctx context.Context, quarryID, accountID string, from, to time.Time) ([]domain.GeneralLedgerLine, error) {
	query := `
		SELECT e.entry_date, e.reference, e.description, l.memo, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.quarry_id = $1
			AND l.account_id = $2
			AND e.is_posted = TRUE AND e.is_active = TRUE
			AND e.entry_date >= $3 AND e.entry_date <= $4
		ORDER BY e.entry_date, e.reference, l.line_number;
	`
	rows, err := r.Pool.Query(ctx, query, quarryID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.GeneralLedgerLine{}
	for rows.Next() {
		var l domain.GeneralLedgerLine
		if err := rows.Scan(&l.EntryDate, &l.Reference, &l.Description, &l.Memo, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return lines, nil
}
