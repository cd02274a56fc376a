package pgsql

import (
	"context"
	"errors"
	"fmt"
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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, quarry_id, code, name, description, category, is_debit_normal, is_system, display_order, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.LedgerAccount, error) {
	var m models.LedgerAccount
	err := row.Scan(
		&m.AccountID,
		&m.QuarryID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.IsDebitNormal,
		&m.IsSystem,
		&m.DisplayOrder,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ListAccounts retrieves the active chart of accounts for a quarry.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, quarryID string) ([]domain.LedgerAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM ledger_accounts
		WHERE quarry_id = $1 AND is_active = TRUE
		ORDER BY display_order, code;
	`
	rows, err := r.Pool.Query(ctx, query, quarryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for quarry %s: %w", quarryID, err)
	}
	defer rows.Close()

	accounts := []domain.LedgerAccount{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainLedgerAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves a single active account.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, quarryID, accountID string) (*domain.LedgerAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM ledger_accounts
		WHERE quarry_id = $1 AND account_id = $2 AND is_active = TRUE;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, quarryID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainLedgerAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves a single active account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, quarryID, code string) (*domain.LedgerAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM ledger_accounts
		WHERE quarry_id = $1 AND code = $2 AND is_active = TRUE;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, quarryID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	d := mapping.ToDomainLedgerAccount(m)
	return &d, nil
}

// HasJournalLines reports whether any journal line has ever referenced the account.
func (r *PgxAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check journal lines for account %s: %w", accountID, err)
	}
	return exists, nil
}

const insertAccountQuery = `
	INSERT INTO ledger_accounts (account_id, quarry_id, code, name, description, category, is_debit_normal, is_system, display_order, is_active, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func accountInsertArgs(m models.LedgerAccount) []any {
	return []any{
		m.AccountID,
		m.QuarryID,
		m.Code,
		m.Name,
		m.Description,
		m.Category,
		m.IsDebitNormal,
		m.IsSystem,
		m.DisplayOrder,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveAccount inserts a new ledger account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	m := mapping.ToModelLedgerAccount(account)
	_, err := r.Pool.Exec(ctx, insertAccountQuery, accountInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account code %s already exists in quarry", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// SaveAccounts inserts a batch of accounts in one transaction (chart seeding).
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.LedgerAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for chart seeding: %w", err)
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(insertAccountQuery, accountInsertArgs(mapping.ToModelLedgerAccount(account))...)
	}

	br := tx.SendBatch(ctx, batch)
	for range accounts {
		if _, err := br.Exec(); err != nil {
			br.Close()
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: duplicate account code during chart seeding", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to insert account during chart seeding: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close seeding batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateAccount persists changes to an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.LedgerAccount) error {
	m := mapping.ToModelLedgerAccount(account)
	query := `
		UPDATE ledger_accounts
		SET name = $1, description = $2, display_order = $3, last_updated_at = $4, last_updated_by = $5
		WHERE quarry_id = $6 AND account_id = $7 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Description, m.DisplayOrder, m.LastUpdatedAt, m.LastUpdatedBy,
		m.QuarryID, m.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount soft-deletes an account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, quarryID, accountID, updatedBy string) error {
	query := `
		UPDATE ledger_accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE quarry_id = $3 AND account_id = $4 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), updatedBy, quarryID, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
