package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	"github.com/quarryworks/quarry_books_app/internal/models"
	"github.com/quarryworks/quarry_books_app/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for quarry fee settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.QuarrySettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.QuarrySettingsRepository = (*PgxSettingsRepository)(nil)

// GetSettings retrieves a quarry's fee configuration.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context, quarryID string) (*domain.QuarrySettings, error) {
	query := `
		SELECT quarry_id, loaders_fee_rate, land_rate_per_unit, rejects_fee_per_unit, created_at, created_by, last_updated_at, last_updated_by
		FROM quarry_settings
		WHERE quarry_id = $1;
	`
	var m models.QuarrySettings
	err := r.Pool.QueryRow(ctx, query, quarryID).Scan(
		&m.QuarryID,
		&m.LoadersFeeRate,
		&m.LandRatePerUnit,
		&m.RejectsFeePerUnit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load settings for quarry %s: %w", quarryID, err)
	}
	d := mapping.ToDomainQuarrySettings(m)
	return &d, nil
}

// SaveSettings upserts a quarry's fee configuration.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.QuarrySettings) error {
	m := mapping.ToModelQuarrySettings(settings)
	query := `
		INSERT INTO quarry_settings (quarry_id, loaders_fee_rate, land_rate_per_unit, rejects_fee_per_unit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (quarry_id)
		DO UPDATE SET loaders_fee_rate = $2, land_rate_per_unit = $3, rejects_fee_per_unit = $4, last_updated_at = $7, last_updated_by = $8;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.QuarryID, m.LoadersFeeRate, m.LandRatePerUnit, m.RejectsFeePerUnit,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings for quarry %s: %w", m.QuarryID, err)
	}
	return nil
}

// PgxMappingRepository resolves product and expense-category names to ledger
// account codes from the per-quarry mapping tables.
type PgxMappingRepository struct {
	BaseRepository
}

// newPgxMappingRepository creates a new repository for account code mappings.
func newPgxMappingRepository(pool *pgxpool.Pool) portsrepo.AccountMappingRepository {
	return &PgxMappingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountMappingRepository = (*PgxMappingRepository)(nil)

func (r *PgxMappingRepository) lookupCode(ctx context.Context, quarryID, kind, name string) (string, error) {
	query := `
		SELECT account_code
		FROM account_mappings
		WHERE quarry_id = $1 AND mapping_kind = $2 AND mapped_name = $3;
	`
	var code string
	if err := r.Pool.QueryRow(ctx, query, quarryID, kind, name).Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to look up %s mapping for %q: %w", kind, name, err)
	}
	return code, nil
}

// RevenueCodeForProduct returns the revenue account code mapped to a product name.
func (r *PgxMappingRepository) RevenueCodeForProduct(ctx context.Context, quarryID, productName string) (string, error) {
	return r.lookupCode(ctx, quarryID, "PRODUCT_REVENUE", productName)
}

// ExpenseCodeForCategory returns the expense account code mapped to an expense category.
func (r *PgxMappingRepository) ExpenseCodeForCategory(ctx context.Context, quarryID, category string) (string, error) {
	return r.lookupCode(ctx, quarryID, "EXPENSE_CATEGORY", category)
}

// SaveMappings seeds or replaces a quarry's mapping rows in one transaction.
func (r *PgxMappingRepository) SaveMappings(ctx context.Context, quarryID string, productToRevenue, categoryToExpense map[string]string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for mapping save: %w", err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM account_mappings WHERE quarry_id = $1;`, quarryID); err != nil {
		return fmt.Errorf("failed to clear mappings for quarry %s: %w", quarryID, err)
	}

	insertQuery := `
		INSERT INTO account_mappings (quarry_id, mapping_kind, mapped_name, account_code)
		VALUES ($1, $2, $3, $4);
	`
	batch := &pgx.Batch{}
	queued := 0
	for name, code := range productToRevenue {
		batch.Queue(insertQuery, quarryID, "PRODUCT_REVENUE", name, code)
		queued++
	}
	for name, code := range categoryToExpense {
		batch.Queue(insertQuery, quarryID, "EXPENSE_CATEGORY", name, code)
		queued++
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert mapping row: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close mapping batch: %w", err)
	}
	return r.Commit(ctx, tx)
}
