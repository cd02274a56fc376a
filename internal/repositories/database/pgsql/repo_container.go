package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		PeriodRepo:    newPgxPeriodRepository(dbPool),
		SourceRepo:    newPgxSourceRepository(dbPool),
		SettingsRepo:  newPgxSettingsRepository(dbPool),
		MappingRepo:   newPgxMappingRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
