package services

import (
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/platform/config"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	periodSvc := NewPeriodService(repos.PeriodRepo)
	journalSvc := NewJournalService(repos.JournalRepo, repos.AccountRepo, periodSvc, cfg.ManualRefPrefix, cfg.AutoRefPrefix)
	autoGenSvc := NewAutoGenService(journalSvc, repos.JournalRepo, repos.AccountRepo, repos.SourceRepo, repos.SettingsRepo, repos.MappingRepo, cfg.AutoRefPrefix)
	ledgerSvc := NewLedgerService(repos.AccountRepo, repos.ReportingRepo)
	reportingSvc := NewReportingService(repos.AccountRepo, repos.ReportingRepo, repos.SourceRepo, repos.SettingsRepo, cfg.CurrentAssetMaxCode, cfg.CurrentLiabilityMaxCode)
	setupSvc := NewSetupService(accountSvc, periodSvc, repos.SettingsRepo, repos.MappingRepo)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Period:    periodSvc,
		AutoGen:   autoGenSvc,
		Ledger:    ledgerSvc,
		Reporting: reportingSvc,
		Setup:     setupSvc,
	}
}
