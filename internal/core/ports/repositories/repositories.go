package repositories

// RepositoryProvider bundles all repository implementations for wiring.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryWithTx
	PeriodRepo    PeriodRepository
	SourceRepo    SourceReader
	SettingsRepo  QuarrySettingsRepository
	MappingRepo   AccountMappingRepository
	ReportingRepo ReportingRepository
}
