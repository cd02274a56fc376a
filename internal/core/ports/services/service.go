package services

// ServiceContainer bundles all service implementations for wiring into handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Period    PeriodSvcFacade
	AutoGen   AutoGenSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
	Setup     SetupSvcFacade
}
