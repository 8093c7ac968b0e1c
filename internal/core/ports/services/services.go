package services

// ServiceContainer holds all service interfaces needed by the HTTP layer.
type ServiceContainer struct {
	Posting    PostingSvcFacade
	FiscalYear FiscalYearSvcFacade
	Currency   CurrencySvcFacade
	Reporting  ReportingSvcFacade
}
