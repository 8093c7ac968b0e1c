package services

import (
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.RateRepo)
	return &portssvc.ServiceContainer{
		Posting:    NewPostingService(repos.AccountRepo, repos.JournalEntryRepo, repos.SequenceRepo, repos.FiscalYearRepo, currencySvc),
		FiscalYear: NewFiscalYearService(repos.FiscalYearRepo, repos.JournalEntryRepo, repos.AccountRepo),
		Currency:   currencySvc,
		Reporting:  NewReportingService(repos.ReportingRepo),
	}
}
