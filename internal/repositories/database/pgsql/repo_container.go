package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalEntryRepo: newPgxJournalEntryRepository(dbPool),
		FiscalYearRepo:   newPgxFiscalYearRepository(dbPool),
		SequenceRepo:     newPgxSequenceRepository(dbPool),
		RateRepo:         newPgxRateRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}
