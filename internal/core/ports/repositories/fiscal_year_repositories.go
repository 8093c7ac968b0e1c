package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FiscalYearReader defines read operations for fiscal years.
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year by its ID.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearByCode retrieves a fiscal year by its unique code.
	FindFiscalYearByCode(ctx context.Context, code string) (*domain.FiscalYear, error)

	// FindCurrentFiscalYear retrieves the year flagged is_current, if any.
	FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error)

	// FindFiscalYearForDate retrieves the year whose range contains the date.
	FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)

	// HasOverlappingFiscalYear reports whether any year's range intersects [start, end].
	HasOverlappingFiscalYear(ctx context.Context, start, end time.Time) (bool, error)

	// ListFiscalYears retrieves all fiscal years, newest first.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// ListOpeningBalances retrieves the opening balances of one fiscal year.
	ListOpeningBalances(ctx context.Context, fiscalYearID string) ([]domain.OpeningBalance, error)

	// ListClosingEntries retrieves the closing entries of one fiscal year.
	ListClosingEntries(ctx context.Context, fiscalYearID string) ([]domain.ClosingEntry, error)
}

// FiscalYearWriter defines write operations for fiscal years.
type FiscalYearWriter interface {
	// SaveFiscalYear persists a new fiscal year.
	SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error

	// ClearCurrentFlag unsets is_current on whichever year carries it.
	ClearCurrentFlag(ctx context.Context, userID string, now time.Time) error

	// LinkYears sets source.next_year_id and target.previous_year_id.
	LinkYears(ctx context.Context, sourceID, targetID string, userID string, now time.Time) error

	// ReplaceOpeningBalances deletes any prior opening balances of the target
	// year and inserts the given rows in one transaction.
	ReplaceOpeningBalances(ctx context.Context, fiscalYearID string, rows []domain.OpeningBalance) error

	// SetBalancesCarriedForward flags the source year once carry-forward completed.
	SetBalancesCarriedForward(ctx context.Context, fiscalYearID string, userID string, now time.Time) error
}

// FiscalYearTransactionSupport defines close-time operations that must run
// inside a caller-owned database transaction.
type FiscalYearTransactionSupport interface {
	// CloseFiscalYearInTx transitions a year OPEN -> CLOSED with a
	// compare-and-swap on status; it returns apperrors.ErrConflict when the
	// year is not OPEN anymore.
	CloseFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, netIncome decimal.Decimal, closedBy string, closedAt time.Time) error

	// SaveClosingEntriesInTx appends the closing entries of a year.
	SaveClosingEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.ClosingEntry) error
}

// FiscalYearRepositoryFacade combines all fiscal-year repository interfaces.
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
	FiscalYearTransactionSupport
}

// FiscalYearRepositoryWithTx extends the facade with transaction management.
type FiscalYearRepositoryWithTx interface {
	FiscalYearRepositoryFacade
	TransactionManager
}
