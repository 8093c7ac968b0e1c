package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountPeriodTotal is one account's debit/credit sums over a fiscal year,
// used by the closing computation.
type AccountPeriodTotal struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType domain.AccountType
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByFiscalYear retrieves entries of one fiscal year, oldest first.
	ListEntriesByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]domain.JournalEntry, error)

	// ListEntriesByBooking retrieves all entries back-referencing a booking.
	ListEntriesByBooking(ctx context.Context, bookingID string) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	// SaveEntry persists a new DRAFT journal entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalEntryTransactionSupport defines posting-time operations that must run
// inside a caller-owned database transaction.
type JournalEntryTransactionSupport interface {
	// FindEntryByIDForUpdate retrieves an entry and locks its row.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error)

	// MarkEntryPostedInTx flips a DRAFT entry to POSTED. The update carries a
	// status guard so a concurrent posting of the same entry affects zero rows.
	MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, postedAt time.Time, userID string) error

	// SumByAccountForFiscalYearInTx aggregates per-account debit/credit totals
	// over POSTED entries of one fiscal year, restricted to accounts of the
	// given type.
	SumByAccountForFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, accountType domain.AccountType) ([]AccountPeriodTotal, error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalEntryTransactionSupport
}

// JournalEntryRepositoryWithTx extends the facade with transaction management.
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
