package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	"github.com/marhaba-travel/agency_accounting/internal/models"
)

const entryColumns = `entry_id, entry_number, entry_date, description, debit_account_id, credit_account_id, amount, transaction_type, status, posted_at, fiscal_year_id, booking_id, invoice_id, receipt_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entries.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Amount:          d.Amount,
		TransactionType: string(d.TransactionType),
		Status:          models.EntryStatus(d.Status),
		PostedAt:        d.PostedAt,
		FiscalYearID:    d.FiscalYearID,
		BookingID:       d.BookingID,
		InvoiceID:       d.InvoiceID,
		ReceiptID:       d.ReceiptID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Status:          domain.EntryStatus(m.Status),
		PostedAt:        m.PostedAt,
		FiscalYearID:    m.FiscalYearID,
		BookingID:       m.BookingID,
		InvoiceID:       m.InvoiceID,
		ReceiptID:       m.ReceiptID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Amount,
		&m.TransactionType,
		&m.Status,
		&m.PostedAt,
		&m.FiscalYearID,
		&m.BookingID,
		&m.InvoiceID,
		&m.ReceiptID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry inserts a new DRAFT journal entry.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := toModelEntry(entry)

	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.DebitAccountID,
		m.CreditAccountID,
		m.Amount,
		m.TransactionType,
		m.Status,
		m.PostedAt,
		m.FiscalYearID,
		m.BookingID,
		m.InvoiceID,
		m.ReceiptID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to save journal entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	d := toDomainEntry(m)
	return &d, nil
}

// ListEntriesByFiscalYear retrieves entries of one fiscal year, oldest first.
func (r *PgxJournalEntryRepository) ListEntriesByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE fiscal_year_id = $1
		ORDER BY entry_date, entry_number
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for fiscal year %s: %w", fiscalYearID, err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListEntriesByBooking retrieves all entries back-referencing a booking.
func (r *PgxJournalEntryRepository) ListEntriesByBooking(ctx context.Context, bookingID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE booking_id = $1
		ORDER BY entry_date, entry_number;
	`

	rows, err := r.Pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for booking %s: %w", bookingID, err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", rows.Err())
	}
	return entries, nil
}

// FindEntryByIDForUpdate retrieves an entry and locks its row. Must be called
// within a transaction.
func (r *PgxJournalEntryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`

	m, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	d := toDomainEntry(m)
	return &d, nil
}

// MarkEntryPostedInTx flips a DRAFT entry to POSTED. The status guard means a
// concurrent posting of the same entry updates zero rows and surfaces as a
// conflict instead of double-applying.
func (r *PgxJournalEntryRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, postedAt time.Time, userID string) error {
	query := `
		UPDATE journal_entries
		SET status = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = $5;
	`

	cmdTag, err := tx.Exec(ctx, query, entryID, models.Posted, postedAt, userID, models.Draft)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s posted: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not in DRAFT status", apperrors.ErrConflict, entryID)
	}
	return nil
}

// SumByAccountForFiscalYearInTx aggregates per-account debit/credit totals
// over POSTED entries of one fiscal year, restricted to accounts of the given
// type. Each entry contributes its amount to the debit total of its debit
// account and the credit total of its credit account.
func (r *PgxJournalEntryRepository) SumByAccountForFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, accountType domain.AccountType) ([]portsrepo.AccountPeriodTotal, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN je.debit_account_id = a.account_id THEN je.amount ELSE 0 END), 0) AS debit_total,
		       COALESCE(SUM(CASE WHEN je.credit_account_id = a.account_id THEN je.amount ELSE 0 END), 0) AS credit_total
		FROM accounts a
		JOIN journal_entries je
		  ON je.debit_account_id = a.account_id OR je.credit_account_id = a.account_id
		WHERE je.fiscal_year_id = $1 AND je.status = $2 AND a.account_type = $3
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := tx.Query(ctx, query, fiscalYearID, models.Posted, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate entries for fiscal year %s: %w", fiscalYearID, err)
	}
	defer rows.Close()

	totals := []portsrepo.AccountPeriodTotal{}
	for rows.Next() {
		var t portsrepo.AccountPeriodTotal
		if err := rows.Scan(&t.AccountID, &t.AccountCode, &t.AccountName, &t.AccountType, &t.DebitTotal, &t.CreditTotal); err != nil {
			return nil, fmt.Errorf("failed to scan period total row: %w", err)
		}
		totals = append(totals, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating period total rows: %w", rows.Err())
	}
	return totals, nil
}
