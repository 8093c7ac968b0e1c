package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	"github.com/marhaba-travel/agency_accounting/internal/models"
)

const fiscalYearColumns = `fiscal_year_id, code, name, start_date, end_date, status, is_current, closing_net_income, closed_at, closed_by, previous_year_id, next_year_id, balances_carried_forward, created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalYearRepository struct {
	BaseRepository
}

// newPgxFiscalYearRepository creates a new repository for fiscal years.
func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryWithTx {
	return &PgxFiscalYearRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryWithTx = (*PgxFiscalYearRepository)(nil)

func toDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	d := domain.FiscalYear{
		FiscalYearID:           m.FiscalYearID,
		Code:                   m.Code,
		Name:                   m.Name,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		Status:                 domain.FiscalYearStatus(m.Status),
		IsCurrent:              m.IsCurrent,
		ClosingNetIncome:       m.ClosingNetIncome,
		ClosedAt:               m.ClosedAt,
		PreviousYearID:         m.PreviousYearID,
		NextYearID:             m.NextYearID,
		BalancesCarriedForward: m.BalancesCarriedForward,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ClosedBy != nil {
		d.ClosedBy = *m.ClosedBy
	}
	return d
}

func scanFiscalYear(row pgx.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.Code,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.IsCurrent,
		&m.ClosingNetIncome,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.PreviousYearID,
		&m.NextYearID,
		&m.BalancesCarriedForward,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFiscalYearRepository) findOne(ctx context.Context, query string, args ...any) (*domain.FiscalYear, error) {
	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	d := toDomainFiscalYear(m)
	return &d, nil
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := r.findOne(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE fiscal_year_id = $1;`, fiscalYearID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	return fy, err
}

// FindFiscalYearByCode retrieves a fiscal year by its unique code.
func (r *PgxFiscalYearRepository) FindFiscalYearByCode(ctx context.Context, code string) (*domain.FiscalYear, error) {
	fy, err := r.findOne(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE code = $1;`, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find fiscal year by code %s: %w", code, err)
	}
	return fy, err
}

// FindCurrentFiscalYear retrieves the year flagged is_current, if any.
func (r *PgxFiscalYearRepository) FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	fy, err := r.findOne(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE is_current = TRUE;`)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find current fiscal year: %w", err)
	}
	return fy, err
}

// FindFiscalYearForDate retrieves the year whose range contains the date.
// Ranges never overlap, so at most one row matches.
func (r *PgxFiscalYearRepository) FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	fy, err := r.findOne(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE start_date <= $1 AND end_date >= $1;`, date)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find fiscal year for date: %w", err)
	}
	return fy, err
}

// HasOverlappingFiscalYear reports whether any year's range intersects [start, end].
func (r *PgxFiscalYearRepository) HasOverlappingFiscalYear(ctx context.Context, start, end time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM fiscal_years WHERE start_date <= $2 AND end_date >= $1);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check fiscal year overlap: %w", err)
	}
	return exists, nil
}

// ListFiscalYears retrieves all fiscal years, newest first.
func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal years: %w", err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
		}
		years = append(years, toDomainFiscalYear(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fiscal year rows: %w", rows.Err())
	}
	return years, nil
}

// ListOpeningBalances retrieves the opening balances of one fiscal year.
func (r *PgxFiscalYearRepository) ListOpeningBalances(ctx context.Context, fiscalYearID string) ([]domain.OpeningBalance, error) {
	query := `
		SELECT opening_balance_id, fiscal_year_id, account_id, debit_balance, credit_balance, balance, source, created_at, created_by, last_updated_at, last_updated_by
		FROM fiscal_year_opening_balances
		WHERE fiscal_year_id = $1
		ORDER BY account_id;
	`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening balances for %s: %w", fiscalYearID, err)
	}
	defer rows.Close()

	balances := []domain.OpeningBalance{}
	for rows.Next() {
		var m models.OpeningBalance
		err := rows.Scan(
			&m.OpeningBalanceID,
			&m.FiscalYearID,
			&m.AccountID,
			&m.DebitBalance,
			&m.CreditBalance,
			&m.Balance,
			&m.Source,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opening balance row: %w", err)
		}
		balances = append(balances, domain.OpeningBalance{
			OpeningBalanceID: m.OpeningBalanceID,
			FiscalYearID:     m.FiscalYearID,
			AccountID:        m.AccountID,
			DebitBalance:     m.DebitBalance,
			CreditBalance:    m.CreditBalance,
			Balance:          m.Balance,
			Source:           domain.OpeningBalanceSource(m.Source),
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating opening balance rows: %w", rows.Err())
	}
	return balances, nil
}

// ListClosingEntries retrieves the closing entries of one fiscal year.
func (r *PgxFiscalYearRepository) ListClosingEntries(ctx context.Context, fiscalYearID string) ([]domain.ClosingEntry, error) {
	query := `
		SELECT closing_entry_id, fiscal_year_id, entry_type, debit_account_id, credit_account_id, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM fiscal_year_closing_entries
		WHERE fiscal_year_id = $1
		ORDER BY created_at;
	`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing entries for %s: %w", fiscalYearID, err)
	}
	defer rows.Close()

	entries := []domain.ClosingEntry{}
	for rows.Next() {
		var m models.ClosingEntry
		err := rows.Scan(
			&m.ClosingEntryID,
			&m.FiscalYearID,
			&m.EntryType,
			&m.DebitAccountID,
			&m.CreditAccountID,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan closing entry row: %w", err)
		}
		entries = append(entries, domain.ClosingEntry{
			ClosingEntryID:  m.ClosingEntryID,
			FiscalYearID:    m.FiscalYearID,
			EntryType:       domain.ClosingEntryType(m.EntryType),
			DebitAccountID:  m.DebitAccountID,
			CreditAccountID: m.CreditAccountID,
			Amount:          m.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating closing entry rows: %w", rows.Err())
	}
	return entries, nil
}

// SaveFiscalYear persists a new fiscal year.
func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	query := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`

	var closedBy *string
	if fy.ClosedBy != "" {
		closedBy = &fy.ClosedBy
	}

	_, err := r.Pool.Exec(ctx, query,
		fy.FiscalYearID,
		fy.Code,
		fy.Name,
		fy.StartDate,
		fy.EndDate,
		string(fy.Status),
		fy.IsCurrent,
		fy.ClosingNetIncome,
		fy.ClosedAt,
		closedBy,
		fy.PreviousYearID,
		fy.NextYearID,
		fy.BalancesCarriedForward,
		fy.CreatedAt,
		fy.CreatedBy,
		fy.LastUpdatedAt,
		fy.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal year code %s already exists", apperrors.ErrDuplicate, fy.Code)
		}
		return fmt.Errorf("failed to save fiscal year %s: %w", fy.FiscalYearID, err)
	}
	return nil
}

// ClearCurrentFlag unsets is_current on whichever year carries it.
func (r *PgxFiscalYearRepository) ClearCurrentFlag(ctx context.Context, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_years
		SET is_current = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE is_current = TRUE;
	`
	if _, err := r.Pool.Exec(ctx, query, now, userID); err != nil {
		return fmt.Errorf("failed to clear current fiscal year flag: %w", err)
	}
	return nil
}

// LinkYears sets source.next_year_id and target.previous_year_id.
func (r *PgxFiscalYearRepository) LinkYears(ctx context.Context, sourceID, targetID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	forward := `UPDATE fiscal_years SET next_year_id = $2, last_updated_at = $3, last_updated_by = $4 WHERE fiscal_year_id = $1;`
	backward := `UPDATE fiscal_years SET previous_year_id = $2, last_updated_at = $3, last_updated_by = $4 WHERE fiscal_year_id = $1;`

	if _, err := tx.Exec(ctx, forward, sourceID, targetID, now, userID); err != nil {
		return fmt.Errorf("failed to link source year %s forward: %w", sourceID, err)
	}
	if _, err := tx.Exec(ctx, backward, targetID, sourceID, now, userID); err != nil {
		return fmt.Errorf("failed to link target year %s backward: %w", targetID, err)
	}
	return r.Commit(ctx, tx)
}

// ReplaceOpeningBalances deletes any prior opening balances of the target year
// and inserts the given rows in one transaction, making carry-forward
// re-runnable.
func (r *PgxFiscalYearRepository) ReplaceOpeningBalances(ctx context.Context, fiscalYearID string, rows []domain.OpeningBalance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM fiscal_year_opening_balances WHERE fiscal_year_id = $1;`, fiscalYearID); err != nil {
		return fmt.Errorf("failed to clear opening balances for %s: %w", fiscalYearID, err)
	}

	insert := `
		INSERT INTO fiscal_year_opening_balances (opening_balance_id, fiscal_year_id, account_id, debit_balance, credit_balance, balance, source, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insert,
			row.OpeningBalanceID,
			row.FiscalYearID,
			row.AccountID,
			row.DebitBalance,
			row.CreditBalance,
			row.Balance,
			string(row.Source),
			row.CreatedAt,
			row.CreatedBy,
			row.LastUpdatedAt,
			row.LastUpdatedBy,
		)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to insert opening balance row: %w", err)
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close opening balance batch: %w", err)
		}
		if batchErr != nil {
			return batchErr
		}
	}
	return r.Commit(ctx, tx)
}

// SetBalancesCarriedForward flags the source year once carry-forward completed.
func (r *PgxFiscalYearRepository) SetBalancesCarriedForward(ctx context.Context, fiscalYearID string, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_years
		SET balances_carried_forward = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE fiscal_year_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, fiscalYearID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to flag carry-forward on %s: %w", fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CloseFiscalYearInTx transitions a year OPEN -> CLOSED. The status predicate
// is the compare-and-swap: a concurrent close already flipped the row, so this
// update affects zero rows and reports a conflict.
func (r *PgxFiscalYearRepository) CloseFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, netIncome decimal.Decimal, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE fiscal_years
		SET status = $2, closing_net_income = $3, closed_at = $4, closed_by = $5, is_current = FALSE, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_year_id = $1 AND status = $6;
	`

	cmdTag, err := tx.Exec(ctx, query, fiscalYearID, models.FiscalYearClosed, netIncome, closedAt, closedBy, models.FiscalYearOpen)
	if err != nil {
		return fmt.Errorf("failed to close fiscal year %s: %w", fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal year %s is not OPEN", apperrors.ErrConflict, fiscalYearID)
	}
	return nil
}

// SaveClosingEntriesInTx appends the closing entries of a year.
func (r *PgxFiscalYearRepository) SaveClosingEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.ClosingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	insert := `
		INSERT INTO fiscal_year_closing_entries (closing_entry_id, fiscal_year_id, entry_type, debit_account_id, credit_account_id, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insert,
			e.ClosingEntryID,
			e.FiscalYearID,
			string(e.EntryType),
			e.DebitAccountID,
			e.CreditAccountID,
			e.Amount,
			e.CreatedAt,
			e.CreatedBy,
			e.LastUpdatedAt,
			e.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert closing entry: %w", err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close closing entry batch: %w", err)
	}
	return batchErr
}
