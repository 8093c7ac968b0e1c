package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/dto"
	"github.com/marhaba-travel/agency_accounting/internal/middleware"
)

// fiscalYearService owns the accounting period lifecycle.
type fiscalYearService struct {
	yearRepo    portsrepo.FiscalYearRepositoryWithTx
	entryRepo   portsrepo.JournalEntryRepositoryWithTx
	accountRepo portsrepo.AccountReader
}

// NewFiscalYearService creates a new fiscal year manager.
func NewFiscalYearService(
	yearRepo portsrepo.FiscalYearRepositoryWithTx,
	entryRepo portsrepo.JournalEntryRepositoryWithTx,
	accountRepo portsrepo.AccountReader,
) portssvc.FiscalYearSvcFacade {
	return &fiscalYearService{
		yearRepo:    yearRepo,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

// OpenNew creates a new OPEN fiscal year and makes it current. The new range
// must not overlap any existing year, and the code must be unique. When the
// request names a CLOSED base year, carry-forward runs immediately after.
func (s *fiscalYearService) OpenNew(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	}
	if _, err := s.yearRepo.FindFiscalYearByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: fiscal year code %s already exists", apperrors.ErrDuplicate, req.Code)
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check fiscal year code: %w", err)
	}
	overlaps, err := s.yearRepo.HasOverlappingFiscalYear(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check fiscal year overlap: %w", err)
	}
	if overlaps {
		return nil, fmt.Errorf("%w: date range overlaps an existing fiscal year", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.FiscalYearOpen,
		IsCurrent:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.yearRepo.ClearCurrentFlag(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("failed to clear current fiscal year flag: %w", err)
	}
	if err := s.yearRepo.SaveFiscalYear(ctx, fy); err != nil {
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}
	logger.Info("Fiscal year opened", slog.String("code", fy.Code), slog.String("fiscal_year_id", fy.FiscalYearID))

	if req.BasedOnYearID != nil {
		rows, err := s.CarryForward(ctx, *req.BasedOnYearID, fy.FiscalYearID, userID)
		if err != nil {
			// The new year exists; carry-forward can be retried separately.
			logger.Error("Automatic carry-forward failed",
				slog.String("source_year_id", *req.BasedOnYearID),
				slog.String("target_year_id", fy.FiscalYearID),
				slog.String("error", err.Error()),
			)
			return &fy, fmt.Errorf("fiscal year opened but carry-forward failed: %w", err)
		}
		logger.Info("Opening balances carried forward", slog.Int("rows", rows))
	}
	return &fy, nil
}

// Close transitions a year OPEN -> CLOSED. Net income is computed from the
// posted entries of the year, closing entries are recorded, and the status
// flip carries an OPEN guard so two concurrent closes cannot both succeed.
// Closing entries document the computation; they are not re-posted to the
// live ledger.
func (s *fiscalYearService) Close(ctx context.Context, fiscalYearID string, userID string) (*domain.CloseSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fy, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if fy.Status == domain.FiscalYearClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is already closed", apperrors.ErrConflict, fy.Code)
	}

	incomeSummary, err := s.accountRepo.FindAccountByCode(ctx, domain.AccountCodeIncomeSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to find income summary account: %w", err)
	}
	retained, err := s.accountRepo.FindAccountByCode(ctx, domain.AccountCodeRetainedEarnings)
	if err != nil {
		return nil, fmt.Errorf("failed to find retained earnings account: %w", err)
	}

	tx, err := s.yearRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin close transaction: %w", err)
	}
	defer s.yearRepo.Rollback(ctx, tx)

	revenueTotals, err := s.entryRepo.SumByAccountForFiscalYearInTx(ctx, tx, fiscalYearID, domain.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue accounts: %w", err)
	}
	expenseTotals, err := s.entryRepo.SumByAccountForFiscalYearInTx(ctx, tx, fiscalYearID, domain.Expense)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expense accounts: %w", err)
	}

	// Revenue accounts carry credit-normal balances, expense accounts
	// debit-normal.
	totalRevenue := decimal.Zero
	for _, t := range revenueTotals {
		totalRevenue = totalRevenue.Add(t.CreditTotal.Sub(t.DebitTotal))
	}
	totalExpenses := decimal.Zero
	for _, t := range expenseTotals {
		totalExpenses = totalExpenses.Add(t.DebitTotal.Sub(t.CreditTotal))
	}
	netIncome := totalRevenue.Sub(totalExpenses)

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	closingEntries := make([]domain.ClosingEntry, 0, len(revenueTotals)+len(expenseTotals)+1)
	for _, t := range revenueTotals {
		balance := t.CreditTotal.Sub(t.DebitTotal)
		if balance.IsZero() {
			continue
		}
		// Zeroing a credit-normal account debits it against income summary.
		closingEntries = append(closingEntries, domain.ClosingEntry{
			ClosingEntryID:  uuid.NewString(),
			FiscalYearID:    fiscalYearID,
			EntryType:       domain.RevenueClose,
			DebitAccountID:  t.AccountID,
			CreditAccountID: incomeSummary.AccountID,
			Amount:          balance.Abs(),
			AuditFields:     audit,
		})
	}
	for _, t := range expenseTotals {
		balance := t.DebitTotal.Sub(t.CreditTotal)
		if balance.IsZero() {
			continue
		}
		closingEntries = append(closingEntries, domain.ClosingEntry{
			ClosingEntryID:  uuid.NewString(),
			FiscalYearID:    fiscalYearID,
			EntryType:       domain.ExpenseClose,
			DebitAccountID:  incomeSummary.AccountID,
			CreditAccountID: t.AccountID,
			Amount:          balance.Abs(),
			AuditFields:     audit,
		})
	}
	if !netIncome.IsZero() {
		// Profit credits retained earnings; a loss debits it.
		entry := domain.ClosingEntry{
			ClosingEntryID:  uuid.NewString(),
			FiscalYearID:    fiscalYearID,
			EntryType:       domain.RetainedEarnings,
			DebitAccountID:  incomeSummary.AccountID,
			CreditAccountID: retained.AccountID,
			Amount:          netIncome.Abs(),
			AuditFields:     audit,
		}
		if netIncome.IsNegative() {
			entry.DebitAccountID, entry.CreditAccountID = entry.CreditAccountID, entry.DebitAccountID
		}
		closingEntries = append(closingEntries, entry)
	}

	if err := s.yearRepo.SaveClosingEntriesInTx(ctx, tx, closingEntries); err != nil {
		return nil, fmt.Errorf("failed to save closing entries: %w", err)
	}
	if err := s.yearRepo.CloseFiscalYearInTx(ctx, tx, fiscalYearID, netIncome, userID, now); err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: fiscal year %s was closed concurrently", apperrors.ErrConflict, fy.Code)
		}
		return nil, fmt.Errorf("failed to close fiscal year: %w", err)
	}
	if err := s.yearRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit fiscal year close: %w", err)
	}

	fy.Status = domain.FiscalYearClosed
	fy.ClosingNetIncome = &netIncome
	fy.ClosedAt = &now
	fy.ClosedBy = userID

	logger.Info("Fiscal year closed",
		slog.String("code", fy.Code),
		slog.String("total_revenue", totalRevenue.String()),
		slog.String("total_expenses", totalExpenses.String()),
		slog.String("net_income", netIncome.String()),
	)
	return &domain.CloseSummary{
		FiscalYear:     *fy,
		TotalRevenue:   totalRevenue,
		TotalExpenses:  totalExpenses,
		NetIncome:      netIncome,
		ClosingEntries: closingEntries,
	}, nil
}

// CarryForward seeds the target year's opening balances from the source
// year's permanent accounts. The source must be CLOSED and the target OPEN;
// temporary accounts were zeroed by the close and never carry forward.
// Re-running replaces prior carried rows, so the operation is idempotent.
func (s *fiscalYearService) CarryForward(ctx context.Context, sourceYearID, targetYearID string, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.yearRepo.FindFiscalYearByID(ctx, sourceYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to find source fiscal year: %w", err)
	}
	if source.Status != domain.FiscalYearClosed {
		return 0, fmt.Errorf("%w: source fiscal year %s must be closed before carrying forward", apperrors.ErrConflict, source.Code)
	}
	target, err := s.yearRepo.FindFiscalYearByID(ctx, targetYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to find target fiscal year: %w", err)
	}
	if target.Status != domain.FiscalYearOpen {
		return 0, fmt.Errorf("%w: target fiscal year %s is not open", apperrors.ErrConflict, target.Code)
	}
	if !target.StartDate.After(source.EndDate) {
		return 0, fmt.Errorf("%w: target fiscal year must start after the source year ends", apperrors.ErrValidation)
	}

	permanent, err := s.accountRepo.ListAccountsByTypes(ctx, []domain.AccountType{domain.Asset, domain.Liability, domain.Equity})
	if err != nil {
		return 0, fmt.Errorf("failed to list permanent accounts: %w", err)
	}

	now := time.Now().UTC()
	rows := make([]domain.OpeningBalance, 0, len(permanent))
	for _, acc := range permanent {
		if acc.DebitBalance.IsZero() && acc.CreditBalance.IsZero() {
			continue
		}
		rows = append(rows, domain.OpeningBalance{
			OpeningBalanceID: uuid.NewString(),
			FiscalYearID:     targetYearID,
			AccountID:        acc.AccountID,
			DebitBalance:     acc.DebitBalance,
			CreditBalance:    acc.CreditBalance,
			Balance:          domain.BalanceOf(acc.AccountType, acc.DebitBalance, acc.CreditBalance),
			Source:           domain.OpeningCarriedForward,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if err := s.yearRepo.ReplaceOpeningBalances(ctx, targetYearID, rows); err != nil {
		return 0, fmt.Errorf("failed to write opening balances: %w", err)
	}
	if err := s.yearRepo.SetBalancesCarriedForward(ctx, sourceYearID, userID, now); err != nil {
		return 0, fmt.Errorf("failed to flag source year as carried forward: %w", err)
	}
	if err := s.yearRepo.LinkYears(ctx, sourceYearID, targetYearID, userID, now); err != nil {
		return 0, fmt.Errorf("failed to link fiscal years: %w", err)
	}

	logger.Info("Carry-forward completed",
		slog.String("source_year", source.Code),
		slog.String("target_year", target.Code),
		slog.Int("rows", len(rows)),
	)
	return len(rows), nil
}

// GetByID retrieves one fiscal year.
func (s *fiscalYearService) GetByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	return fy, nil
}

// GetCurrent retrieves the current fiscal year.
func (s *fiscalYearService) GetCurrent(ctx context.Context) (*domain.FiscalYear, error) {
	fy, err := s.yearRepo.FindCurrentFiscalYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find current fiscal year: %w", err)
	}
	return fy, nil
}

// List retrieves all fiscal years.
func (s *fiscalYearService) List(ctx context.Context) ([]domain.FiscalYear, error) {
	years, err := s.yearRepo.ListFiscalYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	return years, nil
}

// ListOpeningBalances retrieves the opening balances of one fiscal year.
func (s *fiscalYearService) ListOpeningBalances(ctx context.Context, fiscalYearID string) ([]domain.OpeningBalance, error) {
	rows, err := s.yearRepo.ListOpeningBalances(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}
	return rows, nil
}

// ListClosingEntries retrieves the closing entries of one fiscal year.
func (s *fiscalYearService) ListClosingEntries(ctx context.Context, fiscalYearID string) ([]domain.ClosingEntry, error) {
	rows, err := s.yearRepo.ListClosingEntries(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list closing entries: %w", err)
	}
	return rows, nil
}
