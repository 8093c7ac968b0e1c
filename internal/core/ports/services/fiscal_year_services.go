package services

import (
	"context"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/marhaba-travel/agency_accounting/internal/dto"
)

// FiscalYearSvcFacade owns the period lifecycle: open, close, carry-forward.
type FiscalYearSvcFacade interface {
	// OpenNew creates a new OPEN fiscal year and makes it current. When
	// basedOnYearID names a CLOSED year, balances are carried forward into
	// the new year automatically.
	OpenNew(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)

	// Close transitions a year OPEN -> CLOSED, computing net income and the
	// closing entries in one transaction. Rejects years already CLOSED.
	Close(ctx context.Context, fiscalYearID string, userID string) (*domain.CloseSummary, error)

	// CarryForward seeds the target year's opening balances from the CLOSED
	// source year's permanent accounts.
	CarryForward(ctx context.Context, sourceYearID, targetYearID string, userID string) (int, error)

	// GetByID retrieves one fiscal year.
	GetByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// GetCurrent retrieves the current OPEN fiscal year.
	GetCurrent(ctx context.Context) (*domain.FiscalYear, error)

	// List retrieves all fiscal years.
	List(ctx context.Context) ([]domain.FiscalYear, error)

	// ListOpeningBalances retrieves the opening balances of one year.
	ListOpeningBalances(ctx context.Context, fiscalYearID string) ([]domain.OpeningBalance, error)

	// ListClosingEntries retrieves the closing entries of one year.
	ListClosingEntries(ctx context.Context, fiscalYearID string) ([]domain.ClosingEntry, error)
}
