package services

import (
	"context"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/marhaba-travel/agency_accounting/internal/dto"
)

// PostingSvcFacade is the journal entry poster: it creates balanced two-leg
// entries and atomically applies them to account balances. Compound event
// operations never leave an entry in DRAFT; each leg reports a tri-state
// outcome so callers can see skipped postings explicitly.
type PostingSvcFacade interface {
	// CreateAndPostBookingEntries posts the supplier-cost entry for a booking.
	CreateAndPostBookingEntries(ctx context.Context, booking domain.Booking, userID string) ([]domain.PostingOutcome, error)

	// CreateAndPostInvoiceEntries posts the revenue entry and, when VAT
	// applies, the VAT entry for an invoice.
	CreateAndPostInvoiceEntries(ctx context.Context, invoice domain.Invoice, userID string) ([]domain.PostingOutcome, error)

	// CreateAndPostReceiptEntry posts the payment entry for a receipt.
	CreateAndPostReceiptEntry(ctx context.Context, receipt domain.Receipt, userID string) (domain.PostingOutcome, error)

	// CreateAndPostCommissionEntry posts the commission-expense entry for one
	// commission role of a booking.
	CreateAndPostCommissionEntry(ctx context.Context, booking domain.Booking, role domain.CommissionRole, userID string) (domain.PostingOutcome, error)

	// CreateAndPostManualEntry posts a manual entry against accounts that
	// allow manual posting.
	CreateAndPostManualEntry(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves one journal entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByFiscalYear retrieves the entries of one fiscal year.
	ListEntriesByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]domain.JournalEntry, error)
}
