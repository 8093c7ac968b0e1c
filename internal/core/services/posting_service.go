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
	"github.com/marhaba-travel/agency_accounting/internal/utils/accounting"
	"github.com/marhaba-travel/agency_accounting/internal/utils/finance"
)

// entrySequence is the named counter backing journal entry numbers.
const entrySequence = "journal_entries"

// formatEntryNumber renders a sequence ticket as "JE-NNNNNN".
func formatEntryNumber(n int64) string {
	return fmt.Sprintf("JE-%06d", n)
}

// entrySpec describes one automatic entry before account resolution.
type entrySpec struct {
	txnType     domain.TransactionType
	debitCode   string
	creditCode  string
	amount      decimal.Decimal
	date        time.Time
	description string
	bookingID   *string
	invoiceID   *string
	receiptID   *string
}

// postingService creates balanced two-leg journal entries and atomically
// applies them to account balances.
type postingService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	entryRepo   portsrepo.JournalEntryRepositoryWithTx
	seqRepo     portsrepo.SequenceRepository
	yearRepo    portsrepo.FiscalYearReader
	currencySvc portssvc.CurrencySvcFacade
}

// NewPostingService creates a new journal entry poster.
func NewPostingService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	entryRepo portsrepo.JournalEntryRepositoryWithTx,
	seqRepo portsrepo.SequenceRepository,
	yearRepo portsrepo.FiscalYearReader,
	currencySvc portssvc.CurrencySvcFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		seqRepo:     seqRepo,
		yearRepo:    yearRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// resolveOpenFiscalYear finds the fiscal year covering date and verifies it
// accepts new entries.
func (s *postingService) resolveOpenFiscalYear(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	fy, err := s.yearRepo.FindFiscalYearForDate(ctx, date)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: no fiscal year covers date %s", apperrors.ErrValidation, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to resolve fiscal year: %w", err)
	}
	if fy.Status == domain.FiscalYearClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is closed", apperrors.ErrConflict, fy.Code)
	}
	return fy, nil
}

// createAndPost runs one compound create-then-post for a spec, reporting a
// tri-state outcome. A missing chart code is a configuration gap: the leg is
// skipped with a warning and the triggering business operation still
// succeeds.
func (s *postingService) createAndPost(ctx context.Context, spec entrySpec, userID string) domain.PostingOutcome {
	logger := middleware.GetLoggerFromCtx(ctx)

	if spec.amount.LessThanOrEqual(decimal.Zero) {
		return domain.PostingOutcome{
			TransactionType: spec.txnType,
			Status:          domain.PostingSkipped,
			Reason:          "nothing to post: amount is not positive",
		}
	}

	debitAcc, err := s.accountRepo.FindAccountByCode(ctx, spec.debitCode)
	if err != nil {
		return s.accountLookupOutcome(logger, spec, spec.debitCode, err)
	}
	creditAcc, err := s.accountRepo.FindAccountByCode(ctx, spec.creditCode)
	if err != nil {
		return s.accountLookupOutcome(logger, spec, spec.creditCode, err)
	}

	entry, err := s.createDraft(ctx, spec, debitAcc.AccountID, creditAcc.AccountID, userID)
	if err != nil {
		logger.Error("Failed to create draft entry", slog.String("transaction_type", string(spec.txnType)), slog.String("error", err.Error()))
		return domain.PostingOutcome{TransactionType: spec.txnType, Status: domain.PostingFailed, Reason: err.Error()}
	}

	if err := s.postEntry(ctx, entry.EntryID, userID); err != nil {
		logger.Error("Failed to post entry", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return domain.PostingOutcome{TransactionType: spec.txnType, Status: domain.PostingFailed, Reason: err.Error()}
	}

	posted, err := s.entryRepo.FindEntryByID(ctx, entry.EntryID)
	if err != nil {
		// The posting committed; failing the re-read must not fail the event.
		logger.Warn("Posted entry could not be re-read", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		posted = entry
	}
	logger.Info("Journal entry posted",
		slog.String("entry_number", posted.EntryNumber),
		slog.String("transaction_type", string(spec.txnType)),
		slog.String("amount", spec.amount.String()),
	)
	return domain.PostingOutcome{TransactionType: spec.txnType, Status: domain.PostingPosted, Entry: posted}
}

func (s *postingService) accountLookupOutcome(logger *slog.Logger, spec entrySpec, code string, err error) domain.PostingOutcome {
	if isNotFound(err) {
		logger.Warn("Chart of accounts code not configured, skipping entry",
			slog.String("account_code", code),
			slog.String("transaction_type", string(spec.txnType)),
		)
		return domain.PostingOutcome{
			TransactionType: spec.txnType,
			Status:          domain.PostingSkipped,
			Reason:          fmt.Sprintf("account code %s not configured", code),
		}
	}
	return domain.PostingOutcome{TransactionType: spec.txnType, Status: domain.PostingFailed, Reason: err.Error()}
}

// createDraft allocates the next entry number and persists a DRAFT entry.
func (s *postingService) createDraft(ctx context.Context, spec entrySpec, debitAccountID, creditAccountID, userID string) (*domain.JournalEntry, error) {
	fy, err := s.resolveOpenFiscalYear(ctx, spec.date)
	if err != nil {
		return nil, err
	}

	ticket, err := s.seqRepo.Next(ctx, entrySequence)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryNumber:     formatEntryNumber(ticket),
		EntryDate:       spec.date,
		Description:     spec.description,
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Amount:          spec.amount,
		TransactionType: spec.txnType,
		Status:          domain.Draft,
		FiscalYearID:    fy.FiscalYearID,
		BookingID:       spec.bookingID,
		InvoiceID:       spec.invoiceID,
		ReceiptID:       spec.receiptID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := accounting.ValidateEntryAccounts(entry.DebitAccountID, entry.CreditAccountID, entry.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}
	return &entry, nil
}

// postEntry applies a DRAFT entry to both account balances and marks it
// POSTED. The three mutations run in one database transaction: the rows of
// both accounts are locked, debit/credit balances and signed deltas applied,
// and the status flipped under a DRAFT guard so a second posting of the same
// entry fails and changes nothing.
func (s *postingService) postEntry(ctx context.Context, entryID string, userID string) error {
	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin posting transaction: %w", err)
	}
	defer s.entryRepo.Rollback(ctx, tx)

	entry, err := s.entryRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return fmt.Errorf("failed to load entry %s for posting: %w", entryID, err)
	}
	if entry.Status == domain.Posted {
		return fmt.Errorf("%w: entry %s is already posted", apperrors.ErrConflict, entry.EntryNumber)
	}

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{entry.DebitAccountID, entry.CreditAccountID})
	if err != nil {
		return fmt.Errorf("failed to lock accounts for posting: %w", err)
	}
	debitAcc, ok := accounts[entry.DebitAccountID]
	if !ok {
		return fmt.Errorf("%w: debit account %s", apperrors.ErrNotFound, entry.DebitAccountID)
	}
	creditAcc, ok := accounts[entry.CreditAccountID]
	if !ok {
		return fmt.Errorf("%w: credit account %s", apperrors.ErrNotFound, entry.CreditAccountID)
	}

	debitDelta, err := accounting.SignedBalanceDelta(debitAcc.AccountType, accounting.DebitSide, entry.Amount)
	if err != nil {
		return fmt.Errorf("failed to compute debit delta: %w", err)
	}
	creditDelta, err := accounting.SignedBalanceDelta(creditAcc.AccountType, accounting.CreditSide, entry.Amount)
	if err != nil {
		return fmt.Errorf("failed to compute credit delta: %w", err)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.ApplyPostingInTx(ctx, tx, entry.DebitAccountID, entry.CreditAccountID, entry.Amount, debitDelta, creditDelta, userID, now); err != nil {
		return fmt.Errorf("failed to apply posting to account balances: %w", err)
	}
	if err := s.entryRepo.MarkEntryPostedInTx(ctx, tx, entryID, now, userID); err != nil {
		return fmt.Errorf("failed to mark entry posted: %w", err)
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit posting for entry %s: %w", entryID, err)
	}
	return nil
}

// CreateAndPostBookingEntries posts the supplier-cost side of a booking. The
// booking's AED amounts are derived through the currency converter when the
// caller did not supply them.
func (s *postingService) CreateAndPostBookingEntries(ctx context.Context, booking domain.Booking, userID string) ([]domain.PostingOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := booking.Service.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if booking.Status == domain.BookingCancelled {
		return []domain.PostingOutcome{{
			TransactionType: domain.BookingCost,
			Status:          domain.PostingSkipped,
			Reason:          "cancelled bookings post no entries",
		}}, nil
	}

	booking, err := s.fillAEDAmounts(ctx, booking)
	if err != nil {
		return nil, err
	}

	spec := entrySpec{
		txnType:     domain.BookingCost,
		debitCode:   domain.AccountCodeCostOfSales,
		creditCode:  domain.AccountCodeSupplierPayables,
		amount:      finance.Round2(booking.CostInAED),
		date:        time.Now().UTC(),
		description: fmt.Sprintf("Supplier cost for booking %s", booking.BookingNumber),
		bookingID:   &booking.BookingID,
	}
	if booking.Status == domain.BookingRefunded {
		// A refund recovers the cost, so the legs swap.
		spec.debitCode, spec.creditCode = spec.creditCode, spec.debitCode
		spec.description = fmt.Sprintf("Supplier cost refund for booking %s", booking.BookingNumber)
	}

	outcome := s.createAndPost(ctx, spec, userID)
	logger.Info("Booking entries processed",
		slog.String("booking_number", booking.BookingNumber),
		slog.String("cost_outcome", string(outcome.Status)),
	)
	return []domain.PostingOutcome{outcome}, nil
}

// fillAEDAmounts converts the raw cost/sale amounts into AED when the caller
// left the converted fields empty.
func (s *postingService) fillAEDAmounts(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	if booking.CostInAED.IsZero() && !booking.CostAmount.IsZero() {
		costAED, err := s.currencySvc.Convert(ctx, booking.CostAmount, booking.CostCurrency, domain.PivotCurrency)
		if err != nil {
			return booking, fmt.Errorf("failed to convert booking cost: %w", err)
		}
		booking.CostInAED = costAED
	}
	if booking.SaleInAED.IsZero() && !booking.SaleAmount.IsZero() {
		saleAED, err := s.currencySvc.Convert(ctx, booking.SaleAmount, booking.SaleCurrency, domain.PivotCurrency)
		if err != nil {
			return booking, fmt.Errorf("failed to convert booking sale: %w", err)
		}
		booking.SaleInAED = saleAED
	}
	return booking, nil
}

// CreateAndPostInvoiceEntries posts the revenue entry and, when VAT applies,
// the VAT entry for an invoice. UAE invoices carry VAT-inclusive amounts so
// VAT is extracted out of the total; non-UAE invoices are VAT-exclusive so
// VAT is added on top. Entries post in a fixed order: revenue, then VAT.
func (s *postingService) CreateAndPostInvoiceEntries(ctx context.Context, invoice domain.Invoice, userID string) ([]domain.PostingOutcome, error) {
	if invoice.AmountInAED.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation)
	}

	rate := invoice.VATRate
	if rate.IsZero() {
		rate = finance.DefaultVATRate
	}

	revenueAmount := invoice.AmountInAED
	vatAmount := decimal.Zero
	vatType := domain.InvoiceVATNonUAE
	if invoice.VATApplicable {
		if invoice.IsUAEInvoice {
			divisor := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100)))
			revenueAmount = finance.Round2(invoice.AmountInAED.Div(divisor))
			vatAmount = invoice.AmountInAED.Sub(revenueAmount)
			vatType = domain.InvoiceVATUAE
		} else {
			vatAmount = finance.Round2(invoice.AmountInAED.Mul(rate).Div(decimal.NewFromInt(100)))
		}
	}

	outcomes := make([]domain.PostingOutcome, 0, 2)
	outcomes = append(outcomes, s.createAndPost(ctx, entrySpec{
		txnType:     domain.InvoiceRevenue,
		debitCode:   domain.AccountCodeReceivables,
		creditCode:  domain.AccountCodeSalesRevenue,
		amount:      revenueAmount,
		date:        invoice.InvoiceDate,
		description: fmt.Sprintf("Revenue for invoice %s", invoice.InvoiceNumber),
		invoiceID:   &invoice.InvoiceID,
		bookingID:   invoice.BookingID,
	}, userID))

	if invoice.VATApplicable && vatAmount.GreaterThan(decimal.Zero) {
		outcomes = append(outcomes, s.createAndPost(ctx, entrySpec{
			txnType:     vatType,
			debitCode:   domain.AccountCodeReceivables,
			creditCode:  domain.AccountCodeVATPayable,
			amount:      vatAmount,
			date:        invoice.InvoiceDate,
			description: fmt.Sprintf("VAT for invoice %s", invoice.InvoiceNumber),
			invoiceID:   &invoice.InvoiceID,
			bookingID:   invoice.BookingID,
		}, userID))
	}
	return outcomes, nil
}

// CreateAndPostReceiptEntry posts the payment entry for a customer receipt.
func (s *postingService) CreateAndPostReceiptEntry(ctx context.Context, receipt domain.Receipt, userID string) (domain.PostingOutcome, error) {
	if receipt.AmountInAED.LessThanOrEqual(decimal.Zero) {
		return domain.PostingOutcome{}, fmt.Errorf("%w: receipt amount must be positive", apperrors.ErrValidation)
	}
	return s.createAndPost(ctx, entrySpec{
		txnType:     domain.ReceiptPayment,
		debitCode:   domain.AccountCodeCashBank,
		creditCode:  domain.AccountCodeReceivables,
		amount:      finance.Round2(receipt.AmountInAED),
		date:        receipt.ReceiptDate,
		description: fmt.Sprintf("Payment received, receipt %s", receipt.ReceiptNumber),
		receiptID:   &receipt.ReceiptID,
		invoiceID:   receipt.InvoiceID,
	}, userID), nil
}

// CreateAndPostCommissionEntry posts the commission-expense entry for one
// role of a booking. The amount comes from the financial calculator on the
// booking's gross profit.
func (s *postingService) CreateAndPostCommissionEntry(ctx context.Context, booking domain.Booking, role domain.CommissionRole, userID string) (domain.PostingOutcome, error) {
	booking, err := s.fillAEDAmounts(ctx, booking)
	if err != nil {
		return domain.PostingOutcome{}, err
	}

	result := finance.Calculate(finance.Input{
		SaleInAED:           booking.SaleInAED,
		CostInAED:           booking.CostInAED,
		Status:              booking.Status,
		IsUAEBooking:        booking.IsUAEBooking,
		VATApplicable:       booking.VATApplicable,
		VATRate:             booking.VATRate,
		AgentCommissionRate: booking.AgentCommissionRate,
		CSCommissionRate:    booking.CSCommissionRate,
	})

	var amount decimal.Decimal
	var txnType domain.TransactionType
	switch role {
	case domain.RoleAgent:
		amount = result.Commission.AgentCommissionAmount
		txnType = domain.CommissionAgent
	case domain.RoleCS:
		amount = result.Commission.CSCommissionAmount
		txnType = domain.CommissionCS
	default:
		return domain.PostingOutcome{}, fmt.Errorf("%w: unknown commission role %q", apperrors.ErrValidation, role)
	}

	return s.createAndPost(ctx, entrySpec{
		txnType:     txnType,
		debitCode:   domain.AccountCodeCommissionExpense,
		creditCode:  domain.AccountCodeCommissionPayable,
		amount:      amount,
		date:        time.Now().UTC(),
		description: fmt.Sprintf("%s commission for booking %s", role, booking.BookingNumber),
		bookingID:   &booking.BookingID,
	}, userID), nil
}

// CreateAndPostManualEntry posts a manual entry. Unlike the automatic event
// postings this is a direct user operation, so a missing account is a fatal
// validation error rather than a skipped outcome, and both accounts must
// allow manual posting.
func (s *postingService) CreateAndPostManualEntry(ctx context.Context, req dto.ManualEntryRequest, userID string) (*domain.JournalEntry, error) {
	debitAcc, err := s.manualAccount(ctx, req.DebitAccountCode)
	if err != nil {
		return nil, err
	}
	creditAcc, err := s.manualAccount(ctx, req.CreditAccountCode)
	if err != nil {
		return nil, err
	}

	entry, err := s.createDraft(ctx, entrySpec{
		txnType:     domain.ManualEntry,
		amount:      req.Amount,
		date:        req.EntryDate,
		description: req.Description,
	}, debitAcc.AccountID, creditAcc.AccountID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.postEntry(ctx, entry.EntryID, userID); err != nil {
		return nil, err
	}
	return s.entryRepo.FindEntryByID(ctx, entry.EntryID)
}

func (s *postingService) manualAccount(ctx context.Context, code string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: account code %s not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to look up account %s: %w", code, err)
	}
	if !acc.AllowManualEntry {
		return nil, fmt.Errorf("%w: account %s does not allow manual entries", apperrors.ErrValidation, code)
	}
	if !acc.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, code)
	}
	return acc, nil
}

// GetEntryByID retrieves one journal entry.
func (s *postingService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntriesByFiscalYear retrieves the entries of one fiscal year.
func (s *postingService) ListEntriesByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := s.entryRepo.ListEntriesByFiscalYear(ctx, fiscalYearID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for fiscal year %s: %w", fiscalYearID, err)
	}
	return entries, nil
}
