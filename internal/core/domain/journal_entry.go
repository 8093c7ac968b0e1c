package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// TransactionType tags the business event a journal entry records.
type TransactionType string

const (
	BookingCost      TransactionType = "BOOKING_COST"
	InvoiceRevenue   TransactionType = "INVOICE_REVENUE"
	InvoiceVATUAE    TransactionType = "INVOICE_VAT_UAE"
	InvoiceVATNonUAE TransactionType = "INVOICE_VAT_NON_UAE"
	ReceiptPayment   TransactionType = "RECEIPT_PAYMENT"
	CommissionAgent  TransactionType = "COMMISSION_AGENT"
	CommissionCS     TransactionType = "COMMISSION_CS"
	ManualEntry      TransactionType = "MANUAL"
)

// JournalEntry is one debit/credit pair recording a single accounting event.
// A single amount is applied identically to both legs, so every entry is
// balanced by construction. Once POSTED an entry is immutable.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`     // Primary Key (UUID)
	EntryNumber     string          `json:"entryNumber"` // Unique, strictly increasing, "JE-NNNNNN"
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"` // Positive; shared by both legs
	TransactionType TransactionType `json:"transactionType"`
	Status          EntryStatus     `json:"status"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
	FiscalYearID    string          `json:"fiscalYearID"`
	BookingID       *string         `json:"bookingID,omitempty"` // Back-reference to the triggering booking
	InvoiceID       *string         `json:"invoiceID,omitempty"`
	ReceiptID       *string         `json:"receiptID,omitempty"`
	AuditFields
}
