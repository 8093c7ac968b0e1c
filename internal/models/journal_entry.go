package models

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

// JournalEntry is the database row shape of one two-leg journal entry.
// BookingID/InvoiceID/ReceiptID are nullable back-references to the source
// business record.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryNumber     string          `db:"entry_number"`
	EntryDate       time.Time       `db:"entry_date"`
	Description     string          `db:"description"`
	DebitAccountID  string          `db:"debit_account_id"`
	CreditAccountID string          `db:"credit_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"`
	Status          EntryStatus     `db:"status"`
	PostedAt        *time.Time      `db:"posted_at"`
	FiscalYearID    string          `db:"fiscal_year_id"`
	BookingID       *string         `db:"booking_id"`
	InvoiceID       *string         `db:"invoice_id"`
	ReceiptID       *string         `db:"receipt_id"`
	AuditFields
}
