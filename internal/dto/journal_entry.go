package dto

import (
	"time"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryResponse is the wire shape of a journal entry.
type JournalEntryResponse struct {
	EntryID         string          `json:"entryID"`
	EntryNumber     string          `json:"entryNumber"`
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Status          string          `json:"status"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
	FiscalYearID    string          `json:"fiscalYearID"`
}

// ToJournalEntryResponse converts a domain entry to its wire shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		DebitAccountID:  e.DebitAccountID,
		CreditAccountID: e.CreditAccountID,
		Amount:          e.Amount,
		TransactionType: string(e.TransactionType),
		Status:          string(e.Status),
		PostedAt:        e.PostedAt,
		FiscalYearID:    e.FiscalYearID,
	}
}

// ManualEntryRequest creates a manual journal entry against accounts that
// allow manual posting.
type ManualEntryRequest struct {
	EntryDate         time.Time       `json:"entryDate" binding:"required"`
	Description       string          `json:"description" binding:"required"`
	DebitAccountCode  string          `json:"debitAccountCode" binding:"required"`
	CreditAccountCode string          `json:"creditAccountCode" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"gt=0"`
}
