package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalYearStatus indicates the lifecycle state of a fiscal year.
// The transition is one-way: OPEN -> CLOSED.
type FiscalYearStatus string

const (
	FiscalYearOpen   FiscalYearStatus = "OPEN"
	FiscalYearClosed FiscalYearStatus = "CLOSED"
)

// FiscalYear is an accounting period with its own journal entries,
// closeable independently of other periods. Date ranges never overlap
// across years and at most one year is current at a time.
type FiscalYear struct {
	FiscalYearID          string           `json:"fiscalYearID"` // Primary Key (UUID)
	Code                  string           `json:"code"`         // Unique short code (e.g. "FY2025")
	Name                  string           `json:"name"`
	StartDate             time.Time        `json:"startDate"`
	EndDate               time.Time        `json:"endDate"`
	Status                FiscalYearStatus `json:"status"`
	IsCurrent             bool             `json:"isCurrent"`
	ClosingNetIncome      *decimal.Decimal `json:"closingNetIncome,omitempty"` // Set when closed
	ClosedAt              *time.Time       `json:"closedAt,omitempty"`
	ClosedBy              string           `json:"closedBy,omitempty"`
	PreviousYearID        *string          `json:"previousYearID,omitempty"`
	NextYearID            *string          `json:"nextYearID,omitempty"`
	BalancesCarriedForward bool            `json:"balancesCarriedForward"`
	AuditFields
}

// Contains reports whether the given date falls within the year's range (inclusive).
func (fy FiscalYear) Contains(date time.Time) bool {
	return !date.Before(fy.StartDate) && !date.After(fy.EndDate)
}

// CloseSummary reports the result of closing a fiscal year.
type CloseSummary struct {
	FiscalYear     FiscalYear      `json:"fiscalYear"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	NetIncome      decimal.Decimal `json:"netIncome"`
	ClosingEntries []ClosingEntry  `json:"closingEntries"`
}

// OpeningBalanceSource records how an opening balance row came to exist.
type OpeningBalanceSource string

const (
	OpeningManual         OpeningBalanceSource = "MANUAL"
	OpeningCarriedForward OpeningBalanceSource = "CARRIED_FORWARD"
)

// OpeningBalance seeds one account's balance at the start of a fiscal year.
// One row per (fiscalYear, account) pair.
type OpeningBalance struct {
	OpeningBalanceID string               `json:"openingBalanceID"`
	FiscalYearID     string               `json:"fiscalYearID"`
	AccountID        string               `json:"accountID"`
	DebitBalance     decimal.Decimal      `json:"debitBalance"`
	CreditBalance    decimal.Decimal      `json:"creditBalance"`
	Balance          decimal.Decimal      `json:"balance"`
	Source           OpeningBalanceSource `json:"source"`
	AuditFields
}

// ClosingEntryType distinguishes the three kinds of period-close records.
type ClosingEntryType string

const (
	RevenueClose     ClosingEntryType = "REVENUE_CLOSE"
	ExpenseClose     ClosingEntryType = "EXPENSE_CLOSE"
	RetainedEarnings ClosingEntryType = "RETAINED_EARNINGS"
)

// ClosingEntry documents how a fiscal year's temporary accounts were zeroed
// into retained earnings. Closing entries are append-only bookkeeping of the
// close computation; they are never re-posted to the live ledger.
type ClosingEntry struct {
	ClosingEntryID  string           `json:"closingEntryID"`
	FiscalYearID    string           `json:"fiscalYearID"`
	EntryType       ClosingEntryType `json:"entryType"`
	DebitAccountID  string           `json:"debitAccountID"`
	CreditAccountID string           `json:"creditAccountID"`
	Amount          decimal.Decimal  `json:"amount"`
	AuditFields
}
