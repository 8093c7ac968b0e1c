package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalYearStatus indicates the lifecycle state of a fiscal year.
type FiscalYearStatus string

const (
	FiscalYearOpen   FiscalYearStatus = "OPEN"
	FiscalYearClosed FiscalYearStatus = "CLOSED"
)

// FiscalYear is the database row shape of one accounting period.
type FiscalYear struct {
	FiscalYearID           string           `db:"fiscal_year_id"`
	Code                   string           `db:"code"`
	Name                   string           `db:"name"`
	StartDate              time.Time        `db:"start_date"`
	EndDate                time.Time        `db:"end_date"`
	Status                 FiscalYearStatus `db:"status"`
	IsCurrent              bool             `db:"is_current"`
	ClosingNetIncome       *decimal.Decimal `db:"closing_net_income"`
	ClosedAt               *time.Time       `db:"closed_at"`
	ClosedBy               *string          `db:"closed_by"`
	PreviousYearID         *string          `db:"previous_year_id"`
	NextYearID             *string          `db:"next_year_id"`
	BalancesCarriedForward bool             `db:"balances_carried_forward"`
	AuditFields
}

// OpeningBalance is the database row shape of one carried or manual opening
// balance. Unique on (fiscal_year_id, account_id).
type OpeningBalance struct {
	OpeningBalanceID string          `db:"opening_balance_id"`
	FiscalYearID     string          `db:"fiscal_year_id"`
	AccountID        string          `db:"account_id"`
	DebitBalance     decimal.Decimal `db:"debit_balance"`
	CreditBalance    decimal.Decimal `db:"credit_balance"`
	Balance          decimal.Decimal `db:"balance"`
	Source           string          `db:"source"`
	AuditFields
}

// ClosingEntry is the database row shape of one period-close record.
type ClosingEntry struct {
	ClosingEntryID  string          `db:"closing_entry_id"`
	FiscalYearID    string          `db:"fiscal_year_id"`
	EntryType       string          `db:"entry_type"`
	DebitAccountID  string          `db:"debit_account_id"`
	CreditAccountID string          `db:"credit_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	AuditFields
}
