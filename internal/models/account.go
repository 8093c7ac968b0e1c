package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the database row shape of one chart-of-accounts node.
// ParentAccountID uses string for the nullable self-referencing FK.
type Account struct {
	AccountID        string          `db:"account_id"`
	Code             string          `db:"code"`
	Name             string          `db:"name"`
	AccountType      AccountType     `db:"account_type"`
	CurrencyCode     string          `db:"currency_code"`
	ParentAccountID  string          `db:"parent_account_id"` // Nullable
	DebitBalance     decimal.Decimal `db:"debit_balance"`
	CreditBalance    decimal.Decimal `db:"credit_balance"`
	Balance          decimal.Decimal `db:"balance"`
	AllowManualEntry bool            `db:"allow_manual_entry"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}
