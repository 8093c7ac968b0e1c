package domain

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

// Account represents one node of the chart-of-accounts tree.
// Accounts are seeded once, mutated only by posting, and never deleted;
// retiring an account means deactivating it.
type Account struct {
	AccountID        string          `json:"accountID"`        // Primary Key (UUID)
	Code             string          `json:"code"`             // Chart code, unique (e.g. "1201")
	Name             string          `json:"name"`             // Display name
	AccountType      AccountType     `json:"accountType"`      // ASSET, LIABILITY, etc.
	CurrencyCode     string          `json:"currencyCode"`     // Account currency (AED for the seeded chart)
	ParentAccountID  string          `json:"parentAccountID"`  // Nullable self-referencing FK (tree, root = empty)
	DebitBalance     decimal.Decimal `json:"debitBalance"`     // Lifetime sum of debit legs
	CreditBalance    decimal.Decimal `json:"creditBalance"`    // Lifetime sum of credit legs
	Balance          decimal.Decimal `json:"balance"`          // Derived: see BalanceOf
	AllowManualEntry bool            `json:"allowManualEntry"` // Whether manual journal entries may target it
	IsActive         bool            `json:"isActive"`         // Soft-deactivation flag
	AuditFields
}

// IncreasesWithDebit reports whether a debit increases the balance of this
// account type. ASSET/EXPENSE grow on the debit side, the rest on the credit side.
func (t AccountType) IncreasesWithDebit() bool {
	return t == Asset || t == Expense
}

// BalanceOf derives the account balance from its debit/credit totals under the
// standard sign convention:
// ASSET/EXPENSE: debit - credit; LIABILITY/EQUITY/REVENUE: credit - debit.
func BalanceOf(t AccountType, debitBalance, creditBalance decimal.Decimal) decimal.Decimal {
	if t.IncreasesWithDebit() {
		return debitBalance.Sub(creditBalance)
	}
	return creditBalance.Sub(debitBalance)
}
