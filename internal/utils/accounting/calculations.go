package accounting

import (
	"fmt"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Side identifies which leg of a journal entry an account sits on.
type Side string

const (
	DebitSide  Side = "DEBIT"
	CreditSide Side = "CREDIT"
)

// SignedBalanceDelta applies the correct sign to an entry amount based on the
// account type and the side of the entry the account sits on. This is the one
// place the debit/credit convention lives:
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedBalanceDelta(accountType domain.AccountType, side Side, amount decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		if side == CreditSide {
			return amount.Neg(), nil
		}
		return amount, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		if side == DebitSide {
			return amount.Neg(), nil
		}
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateEntryAccounts checks the structural rules of a two-leg entry before
// it is persisted: positive amount and two distinct accounts.
func ValidateEntryAccounts(debitAccountID, creditAccountID string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("entry amount must be positive, got %s", amount.String())
	}
	if debitAccountID == "" || creditAccountID == "" {
		return fmt.Errorf("both debit and credit accounts are required")
	}
	if debitAccountID == creditAccountID {
		return fmt.Errorf("debit and credit accounts must differ")
	}
	return nil
}
