package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/marhaba-travel/agency_accounting/internal/utils/accounting"
)

func TestSignedBalanceDelta(t *testing.T) {
	amount := decimal.NewFromInt(100)

	testCases := []struct {
		name        string
		accountType domain.AccountType
		side        accounting.Side
		expected    decimal.Decimal
	}{
		{"debit to asset increases", domain.Asset, accounting.DebitSide, amount},
		{"credit to asset decreases", domain.Asset, accounting.CreditSide, amount.Neg()},
		{"debit to expense increases", domain.Expense, accounting.DebitSide, amount},
		{"credit to expense decreases", domain.Expense, accounting.CreditSide, amount.Neg()},
		{"debit to liability decreases", domain.Liability, accounting.DebitSide, amount.Neg()},
		{"credit to liability increases", domain.Liability, accounting.CreditSide, amount},
		{"debit to equity decreases", domain.Equity, accounting.DebitSide, amount.Neg()},
		{"credit to equity increases", domain.Equity, accounting.CreditSide, amount},
		{"debit to revenue decreases", domain.Revenue, accounting.DebitSide, amount.Neg()},
		{"credit to revenue increases", domain.Revenue, accounting.CreditSide, amount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := accounting.SignedBalanceDelta(tc.accountType, tc.side, amount)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestSignedBalanceDelta_UnknownType(t *testing.T) {
	_, err := accounting.SignedBalanceDelta(domain.AccountType("BOGUS"), accounting.DebitSide, decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestValidateEntryAccounts(t *testing.T) {
	amount := decimal.NewFromInt(50)

	t.Run("valid entry passes", func(t *testing.T) {
		assert.NoError(t, accounting.ValidateEntryAccounts("acc-1", "acc-2", amount))
	})

	t.Run("zero amount fails", func(t *testing.T) {
		assert.Error(t, accounting.ValidateEntryAccounts("acc-1", "acc-2", decimal.Zero))
	})

	t.Run("negative amount fails", func(t *testing.T) {
		assert.Error(t, accounting.ValidateEntryAccounts("acc-1", "acc-2", amount.Neg()))
	})

	t.Run("same account on both legs fails", func(t *testing.T) {
		assert.Error(t, accounting.ValidateEntryAccounts("acc-1", "acc-1", amount))
	})

	t.Run("missing account fails", func(t *testing.T) {
		assert.Error(t, accounting.ValidateEntryAccounts("", "acc-2", amount))
	})
}

func TestBalanceOf(t *testing.T) {
	debit := decimal.NewFromInt(300)
	credit := decimal.NewFromInt(100)

	assert.True(t, decimal.NewFromInt(200).Equal(domain.BalanceOf(domain.Asset, debit, credit)))
	assert.True(t, decimal.NewFromInt(-200).Equal(domain.BalanceOf(domain.Revenue, debit, credit)))
}
