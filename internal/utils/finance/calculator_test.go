package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/marhaba-travel/agency_accounting/internal/utils/finance"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGrossProfit(t *testing.T) {
	t.Run("confirmed booking is sale minus cost", func(t *testing.T) {
		got := finance.GrossProfit(dec("5000"), dec("3000"), domain.BookingConfirmed)
		assert.True(t, dec("2000").Equal(got), "got %s", got)
	})

	t.Run("refunded booking inverts the sign", func(t *testing.T) {
		got := finance.GrossProfit(dec("5000"), dec("3000"), domain.BookingRefunded)
		assert.True(t, dec("-2000").Equal(got), "got %s", got)
	})
}

func TestCalculateCommission(t *testing.T) {
	result := finance.CalculateCommission(dec("2000"), dec("3"), dec("2"))

	assert.True(t, dec("60").Equal(result.AgentCommissionAmount), "agent: %s", result.AgentCommissionAmount)
	assert.True(t, dec("40").Equal(result.CSCommissionAmount), "cs: %s", result.CSCommissionAmount)
	assert.True(t, dec("100").Equal(result.TotalCommission), "total: %s", result.TotalCommission)
	assert.True(t, dec("1900").Equal(result.ProfitAfterCommission), "after: %s", result.ProfitAfterCommission)
}

func TestCalculate_UAEBookingExtractsVAT(t *testing.T) {
	// UAE sale prices are VAT inclusive: a 1050 sale at 5% is 1000 net + 50 VAT.
	result := finance.Calculate(finance.Input{
		SaleInAED:     dec("1050"),
		CostInAED:     dec("0"),
		Status:        domain.BookingConfirmed,
		IsUAEBooking:  true,
		VATApplicable: true,
		VATRate:       dec("5"),
	})

	assert.True(t, dec("1000").Equal(result.VAT.NetBeforeVAT), "net: %s", result.VAT.NetBeforeVAT)
	assert.True(t, dec("50").Equal(result.VAT.VATAmount), "vat: %s", result.VAT.VATAmount)
	assert.True(t, dec("1050").Equal(result.VAT.TotalWithVAT), "total: %s", result.VAT.TotalWithVAT)
	// Extraction does not reduce profit a second time.
	assert.True(t, dec("1050").Equal(result.VAT.NetProfit), "profit: %s", result.VAT.NetProfit)
}

func TestCalculate_NonUAEBookingAddsVATOnProfit(t *testing.T) {
	// Non-UAE: gross profit 1000, agent commission 20% = 200, VAT 5% on the
	// remaining 800 = 40, net profit 760.
	result := finance.Calculate(finance.Input{
		SaleInAED:           dec("1000"),
		CostInAED:           dec("0"),
		Status:              domain.BookingConfirmed,
		IsUAEBooking:        false,
		VATApplicable:       true,
		VATRate:             dec("5"),
		AgentCommissionRate: dec("20"),
	})

	require.True(t, dec("200").Equal(result.Commission.AgentCommissionAmount), "commission: %s", result.Commission.AgentCommissionAmount)
	assert.True(t, dec("800").Equal(result.Commission.ProfitAfterCommission), "after commission: %s", result.Commission.ProfitAfterCommission)
	assert.True(t, dec("40").Equal(result.VAT.VATAmount), "vat: %s", result.VAT.VATAmount)
	assert.True(t, dec("1040").Equal(result.VAT.TotalWithVAT), "total: %s", result.VAT.TotalWithVAT)
	assert.True(t, dec("760").Equal(result.VAT.NetProfit), "net profit: %s", result.VAT.NetProfit)
	assert.True(t, dec("76").Equal(result.ProfitMarginPercent), "margin: %s", result.ProfitMarginPercent)
}

func TestCalculate_DefaultsVATRateWhenUnset(t *testing.T) {
	result := finance.Calculate(finance.Input{
		SaleInAED:     dec("1050"),
		Status:        domain.BookingConfirmed,
		IsUAEBooking:  true,
		VATApplicable: true,
	})

	assert.True(t, dec("50").Equal(result.VAT.VATAmount), "vat: %s", result.VAT.VATAmount)
}

func TestCalculate_NoVATWhenNotApplicable(t *testing.T) {
	result := finance.Calculate(finance.Input{
		SaleInAED:     dec("1000"),
		CostInAED:     dec("600"),
		Status:        domain.BookingConfirmed,
		VATApplicable: false,
	})

	assert.True(t, result.VAT.VATAmount.IsZero())
	assert.True(t, dec("400").Equal(result.VAT.NetProfit), "profit: %s", result.VAT.NetProfit)
	assert.True(t, dec("40").Equal(result.ProfitMarginPercent), "margin: %s", result.ProfitMarginPercent)
}

func TestCalculate_IsDeterministic(t *testing.T) {
	in := finance.Input{
		SaleInAED:           dec("1234.56"),
		CostInAED:           dec("789.01"),
		Status:              domain.BookingConfirmed,
		IsUAEBooking:        false,
		VATApplicable:       true,
		VATRate:             dec("5"),
		AgentCommissionRate: dec("3"),
		CSCommissionRate:    dec("2"),
	}

	first := finance.Calculate(in)
	second := finance.Calculate(in)
	assert.Equal(t, first, second)
}

func TestProfitMargin_ZeroSaleYieldsZero(t *testing.T) {
	result := finance.Calculate(finance.Input{
		SaleInAED: decimal.Zero,
		CostInAED: dec("100"),
		Status:    domain.BookingConfirmed,
	})
	assert.True(t, result.ProfitMarginPercent.IsZero())
}

func TestSummarize(t *testing.T) {
	inputs := []finance.Input{
		{SaleInAED: dec("1000"), CostInAED: dec("600"), Status: domain.BookingConfirmed},
		{SaleInAED: dec("2000"), CostInAED: dec("1500"), Status: domain.BookingConfirmed},
	}

	results, summary := finance.Summarize(inputs)

	require.Len(t, results, 2)
	assert.Equal(t, 2, summary.BookingCount)
	assert.True(t, dec("2100").Equal(summary.TotalCost), "cost: %s", summary.TotalCost)
	assert.True(t, dec("3000").Equal(summary.TotalRevenue), "revenue: %s", summary.TotalRevenue)
	assert.True(t, dec("900").Equal(summary.TotalProfit), "profit: %s", summary.TotalProfit)
	assert.True(t, dec("30").Equal(summary.AverageProfitMargin), "margin: %s", summary.AverageProfitMargin)
}

func TestRound2(t *testing.T) {
	assert.True(t, dec("10.13").Equal(finance.Round2(dec("10.125"))))
	assert.True(t, dec("10.12").Equal(finance.Round2(dec("10.124"))))
}
