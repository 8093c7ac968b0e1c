package finance

import (
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultVATRate is the UAE standard VAT rate in percent, applied when the
// caller leaves the rate unset.
var DefaultVATRate = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// Input is the financial projection of one booking event. SaleInAED and
// CostInAED are already converted; IsUAEBooking is caller-supplied and is not
// re-derived here.
type Input struct {
	SaleInAED           decimal.Decimal
	CostInAED           decimal.Decimal
	Status              domain.BookingStatus
	IsUAEBooking        bool
	VATApplicable       bool
	VATRate             decimal.Decimal
	AgentCommissionRate decimal.Decimal
	CSCommissionRate    decimal.Decimal
}

// VATResult holds the VAT breakdown of one booking.
type VATResult struct {
	NetBeforeVAT decimal.Decimal `json:"netBeforeVAT"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	TotalWithVAT decimal.Decimal `json:"totalWithVAT"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// CommissionResult holds the commission breakdown of one booking.
type CommissionResult struct {
	AgentCommissionAmount decimal.Decimal `json:"agentCommissionAmount"`
	CSCommissionAmount    decimal.Decimal `json:"csCommissionAmount"`
	TotalCommission       decimal.Decimal `json:"totalCommission"`
	ProfitAfterCommission decimal.Decimal `json:"profitAfterCommission"`
}

// BookingFinancials is the full computed result for one booking event.
type BookingFinancials struct {
	VAT                 VATResult        `json:"vat"`
	Commission          CommissionResult `json:"commission"`
	ProfitMarginPercent decimal.Decimal  `json:"profitMarginPercent"`
}

// Round2 rounds a monetary amount to 2 decimal places. Results are rounded
// exactly once, at the point of computation, and never re-rounded downstream.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GrossProfit is sale minus cost for a confirmed booking. A refund recovers
// money, so the sign inverts for REFUNDED bookings.
func GrossProfit(saleInAED, costInAED decimal.Decimal, status domain.BookingStatus) decimal.Decimal {
	if status == domain.BookingRefunded {
		return Round2(costInAED.Sub(saleInAED))
	}
	return Round2(saleInAED.Sub(costInAED))
}

// CalculateCommission splits commission on gross profit between the agent and
// customer-service roles. Each amount is rounded independently.
func CalculateCommission(grossProfit, agentRate, csRate decimal.Decimal) CommissionResult {
	agentAmount := Round2(grossProfit.Mul(agentRate).Div(hundred))
	csAmount := Round2(grossProfit.Mul(csRate).Div(hundred))
	total := agentAmount.Add(csAmount)
	return CommissionResult{
		AgentCommissionAmount: agentAmount,
		CSCommissionAmount:    csAmount,
		TotalCommission:       total,
		ProfitAfterCommission: grossProfit.Sub(total),
	}
}

// Calculate computes the VAT and commission results for one booking event.
// Pure and deterministic: identical inputs always yield identical outputs.
//
// UAE bookings sell at VAT-inclusive prices, so VAT is extracted out of the
// sale amount and does not reduce profit again. Non-UAE bookings sell
// VAT-exclusive, so VAT is charged on the profit after commission and comes
// out of the net profit.
func Calculate(in Input) BookingFinancials {
	grossProfit := GrossProfit(in.SaleInAED, in.CostInAED, in.Status)
	commission := CalculateCommission(grossProfit, in.AgentCommissionRate, in.CSCommissionRate)

	vat := VATResult{
		NetBeforeVAT: in.SaleInAED,
		VATAmount:    decimal.Zero,
		TotalWithVAT: in.SaleInAED,
		GrossProfit:  grossProfit,
		NetProfit:    commission.ProfitAfterCommission,
	}

	if in.VATApplicable {
		rate := in.VATRate
		if rate.IsZero() {
			rate = DefaultVATRate
		}
		if in.IsUAEBooking {
			divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
			vat.NetBeforeVAT = Round2(in.SaleInAED.Div(divisor))
			vat.VATAmount = in.SaleInAED.Sub(vat.NetBeforeVAT)
			vat.TotalWithVAT = in.SaleInAED
			vat.NetProfit = commission.ProfitAfterCommission
		} else {
			vat.NetBeforeVAT = in.SaleInAED
			vat.VATAmount = Round2(commission.ProfitAfterCommission.Mul(rate).Div(hundred))
			vat.TotalWithVAT = in.SaleInAED.Add(vat.VATAmount)
			vat.NetProfit = commission.ProfitAfterCommission.Sub(vat.VATAmount)
		}
	}

	return BookingFinancials{
		VAT:                 vat,
		Commission:          commission,
		ProfitMarginPercent: profitMargin(vat.NetProfit, in.SaleInAED),
	}
}

func profitMargin(netProfit, saleInAED decimal.Decimal) decimal.Decimal {
	if saleInAED.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return Round2(netProfit.Div(saleInAED).Mul(hundred))
}

// Summary aggregates the financial results of a batch of bookings.
type Summary struct {
	TotalCost           decimal.Decimal `json:"totalCost"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalProfit         decimal.Decimal `json:"totalProfit"`
	TotalVAT            decimal.Decimal `json:"totalVAT"`
	TotalCommission     decimal.Decimal `json:"totalCommission"`
	AverageProfitMargin decimal.Decimal `json:"averageProfitMargin"`
	BookingCount        int             `json:"bookingCount"`
}

// Summarize computes per-booking financials and the batch totals in one pass.
func Summarize(inputs []Input) ([]BookingFinancials, Summary) {
	results := make([]BookingFinancials, len(inputs))
	var s Summary
	for i, in := range inputs {
		results[i] = Calculate(in)
		s.TotalCost = s.TotalCost.Add(in.CostInAED)
		s.TotalRevenue = s.TotalRevenue.Add(in.SaleInAED)
		s.TotalProfit = s.TotalProfit.Add(results[i].VAT.NetProfit)
		s.TotalVAT = s.TotalVAT.Add(results[i].VAT.VATAmount)
		s.TotalCommission = s.TotalCommission.Add(results[i].Commission.TotalCommission)
	}
	s.BookingCount = len(inputs)
	if s.TotalRevenue.GreaterThan(decimal.Zero) {
		s.AverageProfitMargin = Round2(s.TotalProfit.Div(s.TotalRevenue).Mul(hundred))
	}
	return results, s
}
