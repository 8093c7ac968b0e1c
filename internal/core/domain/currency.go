package domain

import (
	"github.com/shopspring/decimal"
)

// PivotCurrency is the currency all conversions are routed through.
const PivotCurrency = "AED"

// CurrencyRate expresses a currency's value relative to the pivot:
// 1 unit of CurrencyCode = RateToAED units of AED. The table is refreshed by
// an external rate-sync collaborator; the engine only reads it.
type CurrencyRate struct {
	CurrencyCode string          `json:"currencyCode"`
	RateToAED    decimal.Decimal `json:"rateToAED"`
	AuditFields
}
