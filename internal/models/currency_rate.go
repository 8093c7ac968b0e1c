package models

import (
	"github.com/shopspring/decimal"
)

// CurrencyRate is the database row shape of one conversion rate. RateToAED is
// the value of 1 unit of the currency expressed in AED.
type CurrencyRate struct {
	CurrencyCode string          `db:"currency_code"`
	RateToAED    decimal.Decimal `db:"rate_to_aed"`
	AuditFields
}
