package services

import (
	"context"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade converts amounts between currency codes via the AED pivot.
type CurrencySvcFacade interface {
	// Convert converts amount from one currency code to another. Unknown
	// codes leave the amount unchanged.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)

	// ListRates retrieves the current rate table.
	ListRates(ctx context.Context) ([]domain.CurrencyRate, error)
}
