package repositories

import (
	"context"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
)

// RateRepository reads the currency rate table. The table is refreshed by an
// external rate-sync collaborator; the engine never writes it.
type RateRepository interface {
	// ListRates retrieves the full rate table.
	ListRates(ctx context.Context) ([]domain.CurrencyRate, error)

	// FindRate retrieves one currency's rate to the pivot.
	FindRate(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error)
}
