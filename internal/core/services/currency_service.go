package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/middleware"
	"github.com/shopspring/decimal"
)

// currencyService converts amounts between currency codes through the AED
// pivot. Rates express 1 unit of the foreign currency in AED, so conversion
// into the pivot multiplies and conversion out of it divides.
type currencyService struct {
	rateRepo portsrepo.RateRepository
}

// NewCurrencyService creates a new currency conversion service.
func NewCurrencyService(rateRepo portsrepo.RateRepository) portssvc.CurrencySvcFacade {
	return &currencyService{rateRepo: rateRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// Convert routes amount through the pivot: amount -> AED -> target. An
// unknown currency code returns the input unchanged; that fallback is
// deliberate so a missing rate never corrupts an amount silently. No rounding
// happens here; callers round once at the final booking-level calculation.
func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if fromCode == toCode {
		return amount, nil
	}

	inAED := amount
	if fromCode != domain.PivotCurrency {
		rate, ok, err := s.lookupRate(ctx, fromCode)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			logger.Warn("Unknown currency code, returning amount unchanged", slog.String("currency", fromCode))
			return amount, nil
		}
		inAED = amount.Mul(rate)
	}

	if toCode == domain.PivotCurrency {
		return inAED, nil
	}

	rate, ok, err := s.lookupRate(ctx, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		logger.Warn("Unknown currency code, returning amount unchanged", slog.String("currency", toCode))
		return amount, nil
	}
	if rate.IsZero() {
		return decimal.Zero, fmt.Errorf("rate for currency %s is zero", toCode)
	}
	return inAED.Div(rate), nil
}

// lookupRate fetches one currency's rate to the pivot. The boolean reports
// whether the currency is known at all.
func (s *currencyService) lookupRate(ctx context.Context, code string) (decimal.Decimal, bool, error) {
	rate, err := s.rateRepo.FindRate(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to look up rate for %s: %w", code, err)
	}
	return rate.RateToAED, true, nil
}

// ListRates returns the full rate table.
func (s *currencyService) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency rates: %w", err)
	}
	return rates, nil
}
