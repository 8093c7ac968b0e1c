package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	"github.com/marhaba-travel/agency_accounting/internal/models"
)

type PgxRateRepository struct {
	BaseRepository
}

// newPgxRateRepository creates a new read-only repository over the rate table.
func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepository {
	return &PgxRateRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RateRepository = (*PgxRateRepository)(nil)

func toDomainRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		CurrencyCode: m.CurrencyCode,
		RateToAED:    m.RateToAED,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ListRates retrieves the full rate table.
func (r *PgxRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	query := `
		SELECT currency_code, rate_to_aed, created_at, created_by, last_updated_at, last_updated_by
		FROM currency_rates
		ORDER BY currency_code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.CurrencyRate{}
	for rows.Next() {
		var m models.CurrencyRate
		if err := rows.Scan(&m.CurrencyCode, &m.RateToAED, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan currency rate row: %w", err)
		}
		rates = append(rates, toDomainRate(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating currency rate rows: %w", rows.Err())
	}
	return rates, nil
}

// FindRate retrieves one currency's rate to the pivot.
func (r *PgxRateRepository) FindRate(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	query := `
		SELECT currency_code, rate_to_aed, created_at, created_by, last_updated_at, last_updated_by
		FROM currency_rates
		WHERE currency_code = $1;
	`

	var m models.CurrencyRate
	err := r.Pool.QueryRow(ctx, query, currencyCode).Scan(&m.CurrencyCode, &m.RateToAED, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate for %s: %w", currencyCode, err)
	}
	d := toDomainRate(m)
	return &d, nil
}
