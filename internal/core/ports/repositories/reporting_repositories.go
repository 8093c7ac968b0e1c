package repositories

import (
	"context"
	"time"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
)

// ReportingRepository serves read-only reporting queries over posted entries.
type ReportingRepository interface {
	// GetTrialBalanceRows sums debit/credit legs per account over POSTED
	// entries whose entry_date falls in [from, to].
	GetTrialBalanceRows(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error)
}
