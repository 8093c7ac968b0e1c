package services

import (
	"context"
	"time"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
)

// ReportingSvcFacade serves read-only ledger reports.
type ReportingSvcFacade interface {
	// GetTrialBalance sums debit/credit per account over [from, to] and
	// asserts the ledger-wide balance law.
	GetTrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error)
}
