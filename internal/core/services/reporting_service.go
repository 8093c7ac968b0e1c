package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/middleware"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new read-only reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetTrialBalance sums debit and credit legs per account over [from, to].
// An unbalanced result is reported, never corrected: every posted entry
// debits and credits the same amount, so inequality means data corruption
// upstream.
func (s *reportingService) GetTrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report range end precedes start", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance rows: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	tb := &domain.TrialBalance{
		From:        from,
		To:          to,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsBalanced:  totalDebit.Equal(totalCredit),
	}
	if !tb.IsBalanced {
		middleware.GetLoggerFromCtx(ctx).Error("Trial balance does not balance",
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()),
		)
	}
	return tb, nil
}
