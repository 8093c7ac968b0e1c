package dto

import (
	"time"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFiscalYearRequest opens a new accounting period.
type CreateFiscalYearRequest struct {
	Code          string    `json:"code" binding:"required"`
	Name          string    `json:"name" binding:"required"`
	StartDate     time.Time `json:"startDate" binding:"required"`
	EndDate       time.Time `json:"endDate" binding:"required"`
	BasedOnYearID *string   `json:"basedOnYearID,omitempty" binding:"omitempty,uuid"`
}

// FiscalYearResponse is the wire shape of a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID           string           `json:"fiscalYearID"`
	Code                   string           `json:"code"`
	Name                   string           `json:"name"`
	StartDate              time.Time        `json:"startDate"`
	EndDate                time.Time        `json:"endDate"`
	Status                 string           `json:"status"`
	IsCurrent              bool             `json:"isCurrent"`
	ClosingNetIncome       *decimal.Decimal `json:"closingNetIncome,omitempty"`
	ClosedAt               *time.Time       `json:"closedAt,omitempty"`
	PreviousYearID         *string          `json:"previousYearID,omitempty"`
	NextYearID             *string          `json:"nextYearID,omitempty"`
	BalancesCarriedForward bool             `json:"balancesCarriedForward"`
}

// ToFiscalYearResponse converts a domain fiscal year to its wire shape.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID:           fy.FiscalYearID,
		Code:                   fy.Code,
		Name:                   fy.Name,
		StartDate:              fy.StartDate,
		EndDate:                fy.EndDate,
		Status:                 string(fy.Status),
		IsCurrent:              fy.IsCurrent,
		ClosingNetIncome:       fy.ClosingNetIncome,
		ClosedAt:               fy.ClosedAt,
		PreviousYearID:         fy.PreviousYearID,
		NextYearID:             fy.NextYearID,
		BalancesCarriedForward: fy.BalancesCarriedForward,
	}
}

// CloseFiscalYearResponse reports the close computation.
type CloseFiscalYearResponse struct {
	FiscalYear     FiscalYearResponse    `json:"fiscalYear"`
	TotalRevenue   decimal.Decimal       `json:"totalRevenue"`
	TotalExpenses  decimal.Decimal       `json:"totalExpenses"`
	NetIncome      decimal.Decimal       `json:"netIncome"`
	ClosingEntries []domain.ClosingEntry `json:"closingEntries"`
}

// CarryForwardResponse reports how many opening balance rows were seeded.
type CarryForwardResponse struct {
	SourceYearID string `json:"sourceYearID"`
	TargetYearID string `json:"targetYearID"`
	RowsCarried  int    `json:"rowsCarried"`
}
