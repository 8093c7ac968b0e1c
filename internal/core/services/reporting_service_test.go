package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
	ctx               context.Context
	from              time.Time
	to                time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
	suite.ctx = context.Background()
	suite.from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_Balanced() {
	rows := []domain.TrialBalanceRow{
		{AccountID: "acc-cash", AccountCode: "1101", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountID: "acc-rev", AccountCode: "4101", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceRows", suite.ctx, suite.from, suite.to).Return(rows, nil).Once()

	tb, err := suite.service.GetTrialBalance(suite.ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Len(tb.Rows, 2)
	suite.True(decimal.NewFromInt(500).Equal(tb.TotalDebit), "debit: %s", tb.TotalDebit)
	suite.True(decimal.NewFromInt(500).Equal(tb.TotalCredit), "credit: %s", tb.TotalCredit)
	suite.True(tb.IsBalanced)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_UnbalancedIsReportedNotCorrected() {
	rows := []domain.TrialBalanceRow{
		{AccountID: "acc-cash", AccountCode: "1101", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountID: "acc-rev", AccountCode: "4101", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(499)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceRows", suite.ctx, suite.from, suite.to).Return(rows, nil).Once()

	tb, err := suite.service.GetTrialBalance(suite.ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.False(tb.IsBalanced)
	suite.True(decimal.NewFromInt(500).Equal(tb.TotalDebit))
	suite.True(decimal.NewFromInt(499).Equal(tb.TotalCredit))
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_EmptyRangeIsBalanced() {
	suite.mockReportingRepo.On("GetTrialBalanceRows", suite.ctx, suite.from, suite.to).Return([]domain.TrialBalanceRow{}, nil).Once()

	tb, err := suite.service.GetTrialBalance(suite.ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Empty(tb.Rows)
	suite.True(tb.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_EndBeforeStartFails() {
	_, err := suite.service.GetTrialBalance(suite.ctx, suite.to, suite.from)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetTrialBalanceRows")
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_RepositoryErrorPropagates() {
	suite.mockReportingRepo.On("GetTrialBalanceRows", suite.ctx, suite.from, suite.to).Return(nil, errors.New("db down")).Once()

	_, err := suite.service.GetTrialBalance(suite.ctx, suite.from, suite.to)

	suite.Error(err)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
