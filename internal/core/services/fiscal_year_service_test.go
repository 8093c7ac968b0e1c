package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/marhaba-travel/agency_accounting/internal/apperrors"
	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/core/services"
	"github.com/marhaba-travel/agency_accounting/internal/dto"
)

type FiscalYearServiceTestSuite struct {
	suite.Suite
	mockYearRepo    *MockFiscalYearRepository
	mockEntryRepo   *MockJournalEntryRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.FiscalYearSvcFacade
	ctx             context.Context
}

func (suite *FiscalYearServiceTestSuite) SetupTest() {
	suite.mockYearRepo = new(MockFiscalYearRepository)
	suite.mockEntryRepo = new(MockJournalEntryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewFiscalYearService(suite.mockYearRepo, suite.mockEntryRepo, suite.mockAccountRepo)
	suite.ctx = context.Background()
}

func (suite *FiscalYearServiceTestSuite) year2025() *domain.FiscalYear {
	return &domain.FiscalYear{
		FiscalYearID: "fy-2025",
		Code:         "FY2025",
		Name:         "Fiscal Year 2025",
		StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.FiscalYearOpen,
		IsCurrent:    true,
	}
}

func (suite *FiscalYearServiceTestSuite) createRequest() dto.CreateFiscalYearRequest {
	return dto.CreateFiscalYearRequest{
		Code:      "FY2026",
		Name:      "Fiscal Year 2026",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *FiscalYearServiceTestSuite) TestOpenNew_Success() {
	req := suite.createRequest()
	suite.mockYearRepo.On("FindFiscalYearByCode", suite.ctx, "FY2026").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearRepo.On("HasOverlappingFiscalYear", suite.ctx, req.StartDate, req.EndDate).Return(false, nil).Once()
	suite.mockYearRepo.On("ClearCurrentFlag", suite.ctx, testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockYearRepo.On("SaveFiscalYear", suite.ctx, mock.AnythingOfType("domain.FiscalYear")).Return(nil).Once()

	fy, err := suite.service.OpenNew(suite.ctx, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(fy)
	suite.Equal("FY2026", fy.Code)
	suite.Equal(domain.FiscalYearOpen, fy.Status)
	suite.True(fy.IsCurrent)
	suite.mockYearRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestOpenNew_EndBeforeStartFails() {
	req := suite.createRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, -1)

	_, err := suite.service.OpenNew(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalYearServiceTestSuite) TestOpenNew_DuplicateCodeFails() {
	req := suite.createRequest()
	existing := suite.year2025()
	existing.Code = "FY2026"
	suite.mockYearRepo.On("FindFiscalYearByCode", suite.ctx, "FY2026").Return(existing, nil).Once()

	_, err := suite.service.OpenNew(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockYearRepo.AssertNotCalled(suite.T(), "SaveFiscalYear", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestOpenNew_OverlappingRangeConflicts() {
	req := suite.createRequest()
	suite.mockYearRepo.On("FindFiscalYearByCode", suite.ctx, "FY2026").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearRepo.On("HasOverlappingFiscalYear", suite.ctx, req.StartDate, req.EndDate).Return(true, nil).Once()

	_, err := suite.service.OpenNew(suite.ctx, req, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockYearRepo.AssertNotCalled(suite.T(), "SaveFiscalYear", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestOpenNew_CarriesForwardFromBaseYear() {
	source := suite.year2025()
	source.Status = domain.FiscalYearClosed

	req := suite.createRequest()
	req.BasedOnYearID = &source.FiscalYearID

	suite.mockYearRepo.On("FindFiscalYearByCode", suite.ctx, "FY2026").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearRepo.On("HasOverlappingFiscalYear", suite.ctx, req.StartDate, req.EndDate).Return(false, nil).Once()
	suite.mockYearRepo.On("ClearCurrentFlag", suite.ctx, testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockYearRepo.On("SaveFiscalYear", suite.ctx, mock.AnythingOfType("domain.FiscalYear")).Return(nil).Once()

	// Carry-forward re-reads both years by ID.
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, source.FiscalYearID).Return(source, nil).Once()
	target := &domain.FiscalYear{
		FiscalYearID: "fy-2026",
		Code:         "FY2026",
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.FiscalYearOpen,
	}
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, mock.AnythingOfType("string")).Return(target, nil).Once()

	cash := domain.Account{AccountID: "acc-cash", Code: domain.AccountCodeCashBank, AccountType: domain.Asset,
		DebitBalance: decimal.NewFromInt(8000), CreditBalance: decimal.NewFromInt(3000)}
	zeroed := domain.Account{AccountID: "acc-ap", Code: domain.AccountCodeSupplierPayables, AccountType: domain.Liability}
	suite.mockAccountRepo.On("ListAccountsByTypes", suite.ctx, mock.AnythingOfType("[]domain.AccountType")).
		Return([]domain.Account{cash, zeroed}, nil).Once()

	var carried []domain.OpeningBalance
	suite.mockYearRepo.On("ReplaceOpeningBalances", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]domain.OpeningBalance")).
		Run(func(args mock.Arguments) { carried = args.Get(2).([]domain.OpeningBalance) }).Return(nil).Once()
	suite.mockYearRepo.On("SetBalancesCarriedForward", suite.ctx, source.FiscalYearID, testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockYearRepo.On("LinkYears", suite.ctx, source.FiscalYearID, mock.AnythingOfType("string"), testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	fy, err := suite.service.OpenNew(suite.ctx, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(fy)
	suite.Require().Len(carried, 1, "zero-balance accounts must not carry forward")
	suite.Equal("acc-cash", carried[0].AccountID)
	suite.True(decimal.NewFromInt(5000).Equal(carried[0].Balance), "got %s", carried[0].Balance)
	suite.Equal(domain.OpeningCarriedForward, carried[0].Source)
	suite.mockYearRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) closeAccounts() (*domain.Account, *domain.Account) {
	incomeSummary := &domain.Account{AccountID: "acc-is", Code: domain.AccountCodeIncomeSummary, AccountType: domain.Equity}
	retained := &domain.Account{AccountID: "acc-re", Code: domain.AccountCodeRetainedEarnings, AccountType: domain.Equity}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, domain.AccountCodeIncomeSummary).Return(incomeSummary, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, domain.AccountCodeRetainedEarnings).Return(retained, nil).Once()
	return incomeSummary, retained
}

func (suite *FiscalYearServiceTestSuite) TestClose_ComputesNetIncomeAndClosingEntries() {
	fy := suite.year2025()
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, fy.FiscalYearID).Return(fy, nil).Once()
	incomeSummary, retained := suite.closeAccounts()

	suite.mockYearRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockYearRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)

	revenueTotals := []portsrepo.AccountPeriodTotal{{
		AccountID: "acc-rev", AccountCode: domain.AccountCodeSalesRevenue, AccountType: domain.Revenue,
		DebitTotal: decimal.Zero, CreditTotal: decimal.NewFromInt(50000),
	}}
	expenseTotals := []portsrepo.AccountPeriodTotal{{
		AccountID: "acc-cos", AccountCode: domain.AccountCodeCostOfSales, AccountType: domain.Expense,
		DebitTotal: decimal.NewFromInt(30000), CreditTotal: decimal.Zero,
	}}
	suite.mockEntryRepo.On("SumByAccountForFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, domain.Revenue).Return(revenueTotals, nil).Once()
	suite.mockEntryRepo.On("SumByAccountForFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, domain.Expense).Return(expenseTotals, nil).Once()

	var saved []domain.ClosingEntry
	suite.mockYearRepo.On("SaveClosingEntriesInTx", suite.ctx, mock.Anything, mock.AnythingOfType("[]domain.ClosingEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]domain.ClosingEntry) }).Return(nil).Once()
	suite.mockYearRepo.On("CloseFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, mock.Anything, testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockYearRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()

	summary, err := suite.service.Close(suite.ctx, fy.FiscalYearID, testUserID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(50000).Equal(summary.TotalRevenue), "revenue: %s", summary.TotalRevenue)
	suite.True(decimal.NewFromInt(30000).Equal(summary.TotalExpenses), "expenses: %s", summary.TotalExpenses)
	suite.True(decimal.NewFromInt(20000).Equal(summary.NetIncome), "net income: %s", summary.NetIncome)
	suite.Equal(domain.FiscalYearClosed, summary.FiscalYear.Status)

	suite.Require().Len(saved, 3)
	suite.Equal(domain.RevenueClose, saved[0].EntryType)
	suite.Equal("acc-rev", saved[0].DebitAccountID)
	suite.Equal(incomeSummary.AccountID, saved[0].CreditAccountID)
	suite.Equal(domain.ExpenseClose, saved[1].EntryType)
	suite.Equal(incomeSummary.AccountID, saved[1].DebitAccountID)
	suite.Equal("acc-cos", saved[1].CreditAccountID)
	// Profit: income summary is debited into retained earnings.
	suite.Equal(domain.RetainedEarnings, saved[2].EntryType)
	suite.Equal(incomeSummary.AccountID, saved[2].DebitAccountID)
	suite.Equal(retained.AccountID, saved[2].CreditAccountID)
	suite.True(decimal.NewFromInt(20000).Equal(saved[2].Amount))
	suite.mockYearRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestClose_LossSwapsRetainedEarningsLegs() {
	fy := suite.year2025()
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, fy.FiscalYearID).Return(fy, nil).Once()
	incomeSummary, retained := suite.closeAccounts()

	suite.mockYearRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockYearRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)

	revenueTotals := []portsrepo.AccountPeriodTotal{{
		AccountID: "acc-rev", AccountType: domain.Revenue,
		DebitTotal: decimal.Zero, CreditTotal: decimal.NewFromInt(10000),
	}}
	expenseTotals := []portsrepo.AccountPeriodTotal{{
		AccountID: "acc-cos", AccountType: domain.Expense,
		DebitTotal: decimal.NewFromInt(15000), CreditTotal: decimal.Zero,
	}}
	suite.mockEntryRepo.On("SumByAccountForFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, domain.Revenue).Return(revenueTotals, nil).Once()
	suite.mockEntryRepo.On("SumByAccountForFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, domain.Expense).Return(expenseTotals, nil).Once()

	var saved []domain.ClosingEntry
	suite.mockYearRepo.On("SaveClosingEntriesInTx", suite.ctx, mock.Anything, mock.AnythingOfType("[]domain.ClosingEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]domain.ClosingEntry) }).Return(nil).Once()
	suite.mockYearRepo.On("CloseFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, mock.Anything, testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockYearRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()

	summary, err := suite.service.Close(suite.ctx, fy.FiscalYearID, testUserID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(-5000).Equal(summary.NetIncome), "net income: %s", summary.NetIncome)

	suite.Require().Len(saved, 3)
	last := saved[2]
	suite.Equal(domain.RetainedEarnings, last.EntryType)
	suite.Equal(retained.AccountID, last.DebitAccountID)
	suite.Equal(incomeSummary.AccountID, last.CreditAccountID)
	suite.True(decimal.NewFromInt(5000).Equal(last.Amount), "got %s", last.Amount)
}

func (suite *FiscalYearServiceTestSuite) TestClose_AlreadyClosedConflicts() {
	fy := suite.year2025()
	fy.Status = domain.FiscalYearClosed
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, fy.FiscalYearID).Return(fy, nil).Once()

	_, err := suite.service.Close(suite.ctx, fy.FiscalYearID, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockYearRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestClose_ConcurrentCloseConflicts() {
	fy := suite.year2025()
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, fy.FiscalYearID).Return(fy, nil).Once()
	suite.closeAccounts()

	suite.mockYearRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockYearRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockEntryRepo.On("SumByAccountForFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, domain.Revenue).Return([]portsrepo.AccountPeriodTotal{}, nil).Once()
	suite.mockEntryRepo.On("SumByAccountForFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, domain.Expense).Return([]portsrepo.AccountPeriodTotal{}, nil).Once()
	suite.mockYearRepo.On("SaveClosingEntriesInTx", suite.ctx, mock.Anything, mock.AnythingOfType("[]domain.ClosingEntry")).Return(nil).Once()
	suite.mockYearRepo.On("CloseFiscalYearInTx", suite.ctx, mock.Anything, fy.FiscalYearID, mock.Anything, testUserID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.Close(suite.ctx, fy.FiscalYearID, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "closed concurrently")
	suite.mockYearRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestCarryForward_SourceNotClosedConflicts() {
	source := suite.year2025()
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, source.FiscalYearID).Return(source, nil).Once()

	_, err := suite.service.CarryForward(suite.ctx, source.FiscalYearID, "fy-2026", testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *FiscalYearServiceTestSuite) TestCarryForward_TargetMustStartAfterSourceEnds() {
	source := suite.year2025()
	source.Status = domain.FiscalYearClosed
	target := &domain.FiscalYear{
		FiscalYearID: "fy-overlap",
		Code:         "FY2025B",
		StartDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:       domain.FiscalYearOpen,
	}
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, source.FiscalYearID).Return(source, nil).Once()
	suite.mockYearRepo.On("FindFiscalYearByID", suite.ctx, target.FiscalYearID).Return(target, nil).Once()

	_, err := suite.service.CarryForward(suite.ctx, source.FiscalYearID, target.FiscalYearID, testUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalYearServiceTestSuite) TestGetCurrent() {
	fy := suite.year2025()
	suite.mockYearRepo.On("FindCurrentFiscalYear", suite.ctx).Return(fy, nil).Once()

	result, err := suite.service.GetCurrent(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(fy.FiscalYearID, result.FiscalYearID)
	suite.mockYearRepo.AssertExpectations(suite.T())
}

func TestFiscalYearServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalYearServiceTestSuite))
}
