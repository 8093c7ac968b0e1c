package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/marhaba-travel/agency_accounting/internal/core/domain"
	portsrepo "github.com/marhaba-travel/agency_accounting/internal/core/ports/repositories"
)

// MockAccountRepository mocks portsrepo.AccountRepositoryWithTx.
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	accounts, _ := args.Get(0).(map[string]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByTypes(ctx context.Context, types []domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, types)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	accounts, _ := args.Get(0).(map[string]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ApplyPostingInTx(ctx context.Context, tx pgx.Tx, debitAccountID, creditAccountID string, amount decimal.Decimal, debitDelta, creditDelta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, debitAccountID, creditAccountID, amount, debitDelta, creditDelta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockJournalEntryRepository mocks portsrepo.JournalEntryRepositoryWithTx.
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	entry, _ := args.Get(0).(*domain.JournalEntry)
	return entry, args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, fiscalYearID, limit, offset)
	entries, _ := args.Get(0).([]domain.JournalEntry)
	return entries, args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByBooking(ctx context.Context, bookingID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, bookingID)
	entries, _ := args.Get(0).([]domain.JournalEntry)
	return entries, args.Error(1)
}

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entryID)
	entry, _ := args.Get(0).(*domain.JournalEntry)
	return entry, args.Error(1)
}

func (m *MockJournalEntryRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string, postedAt time.Time, userID string) error {
	args := m.Called(ctx, tx, entryID, postedAt, userID)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) SumByAccountForFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, accountType domain.AccountType) ([]portsrepo.AccountPeriodTotal, error) {
	args := m.Called(ctx, tx, fiscalYearID, accountType)
	totals, _ := args.Get(0).([]portsrepo.AccountPeriodTotal)
	return totals, args.Error(1)
}

func (m *MockJournalEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockJournalEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockFiscalYearRepository mocks portsrepo.FiscalYearRepositoryWithTx.
type MockFiscalYearRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalYearRepositoryWithTx = (*MockFiscalYearRepository)(nil)

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	fy, _ := args.Get(0).(*domain.FiscalYear)
	return fy, args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByCode(ctx context.Context, code string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, code)
	fy, _ := args.Get(0).(*domain.FiscalYear)
	return fy, args.Error(1)
}

func (m *MockFiscalYearRepository) FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	args := m.Called(ctx)
	fy, _ := args.Get(0).(*domain.FiscalYear)
	return fy, args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	args := m.Called(ctx, date)
	fy, _ := args.Get(0).(*domain.FiscalYear)
	return fy, args.Error(1)
}

func (m *MockFiscalYearRepository) HasOverlappingFiscalYear(ctx context.Context, start, end time.Time) (bool, error) {
	args := m.Called(ctx, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	years, _ := args.Get(0).([]domain.FiscalYear)
	return years, args.Error(1)
}

func (m *MockFiscalYearRepository) ListOpeningBalances(ctx context.Context, fiscalYearID string) ([]domain.OpeningBalance, error) {
	args := m.Called(ctx, fiscalYearID)
	rows, _ := args.Get(0).([]domain.OpeningBalance)
	return rows, args.Error(1)
}

func (m *MockFiscalYearRepository) ListClosingEntries(ctx context.Context, fiscalYearID string) ([]domain.ClosingEntry, error) {
	args := m.Called(ctx, fiscalYearID)
	rows, _ := args.Get(0).([]domain.ClosingEntry)
	return rows, args.Error(1)
}

func (m *MockFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) ClearCurrentFlag(ctx context.Context, userID string, now time.Time) error {
	args := m.Called(ctx, userID, now)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) LinkYears(ctx context.Context, sourceID, targetID string, userID string, now time.Time) error {
	args := m.Called(ctx, sourceID, targetID, userID, now)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) ReplaceOpeningBalances(ctx context.Context, fiscalYearID string, rows []domain.OpeningBalance) error {
	args := m.Called(ctx, fiscalYearID, rows)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) SetBalancesCarriedForward(ctx context.Context, fiscalYearID string, userID string, now time.Time) error {
	args := m.Called(ctx, fiscalYearID, userID, now)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) CloseFiscalYearInTx(ctx context.Context, tx pgx.Tx, fiscalYearID string, netIncome decimal.Decimal, closedBy string, closedAt time.Time) error {
	args := m.Called(ctx, tx, fiscalYearID, netIncome, closedBy, closedAt)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) SaveClosingEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.ClosingEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockFiscalYearRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockSequenceRepository mocks portsrepo.SequenceRepository.
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MockRateRepository mocks portsrepo.RateRepository.
type MockRateRepository struct {
	mock.Mock
}

var _ portsrepo.RateRepository = (*MockRateRepository)(nil)

func (m *MockRateRepository) ListRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx)
	rates, _ := args.Get(0).([]domain.CurrencyRate)
	return rates, args.Error(1)
}

func (m *MockRateRepository) FindRate(ctx context.Context, currencyCode string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, currencyCode)
	rate, _ := args.Get(0).(*domain.CurrencyRate)
	return rate, args.Error(1)
}

// MockReportingRepository mocks portsrepo.ReportingRepository.
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceRows(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, from, to)
	rows, _ := args.Get(0).([]domain.TrialBalanceRow)
	return rows, args.Error(1)
}
