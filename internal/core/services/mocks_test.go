package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) ListAccounts(ctx context.Context, quarryID string) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, quarryID, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, quarryID, code string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.LedgerAccount) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, quarryID, accountID, updatedBy string) error {
	args := m.Called(ctx, quarryID, accountID, updatedBy)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, quarryID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, quarryID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindEntryBySource(ctx context.Context, quarryID string, kind domain.SourceKind, sourceID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, quarryID, kind, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, quarryID string, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, quarryID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListSourceKeys(ctx context.Context, quarryID string) ([]domain.SourceKey, error) {
	args := m.Called(ctx, quarryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceKey), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntries(ctx context.Context, entries []domain.JournalEntry, linesByEntry map[string][]domain.JournalLine) error {
	args := m.Called(ctx, entries, linesByEntry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SetPosted(ctx context.Context, entryID string, posted bool, actorID string, at time.Time) error {
	args := m.Called(ctx, entryID, posted, actorID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) SoftDeleteEntry(ctx context.Context, entryID, actorID string, at time.Time) error {
	args := m.Called(ctx, entryID, actorID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) NextReferenceNumber(ctx context.Context, quarryID, prefix string, fiscalYear int) (int64, error) {
	args := m.Called(ctx, quarryID, prefix, fiscalYear)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepository = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, quarryID string, fiscalYear *int) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, quarryID, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, quarryID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriods(ctx context.Context, periods []domain.AccountingPeriod) error {
	args := m.Called(ctx, periods)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// --- Mock PeriodCloseChecker ---

type MockPeriodCloseChecker struct {
	mock.Mock
}

var _ portssvc.PeriodCloseChecker = (*MockPeriodCloseChecker)(nil)

func (m *MockPeriodCloseChecker) IsDateInClosedPeriod(ctx context.Context, quarryID string, date time.Time) (bool, error) {
	args := m.Called(ctx, quarryID, date)
	return args.Bool(0), args.Error(1)
}

// --- Mock SourceRepository ---

type MockSourceRepository struct {
	mock.Mock
}

var _ portsrepo.SourceReader = (*MockSourceRepository)(nil)

func (m *MockSourceRepository) ListSales(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, quarryID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSourceRepository) ListUnpaidSales(ctx context.Context, quarryID string, asOf time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, quarryID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSourceRepository) ListSalesPaidBetween(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, quarryID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSourceRepository) FindSaleByID(ctx context.Context, quarryID, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, quarryID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSourceRepository) ListExpenses(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, quarryID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockSourceRepository) ListBankings(ctx context.Context, quarryID string, from, to time.Time) ([]domain.BankingDeposit, error) {
	args := m.Called(ctx, quarryID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankingDeposit), args.Error(1)
}

func (m *MockSourceRepository) ListPrepayments(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Prepayment, error) {
	args := m.Called(ctx, quarryID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prepayment), args.Error(1)
}

// --- Mock QuarrySettingsRepository ---

type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.QuarrySettingsRepository = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) GetSettings(ctx context.Context, quarryID string) (*domain.QuarrySettings, error) {
	args := m.Called(ctx, quarryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuarrySettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.QuarrySettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock AccountMappingRepository ---

type MockMappingRepository struct {
	mock.Mock
}

var _ portsrepo.AccountMappingRepository = (*MockMappingRepository)(nil)

func (m *MockMappingRepository) RevenueCodeForProduct(ctx context.Context, quarryID, productName string) (string, error) {
	args := m.Called(ctx, quarryID, productName)
	return args.String(0), args.Error(1)
}

func (m *MockMappingRepository) ExpenseCodeForCategory(ctx context.Context, quarryID, category string) (string, error) {
	args := m.Called(ctx, quarryID, category)
	return args.String(0), args.Error(1)
}

func (m *MockMappingRepository) SaveMappings(ctx context.Context, quarryID string, productToRevenue, categoryToExpense map[string]string) error {
	args := m.Called(ctx, quarryID, productToRevenue, categoryToExpense)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, quarryID string, from, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, quarryID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetAccountBalanceSums(ctx context.Context, quarryID, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, quarryID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetLedgerLines(ctx context.Context, quarryID, accountID string, from, to time.Time) ([]domain.GeneralLedgerLine, error) {
	args := m.Called(ctx, quarryID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerLine), args.Error(1)
}
