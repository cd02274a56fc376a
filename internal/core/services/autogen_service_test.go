package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type AutoGenServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockAccountRepo   *MockAccountRepository
	mockPeriodChecker *MockPeriodCloseChecker
	mockSourceRepo    *MockSourceRepository
	mockSettingsRepo  *MockSettingsRepository
	mockMappingRepo   *MockMappingRepository
	service           portssvc.AutoGenSvcFacade
	quarryID          string
	userID            string
	chart             []domain.LedgerAccount
	accountIDByCode   map[string]string
}

func (suite *AutoGenServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodChecker = new(MockPeriodCloseChecker)
	suite.mockSourceRepo = new(MockSourceRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockMappingRepo = new(MockMappingRepository)

	journalSvc := services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodChecker, "JE", "AJE")
	suite.service = services.NewAutoGenService(
		journalSvc, suite.mockJournalRepo, suite.mockAccountRepo,
		suite.mockSourceRepo, suite.mockSettingsRepo, suite.mockMappingRepo, "AJE")

	suite.quarryID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.chart = nil
	suite.accountIDByCode = make(map[string]string)
	for _, code := range []string{
		domain.CodeCash, domain.CodeBank, domain.CodeAccountsReceivable,
		domain.CodeCustomerDeposits, domain.CodeAccruedPayables,
		domain.CodeSalesRevenue, domain.CodeGeneralExpenses,
		domain.CodeCommissionExpense, domain.CodeLoadersFeeExpense, domain.CodeLandRateExpense,
	} {
		id := uuid.NewString()
		suite.accountIDByCode[code] = id
		suite.chart = append(suite.chart, domain.LedgerAccount{
			AccountID: id,
			QuarryID:  suite.quarryID,
			Code:      code,
			IsActive:  true,
		})
	}
}

// expectGenContext wires the chart, settings and mapping lookups the engine
// loads before building. Nil settings simulate an unprovisioned quarry.
func (suite *AutoGenServiceTestSuite) expectGenContext(settings *domain.QuarrySettings) {
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.quarryID).Return(suite.chart, nil).Once()
	if settings != nil {
		suite.mockSettingsRepo.On("GetSettings", mock.Anything, suite.quarryID).Return(settings, nil).Once()
	} else {
		suite.mockSettingsRepo.On("GetSettings", mock.Anything, suite.quarryID).Return(nil, apperrors.ErrNotFound).Once()
	}
	suite.mockMappingRepo.On("RevenueCodeForProduct", mock.Anything, suite.quarryID, mock.Anything).Return("", apperrors.ErrNotFound).Maybe()
	suite.mockMappingRepo.On("ExpenseCodeForCategory", mock.Anything, suite.quarryID, mock.Anything).Return("", apperrors.ErrNotFound).Maybe()
}

// lineFor finds the line hitting the account with the given code.
func (suite *AutoGenServiceTestSuite) lineFor(lines []domain.JournalLine, code string) *domain.JournalLine {
	for i := range lines {
		if lines[i].AccountID == suite.accountIDByCode[code] {
			return &lines[i]
		}
	}
	return nil
}

func (suite *AutoGenServiceTestSuite) paidSale(qty, price int64) domain.Sale {
	saleDate := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	return domain.Sale{
		SaleID:              uuid.NewString(),
		QuarryID:            suite.quarryID,
		SaleDate:            saleDate,
		VehicleReg:          "KCB 123X",
		ProductName:         "Ballast",
		Quantity:            decimal.NewFromInt(qty),
		PricePerUnit:        decimal.NewFromInt(price),
		Status:              domain.SalePaid,
		PaymentReceivedDate: &saleDate,
	}
}

// --- Single-shot generation ---

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_PaidDebitsCash() {
	ctx := context.Background()
	sale := suite.paidSale(10, 50)

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Auto, entry.EntryType)
	suite.True(entry.IsPosted)
	suite.Equal("AJE-2025-00001", entry.Reference)
	suite.Require().NotNil(entry.SourceType)
	suite.Equal(domain.SourceSale, *entry.SourceType)
	suite.Equal("Sale - KCB 123X - Ballast x 10", entry.Description)
	suite.Require().Len(entry.Lines, 2)

	cash := suite.lineFor(entry.Lines, domain.CodeCash)
	suite.Require().NotNil(cash)
	suite.True(cash.Debit.Equal(decimal.NewFromInt(500)))

	revenue := suite.lineFor(entry.Lines, domain.CodeSalesRevenue)
	suite.Require().NotNil(revenue)
	suite.True(revenue.Credit.Equal(decimal.NewFromInt(500)))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_IntradaySaleDateTruncatedToDay() {
	ctx := context.Background()
	sale := suite.paidSale(10, 50)
	sale.SaleDate = time.Date(2025, 5, 10, 16, 45, 0, 0, time.UTC)
	sale.PaymentReceivedDate = &sale.SaleDate

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), entry.EntryDate)
}

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_UnpaidDebitsReceivables() {
	ctx := context.Background()
	sale := suite.paidSale(10, 50)
	sale.Status = domain.SaleNotPaid
	sale.PaymentReceivedDate = nil

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(2), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	ar := suite.lineFor(entry.Lines, domain.CodeAccountsReceivable)
	suite.Require().NotNil(ar)
	suite.True(ar.Debit.Equal(decimal.NewFromInt(500)))
	suite.Nil(suite.lineFor(entry.Lines, domain.CodeCash))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_LeviesAccrue() {
	ctx := context.Background()
	sale := suite.paidSale(10, 50)
	sale.CommissionPerUnit = decimal.NewFromInt(2)
	sale.BrokerName = "Mwangi"
	settings := &domain.QuarrySettings{
		QuarryID:        suite.quarryID,
		LoadersFeeRate:  decimal.NewFromInt(3),
		LandRatePerUnit: decimal.NewFromInt(5),
	}

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(settings)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(3), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 8)

	commission := suite.lineFor(entry.Lines, domain.CodeCommissionExpense)
	suite.Require().NotNil(commission)
	suite.True(commission.Debit.Equal(decimal.NewFromInt(20)))
	suite.Equal("Commission for Mwangi", commission.Memo)

	loaders := suite.lineFor(entry.Lines, domain.CodeLoadersFeeExpense)
	suite.Require().NotNil(loaders)
	suite.True(loaders.Debit.Equal(decimal.NewFromInt(30)))

	landRate := suite.lineFor(entry.Lines, domain.CodeLandRateExpense)
	suite.Require().NotNil(landRate)
	suite.True(landRate.Debit.Equal(decimal.NewFromInt(50)))
	suite.Equal("Land rate", landRate.Memo)

	// All three levies accrue against the same payables account.
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(600)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(600)))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_RejectUsesRejectsFee() {
	ctx := context.Background()
	sale := suite.paidSale(10, 20)
	sale.IsReject = true
	settings := &domain.QuarrySettings{
		QuarryID:          suite.quarryID,
		LandRatePerUnit:   decimal.NewFromInt(5),
		RejectsFeePerUnit: decimal.NewFromInt(1),
	}

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(settings)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(4), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	landRate := suite.lineFor(entry.Lines, domain.CodeLandRateExpense)
	suite.Require().NotNil(landRate)
	suite.True(landRate.Debit.Equal(decimal.NewFromInt(10)))
	suite.Equal("Rejects fee", landRate.Memo)
}

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_MappedProductRevenue() {
	ctx := context.Background()
	sale := suite.paidSale(4, 100)

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.quarryID).Return(suite.chart, nil).Once()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, suite.quarryID).Return(nil, apperrors.ErrNotFound).Once()
	// Product maps to the general expenses slot for the sake of the lookup;
	// any chart code would do.
	suite.mockMappingRepo.On("RevenueCodeForProduct", mock.Anything, suite.quarryID, "Ballast").Return(domain.CodeGeneralExpenses, nil).Once()
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(5), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	mapped := suite.lineFor(entry.Lines, domain.CodeGeneralExpenses)
	suite.Require().NotNil(mapped)
	suite.True(mapped.Credit.Equal(decimal.NewFromInt(400)))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_Idempotent() {
	ctx := context.Background()
	sale := suite.paidSale(10, 50)
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), Reference: "AJE-2025-00001"}

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(existing, nil).Once()

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.EntryID, entry.EntryID)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutoGenServiceTestSuite) TestGenerateForSale_ZeroAmountNotApplicable() {
	ctx := context.Background()
	sale := suite.paidSale(0, 50)

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceSale, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)

	entry, err := suite.service.GenerateForSale(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutoGenServiceTestSuite) TestGenerateForExpense() {
	ctx := context.Background()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		QuarryID:    suite.quarryID,
		ExpenseDate: time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		Category:    "Fuel",
		Amount:      decimal.NewFromInt(120),
	}

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceExpense, expense.ExpenseID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(6), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForExpense(ctx, expense, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 2)

	// Unmapped category falls back to the general expenses account.
	exp := suite.lineFor(entry.Lines, domain.CodeGeneralExpenses)
	suite.Require().NotNil(exp)
	suite.True(exp.Debit.Equal(decimal.NewFromInt(120)))

	cash := suite.lineFor(entry.Lines, domain.CodeCash)
	suite.Require().NotNil(cash)
	suite.True(cash.Credit.Equal(decimal.NewFromInt(120)))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForBanking() {
	ctx := context.Background()
	deposit := domain.BankingDeposit{
		BankingID:    uuid.NewString(),
		QuarryID:     suite.quarryID,
		DepositDate:  time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC),
		AmountBanked: decimal.NewFromInt(1000),
	}

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceBanking, deposit.BankingID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForBanking(ctx, deposit, suite.userID)

	suite.Require().NoError(err)
	bank := suite.lineFor(entry.Lines, domain.CodeBank)
	suite.Require().NotNil(bank)
	suite.True(bank.Debit.Equal(decimal.NewFromInt(1000)))
	cash := suite.lineFor(entry.Lines, domain.CodeCash)
	suite.Require().NotNil(cash)
	suite.True(cash.Credit.Equal(decimal.NewFromInt(1000)))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForPrepayment() {
	ctx := context.Background()
	prepayment := domain.Prepayment{
		PrepaymentID:    uuid.NewString(),
		QuarryID:        suite.quarryID,
		PaymentDate:     time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC),
		CustomerName:    "Kamau Transport",
		TotalAmountPaid: decimal.NewFromInt(800),
	}

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourcePrepayment, prepayment.PrepaymentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(8), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForPrepayment(ctx, prepayment, suite.userID)

	suite.Require().NoError(err)
	deposits := suite.lineFor(entry.Lines, domain.CodeCustomerDeposits)
	suite.Require().NotNil(deposits)
	suite.True(deposits.Credit.Equal(decimal.NewFromInt(800)))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForCollection_LatePayment() {
	ctx := context.Background()
	sale := suite.paidSale(10, 50)
	paymentDate := sale.SaleDate.AddDate(0, 0, 14)
	sale.PaymentReceivedDate = &paymentDate

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceCollection, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)
	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(9), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.GenerateForCollection(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.EntryDate.Equal(paymentDate))
	cash := suite.lineFor(entry.Lines, domain.CodeCash)
	suite.Require().NotNil(cash)
	suite.True(cash.Debit.Equal(decimal.NewFromInt(500)))
	ar := suite.lineFor(entry.Lines, domain.CodeAccountsReceivable)
	suite.Require().NotNil(ar)
	suite.True(ar.Credit.Equal(decimal.NewFromInt(500)))
}

func (suite *AutoGenServiceTestSuite) TestGenerateForCollection_SameDayNotApplicable() {
	ctx := context.Background()
	sale := suite.paidSale(10, 50)

	suite.mockJournalRepo.On("FindEntryBySource", ctx, suite.quarryID, domain.SourceCollection, sale.SaleID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectGenContext(nil)

	entry, err := suite.service.GenerateForCollection(ctx, sale, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
}

// --- Batch regeneration ---

func (suite *AutoGenServiceTestSuite) TestRegenerateAll() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	newSale := suite.paidSale(10, 50)
	alreadyGenerated := suite.paidSale(5, 40)
	zeroSale := suite.paidSale(0, 50)

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		QuarryID:    suite.quarryID,
		ExpenseDate: from.AddDate(0, 0, 3),
		Category:    "Repairs",
		Amount:      decimal.NewFromInt(200),
	}
	deposit := domain.BankingDeposit{
		BankingID:    uuid.NewString(),
		QuarryID:     suite.quarryID,
		DepositDate:  from.AddDate(0, 0, 5),
		AmountBanked: decimal.NewFromInt(900),
	}
	prepayment := domain.Prepayment{
		PrepaymentID:    uuid.NewString(),
		QuarryID:        suite.quarryID,
		PaymentDate:     from.AddDate(0, 0, 7),
		CustomerName:    "Njoroge",
		TotalAmountPaid: decimal.NewFromInt(300),
	}
	// A sale made before the range whose payment landed inside it.
	lateSale := suite.paidSale(6, 30)
	lateSale.SaleDate = from.AddDate(0, -1, 0)
	paymentDate := from.AddDate(0, 0, 9)
	lateSale.PaymentReceivedDate = &paymentDate

	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.quarryID).Return(suite.chart, nil).Once()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, suite.quarryID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMappingRepo.On("RevenueCodeForProduct", mock.Anything, suite.quarryID, mock.Anything).Return("", apperrors.ErrNotFound).Maybe()
	suite.mockMappingRepo.On("ExpenseCodeForCategory", mock.Anything, suite.quarryID, mock.Anything).Return("", apperrors.ErrNotFound).Maybe()

	suite.mockJournalRepo.On("ListSourceKeys", ctx, suite.quarryID).Return([]domain.SourceKey{
		{Kind: domain.SourceSale, ID: alreadyGenerated.SaleID},
	}, nil).Once()

	suite.mockSourceRepo.On("ListSales", ctx, suite.quarryID, from, to).Return([]domain.Sale{newSale, alreadyGenerated, zeroSale}, nil).Once()
	suite.mockSourceRepo.On("ListExpenses", ctx, suite.quarryID, from, to).Return([]domain.Expense{expense}, nil).Once()
	suite.mockSourceRepo.On("ListBankings", ctx, suite.quarryID, from, to).Return([]domain.BankingDeposit{deposit}, nil).Once()
	suite.mockSourceRepo.On("ListPrepayments", ctx, suite.quarryID, from, to).Return([]domain.Prepayment{prepayment}, nil).Once()
	suite.mockSourceRepo.On("ListSalesPaidBetween", ctx, suite.quarryID, from, to).Return([]domain.Sale{lateSale}, nil).Once()

	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(1), nil).Times(5)

	var savedEntries []domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.JournalEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(1).([]domain.JournalEntry)
		}).Return(nil).Once()

	summary, err := suite.service.RegenerateAll(ctx, suite.quarryID, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, summary.SalesProcessed)
	suite.Equal(1, summary.ExpensesProcessed)
	suite.Equal(1, summary.BankingsProcessed)
	suite.Equal(1, summary.PrepaymentsProcessed)
	suite.Equal(1, summary.CollectionsProcessed)
	suite.Equal(5, summary.TotalProcessed())
	// Already-generated sale plus the zero-amount one.
	suite.Equal(2, summary.Skipped)
	suite.Equal(0, summary.Failed)

	suite.Require().Len(savedEntries, 5)
	for _, e := range savedEntries {
		suite.True(e.IsPosted)
		suite.Equal(domain.Auto, e.EntryType)
		suite.True(e.TotalDebit.Equal(e.TotalCredit))
	}
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockSourceRepo.AssertExpectations(suite.T())
}

func (suite *AutoGenServiceTestSuite) TestRegenerateAll_SameSaleTwiceInRunIsSkipped() {
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	sale := suite.paidSale(10, 50)
	sale.SaleDate = from.AddDate(0, 0, 2)

	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.quarryID).Return(suite.chart, nil).Once()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, suite.quarryID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMappingRepo.On("RevenueCodeForProduct", mock.Anything, suite.quarryID, mock.Anything).Return("", apperrors.ErrNotFound).Maybe()

	suite.mockJournalRepo.On("ListSourceKeys", ctx, suite.quarryID).Return([]domain.SourceKey{}, nil).Once()

	// The same sale appears twice in the listing; the second hit must be a no-op.
	suite.mockSourceRepo.On("ListSales", ctx, suite.quarryID, from, to).Return([]domain.Sale{sale, sale}, nil).Once()
	suite.mockSourceRepo.On("ListExpenses", ctx, suite.quarryID, from, to).Return([]domain.Expense{}, nil).Once()
	suite.mockSourceRepo.On("ListBankings", ctx, suite.quarryID, from, to).Return([]domain.BankingDeposit{}, nil).Once()
	suite.mockSourceRepo.On("ListPrepayments", ctx, suite.quarryID, from, to).Return([]domain.Prepayment{}, nil).Once()
	suite.mockSourceRepo.On("ListSalesPaidBetween", ctx, suite.quarryID, from, to).Return([]domain.Sale{}, nil).Once()

	suite.mockJournalRepo.On("NextReferenceNumber", ctx, suite.quarryID, "AJE", 2025).Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntries", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	summary, err := suite.service.RegenerateAll(ctx, suite.quarryID, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, summary.SalesProcessed)
	suite.Equal(1, summary.Skipped)
}

// --- Run Test Suite ---
func TestAutoGenService(t *testing.T) {
	suite.Run(t, new(AutoGenServiceTestSuite))
}
