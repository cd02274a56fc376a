package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/core/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetChartOfAccounts(ctx context.Context, quarryID string) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, quarryID, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, quarryID, code string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, quarryID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, quarryID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID, accountID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, quarryID, accountID, updaterUserID string) error {
	args := m.Called(ctx, quarryID, accountID, updaterUserID)
	return args.Error(0)
}

func (m *MockAccountService) SeedChartOfAccounts(ctx context.Context, quarryID, creatorUserID string) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, quarryID, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

// --- Mock PeriodService ---

type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

func (m *MockPeriodService) IsDateInClosedPeriod(ctx context.Context, quarryID string, date time.Time) (bool, error) {
	args := m.Called(ctx, quarryID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context, quarryID string, fiscalYear *int) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) GetPeriodByID(ctx context.Context, quarryID, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, quarryID, periodID, actorID, notes string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, periodID, actorID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ReopenPeriod(ctx context.Context, quarryID, periodID, actorID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, periodID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) ProvisionFiscalYear(ctx context.Context, quarryID string, fiscalYear int, creatorUserID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, quarryID, fiscalYear, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

// --- Test Suite Setup ---
type SetupServiceTestSuite struct {
	suite.Suite
	mockAccountSvc   *MockAccountService
	mockPeriodSvc    *MockPeriodService
	mockSettingsRepo *MockSettingsRepository
	mockMappingRepo  *MockMappingRepository
	service          portssvc.SetupSvcFacade
	quarryID         string
	userID           string
}

func (suite *SetupServiceTestSuite) SetupTest() {
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockMappingRepo = new(MockMappingRepository)
	suite.service = services.NewSetupService(
		suite.mockAccountSvc, suite.mockPeriodSvc, suite.mockSettingsRepo, suite.mockMappingRepo)
	suite.quarryID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *SetupServiceTestSuite) seededChart(n int) []domain.LedgerAccount {
	accounts := make([]domain.LedgerAccount, n)
	for i := range accounts {
		accounts[i] = domain.LedgerAccount{
			AccountID: uuid.NewString(),
			QuarryID:  suite.quarryID,
			IsSystem:  true,
			IsActive:  true,
		}
	}
	return accounts
}

func (suite *SetupServiceTestSuite) seededPeriods(fiscalYear int) []domain.AccountingPeriod {
	periods := make([]domain.AccountingPeriod, 12)
	for i := range periods {
		periods[i] = domain.AccountingPeriod{
			PeriodID:     uuid.NewString(),
			QuarryID:     suite.quarryID,
			FiscalYear:   fiscalYear,
			PeriodNumber: i + 1,
		}
	}
	return periods
}

// --- Test Cases ---

func (suite *SetupServiceTestSuite) TestProvisionQuarry_Success() {
	ctx := context.Background()
	req := dto.ProvisionQuarryRequest{
		FiscalYear:      2025,
		LoadersFeeRate:  decimal.NewFromInt(3),
		LandRatePerUnit: decimal.NewFromInt(5),
		ProductRevenueMappings: map[string]string{
			"Ballast": domain.CodeSalesRevenue,
		},
	}

	suite.mockAccountSvc.On("SeedChartOfAccounts", ctx, suite.quarryID, suite.userID).
		Return(suite.seededChart(10), nil).Once()
	suite.mockPeriodSvc.On("ProvisionFiscalYear", ctx, suite.quarryID, 2025, suite.userID).
		Return(suite.seededPeriods(2025), nil).Once()
	suite.mockSettingsRepo.On("SaveSettings", ctx, mock.MatchedBy(func(s domain.QuarrySettings) bool {
		return s.QuarryID == suite.quarryID &&
			s.LoadersFeeRate.Equal(decimal.NewFromInt(3)) &&
			s.LandRatePerUnit.Equal(decimal.NewFromInt(5))
	})).Return(nil).Once()
	suite.mockMappingRepo.On("SaveMappings", ctx, suite.quarryID, req.ProductRevenueMappings, req.ExpenseCategoryMappings).
		Return(nil).Once()

	resp, err := suite.service.ProvisionQuarry(ctx, suite.quarryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(10, resp.AccountsSeeded)
	suite.Equal(12, resp.PeriodsSeeded)
	suite.Len(resp.Accounts, 10)
	suite.Len(resp.Periods, 12)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
	suite.mockMappingRepo.AssertExpectations(suite.T())
}

func (suite *SetupServiceTestSuite) TestProvisionQuarry_NoMappingsSkipsSave() {
	ctx := context.Background()
	req := dto.ProvisionQuarryRequest{FiscalYear: 2025}

	suite.mockAccountSvc.On("SeedChartOfAccounts", ctx, suite.quarryID, suite.userID).
		Return(suite.seededChart(10), nil).Once()
	suite.mockPeriodSvc.On("ProvisionFiscalYear", ctx, suite.quarryID, 2025, suite.userID).
		Return(suite.seededPeriods(2025), nil).Once()
	suite.mockSettingsRepo.On("SaveSettings", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.ProvisionQuarry(ctx, suite.quarryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "SaveMappings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SetupServiceTestSuite) TestProvisionQuarry_SeedFailureStopsProvisioning() {
	ctx := context.Background()
	req := dto.ProvisionQuarryRequest{FiscalYear: 2025}

	suite.mockAccountSvc.On("SeedChartOfAccounts", ctx, suite.quarryID, suite.userID).
		Return(nil, errors.New("seed failed")).Once()

	resp, err := suite.service.ProvisionQuarry(ctx, suite.quarryID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.mockPeriodSvc.AssertNotCalled(suite.T(), "ProvisionFiscalYear", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "SaveSettings", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestSetupService(t *testing.T) {
	suite.Run(t, new(SetupServiceTestSuite))
}
