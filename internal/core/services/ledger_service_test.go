package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.LedgerSvcFacade
	quarryID          string
	cashAccount       domain.LedgerAccount
	revenueAccount    domain.LedgerAccount
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockReportingRepo)
	suite.quarryID = uuid.NewString()
	suite.cashAccount = domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		QuarryID:      suite.quarryID,
		Code:          domain.CodeCash,
		Name:          "Cash",
		Category:      domain.Assets,
		IsDebitNormal: true,
		IsActive:      true,
	}
	suite.revenueAccount = domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		QuarryID:      suite.quarryID,
		Code:          domain.CodeSalesRevenue,
		Name:          "Sales Revenue",
		Category:      domain.Revenue,
		IsDebitNormal: false,
		IsActive:      true,
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestAccountBalance_DebitNormal() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.quarryID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockReportingRepo.On("GetAccountBalanceSums", ctx, suite.quarryID, suite.cashAccount.AccountID, asOf).
		Return(decimal.NewFromInt(700), decimal.NewFromInt(200), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.quarryID, suite.cashAccount.AccountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(500)))
}

func (suite *LedgerServiceTestSuite) TestAccountBalance_CreditNormal() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.quarryID, suite.revenueAccount.AccountID).Return(&suite.revenueAccount, nil).Once()
	suite.mockReportingRepo.On("GetAccountBalanceSums", ctx, suite.quarryID, suite.revenueAccount.AccountID, asOf).
		Return(decimal.NewFromInt(100), decimal.NewFromInt(600), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.quarryID, suite.revenueAccount.AccountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(500)))
}

func (suite *LedgerServiceTestSuite) TestAllBalances_InactiveAccountsReportZero() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.quarryID).
		Return([]domain.LedgerAccount{suite.cashAccount, suite.revenueAccount}, nil).Once()
	// Only cash has posted activity; revenue must still appear with a zero.
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.quarryID, time.Time{}, asOf).
		Return([]domain.AccountActivity{
			{
				AccountID:     suite.cashAccount.AccountID,
				Code:          suite.cashAccount.Code,
				Name:          suite.cashAccount.Name,
				Category:      domain.Assets,
				IsDebitNormal: true,
				Debit:         decimal.NewFromInt(900),
				Credit:        decimal.NewFromInt(400),
			},
		}, nil).Once()

	balances, err := suite.service.AllBalances(ctx, suite.quarryID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	suite.Equal(suite.cashAccount.AccountID, balances[0].AccountID)
	suite.True(balances[0].Balance.Equal(decimal.NewFromInt(500)))
	suite.Equal(suite.revenueAccount.AccountID, balances[1].AccountID)
	suite.True(balances[1].Balance.IsZero())
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
