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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type PeriodServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPeriodRepository
	service  portssvc.PeriodSvcFacade
	quarryID string
	userID   string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockRepo)
	suite.quarryID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestProvisionFiscalYear_Success() {
	ctx := context.Background()
	fiscalYear := 2025

	suite.mockRepo.On("ListPeriods", ctx, suite.quarryID, &fiscalYear).Return([]domain.AccountingPeriod{}, nil).Once()
	suite.mockRepo.On("SavePeriods", ctx, mock.AnythingOfType("[]domain.AccountingPeriod")).Return(nil).Once()

	periods, err := suite.service.ProvisionFiscalYear(ctx, suite.quarryID, fiscalYear, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(periods, 12)

	jan := periods[0]
	suite.Equal(1, jan.PeriodNumber)
	suite.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), jan.StartDate)
	suite.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), jan.EndDate)

	// February of a non-leap year ends on the 28th.
	feb := periods[1]
	suite.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), feb.EndDate)

	dec := periods[11]
	suite.Equal(12, dec.PeriodNumber)
	suite.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), dec.EndDate)

	for _, p := range periods {
		suite.False(p.IsClosed)
		suite.Equal(fiscalYear, p.FiscalYear)
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestProvisionFiscalYear_LeapYearFebruary() {
	ctx := context.Background()
	fiscalYear := 2024

	suite.mockRepo.On("ListPeriods", ctx, suite.quarryID, &fiscalYear).Return([]domain.AccountingPeriod{}, nil).Once()
	suite.mockRepo.On("SavePeriods", ctx, mock.Anything).Return(nil).Once()

	periods, err := suite.service.ProvisionFiscalYear(ctx, suite.quarryID, fiscalYear, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), periods[1].EndDate)
}

func (suite *PeriodServiceTestSuite) TestProvisionFiscalYear_AlreadyProvisioned() {
	ctx := context.Background()
	fiscalYear := 2025
	existing := []domain.AccountingPeriod{{PeriodID: uuid.NewString(), FiscalYear: fiscalYear}}

	suite.mockRepo.On("ListPeriods", ctx, suite.quarryID, &fiscalYear).Return(existing, nil).Once()

	_, err := suite.service.ProvisionFiscalYear(ctx, suite.quarryID, fiscalYear, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePeriods", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.AccountingPeriod{
		PeriodID:     periodID,
		QuarryID:     suite.quarryID,
		FiscalYear:   2025,
		PeriodNumber: 3,
	}

	suite.mockRepo.On("FindPeriodByID", ctx, suite.quarryID, periodID).Return(period, nil).Once()
	suite.mockRepo.On("UpdatePeriod", ctx, mock.AnythingOfType("domain.AccountingPeriod")).Return(nil).Once()

	closed, err := suite.service.ClosePeriod(ctx, suite.quarryID, periodID, suite.userID, "March done")

	suite.Require().NoError(err)
	suite.True(closed.IsClosed)
	suite.Equal(suite.userID, closed.ClosedBy)
	suite.Require().NotNil(closed.ClosedAt)
	suite.Equal("March done", closed.ClosingNotes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.AccountingPeriod{PeriodID: periodID, QuarryID: suite.quarryID, IsClosed: true}

	suite.mockRepo.On("FindPeriodByID", ctx, suite.quarryID, periodID).Return(period, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, suite.quarryID, periodID, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()
	closedAt := time.Now().UTC()
	period := &domain.AccountingPeriod{
		PeriodID:     periodID,
		QuarryID:     suite.quarryID,
		IsClosed:     true,
		ClosedBy:     suite.userID,
		ClosedAt:     &closedAt,
		ClosingNotes: "done",
	}

	suite.mockRepo.On("FindPeriodByID", ctx, suite.quarryID, periodID).Return(period, nil).Once()
	suite.mockRepo.On("UpdatePeriod", ctx, mock.AnythingOfType("domain.AccountingPeriod")).Return(nil).Once()

	reopened, err := suite.service.ReopenPeriod(ctx, suite.quarryID, periodID, suite.userID)

	suite.Require().NoError(err)
	suite.False(reopened.IsClosed)
	suite.Empty(reopened.ClosedBy)
	suite.Nil(reopened.ClosedAt)
	suite.Empty(reopened.ClosingNotes)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_NotClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.AccountingPeriod{PeriodID: periodID, QuarryID: suite.quarryID}

	suite.mockRepo.On("FindPeriodByID", ctx, suite.quarryID, periodID).Return(period, nil).Once()

	_, err := suite.service.ReopenPeriod(ctx, suite.quarryID, periodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PeriodServiceTestSuite) TestIsDateInClosedPeriod() {
	ctx := context.Background()
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	closedPeriod := &domain.AccountingPeriod{IsClosed: true}

	suite.mockRepo.On("FindPeriodForDate", ctx, suite.quarryID, date).Return(closedPeriod, nil).Once()

	closed, err := suite.service.IsDateInClosedPeriod(ctx, suite.quarryID, date)

	suite.Require().NoError(err)
	suite.True(closed)
}

func (suite *PeriodServiceTestSuite) TestIsDateInClosedPeriod_IntradayTimestampOnLastDay() {
	ctx := context.Background()
	// An afternoon timestamp on the closed period's last day must still land
	// inside the period, so the lookup goes out truncated to midnight.
	stamp := time.Date(2025, 7, 31, 14, 0, 0, 0, time.UTC)
	day := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	closedPeriod := &domain.AccountingPeriod{IsClosed: true}

	suite.mockRepo.On("FindPeriodForDate", ctx, suite.quarryID, day).Return(closedPeriod, nil).Once()

	closed, err := suite.service.IsDateInClosedPeriod(ctx, suite.quarryID, stamp)

	suite.Require().NoError(err)
	suite.True(closed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestIsDateInClosedPeriod_NoPeriodIsOpen() {
	ctx := context.Background()
	date := time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindPeriodForDate", ctx, suite.quarryID, date).Return(nil, apperrors.ErrNotFound).Once()

	closed, err := suite.service.IsDateInClosedPeriod(ctx, suite.quarryID, date)

	suite.Require().NoError(err)
	suite.False(closed)
}

// --- Run Test Suite ---
func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
