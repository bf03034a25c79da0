package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, userID string, from, to *time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowData(ctx context.Context, userID string, from, to time.Time) ([]domain.CashFlowMonth, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowMonth), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockReportingRepository
	mockAccounts *MockAccountRepository
	service      portssvc.ReportingService
	ctx          context.Context
	userID       string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockAccounts)
	suite.ctx = context.Background()
	suite.userID = "user-1"
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Totals() {
	rows := []domain.TrialBalanceRow{
		{AccountID: "cash", AccountType: domain.Asset, Debit: amount("700"), Credit: amount("200")},
		{AccountID: "sales", AccountType: domain.Income, Debit: amount("0"), Credit: amount("500")},
	}
	suite.mockRepo.On("GetTrialBalanceData", suite.ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx, suite.userID, nil, nil)

	suite.Require().NoError(err)
	suite.True(amount("700").Equal(report.TotalDebit))
	suite.True(amount("700").Equal(report.TotalCredit))
	suite.True(report.IsBalanced)
	suite.Len(report.Rows, 2)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_FlagsImbalance() {
	rows := []domain.TrialBalanceRow{{AccountID: "cash", Debit: amount("10"), Credit: amount("0")}}
	suite.mockRepo.On("GetTrialBalanceData", suite.ctx, suite.userID, mock.Anything, mock.Anything).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx, suite.userID, nil, nil)

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyRowsNotNil() {
	suite.mockRepo.On("GetTrialBalanceData", suite.ctx, suite.userID, mock.Anything, mock.Anything).Return(nil, nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx, suite.userID, nil, nil)

	suite.Require().NoError(err)
	suite.NotNil(report.Rows)
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_InvertedRange() {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := suite.service.TrialBalance(suite.ctx, suite.userID, &from, &to)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetTrialBalanceData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestMonthlyCashFlow_FillsTwelveMonths() {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	data := []domain.CashFlowMonth{
		{Month: 3, Inflow: amount("100"), Outflow: amount("40")},
		{Month: 11, Inflow: amount("0"), Outflow: amount("15.50")},
	}
	suite.mockRepo.On("GetCashFlowData", suite.ctx, suite.userID, from, from.AddDate(1, 0, 0)).Return(data, nil).Once()

	report, err := suite.service.MonthlyCashFlow(suite.ctx, suite.userID, 2024)

	suite.Require().NoError(err)
	suite.Equal(2024, report.Year)
	suite.Require().Len(report.Months, 12)
	for i, m := range report.Months {
		suite.Equal(i+1, m.Month)
	}
	suite.True(amount("100").Equal(report.Months[2].Inflow))
	suite.True(amount("15.50").Equal(report.Months[10].Outflow))
	suite.True(report.Months[0].Inflow.IsZero())
}

func (suite *ReportingServiceTestSuite) TestMonthlyCashFlow_InvalidYear() {
	_, err := suite.service.MonthlyCashFlow(suite.ctx, suite.userID, 12)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestCashBankSummary() {
	cash := domain.Account{AccountID: "c1", Name: "Cash", Category: domain.CategoryCash}
	cash.HydrateBalance(amount("150"))
	bank := domain.Account{AccountID: "b1", Name: "Bank", Category: domain.CategoryBank}
	bank.HydrateBalance(amount("-20"))
	suite.mockAccounts.On("ListAccounts", suite.ctx, suite.userID, []domain.AccountCategory{domain.CategoryCash, domain.CategoryBank}).
		Return([]domain.Account{cash, bank}, nil).Once()

	summary, err := suite.service.CashBankSummary(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(summary.Cash, 1)
	suite.Len(summary.Bank, 1)
	suite.True(amount("150").Equal(summary.TotalCash))
	suite.True(amount("-20").Equal(summary.TotalBank))
	suite.True(amount("130").Equal(summary.Total))
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func TestReportingService_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportingRepository)
	cache := new(MockReportCache)
	cached := domain.CashFlow{Year: 2023, Months: []domain.CashFlowMonth{{Month: 1, Inflow: amount("9"), Outflow: amount("0")}}}
	cache.On("Get", ctx, "u1", "cash_flow", "2023", mock.Anything).Return(cached, nil).Once()
	svc := services.NewReportingService(repo, new(MockAccountRepository), services.WithReportingCache(cache))

	report, err := svc.MonthlyCashFlow(ctx, "u1", 2023)

	require.NoError(t, err)
	assert.Equal(t, 2023, report.Year)
	assert.True(t, amount("9").Equal(report.Months[0].Inflow))
	repo.AssertNotCalled(t, "GetCashFlowData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestReportingService_CacheFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportingRepository)
	cache := new(MockReportCache)
	cache.On("Get", ctx, "u1", "trial_balance", "-:-", mock.Anything).Return(nil, errors.New("redis down")).Once()
	cache.On("Set", ctx, "u1", "trial_balance", "-:-", mock.AnythingOfType("*domain.TrialBalance")).Return(errors.New("redis down")).Once()
	repo.On("GetTrialBalanceData", ctx, "u1", (*time.Time)(nil), (*time.Time)(nil)).Return([]domain.TrialBalanceRow{}, nil).Once()
	svc := services.NewReportingService(repo, new(MockAccountRepository), services.WithReportingCache(cache))

	report, err := svc.TrialBalance(ctx, "u1", nil, nil)

	require.NoError(t, err)
	assert.True(t, report.IsBalanced)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
