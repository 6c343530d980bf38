package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/zentfin/zent-finance/internal/clock"
	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
	"github.com/zentfin/zent-finance/internal/service/mocks"
	"github.com/zentfin/zent-finance/pkg/uow"
	uowmocks "github.com/zentfin/zent-finance/pkg/uow/mocks"
)

type ReportServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockUserRepo  *mocks.MockUserRepository
	mockPlanRepo  *mocks.MockPlanRepository
	mockInvRepo   *mocks.MockInvestmentRepository
	mockTransRepo *mocks.MockTransactionRepository
	today         time.Time
	service       *ReportService
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockPlanRepo = mocks.NewMockPlanRepository(s.mockCtrl)
	s.mockInvRepo = mocks.NewMockInvestmentRepository(s.mockCtrl)
	s.mockTransRepo = mocks.NewMockTransactionRepository(s.mockCtrl)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.PlanRepoName)).
		Return(s.mockPlanRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.InvestmentRepoName)).
		Return(s.mockInvRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransRepo, nil).AnyTimes()

	s.today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var err error
	s.service, err = NewReportService(s.mockUOW, clock.NewFixedClock(s.today))
	s.Require().NoError(err)
}

func (s *ReportServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// TestBuildDailyReport Тест текста отчета: завершенные вклады не показываются,
// транзакции берутся за последние сутки.
func (s *ReportServiceTestSuite) TestBuildDailyReport() {
	user := domain.User{ID: 42, Name: "Alice", Balance: decimal.NewFromInt(1250)}

	investments := []domain.Investment{
		{
			ID:      1,
			PlanID:  7,
			Amount:  decimal.NewFromInt(500),
			EndDate: time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC),
			Active:  true,
		}, {
			ID:      2,
			PlanID:  3,
			Amount:  decimal.NewFromInt(900),
			EndDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Active:  false,
		},
	}
	transactions := []domain.Transaction{
		{
			ID:     10,
			UserID: user.ID,
			Type:   domain.TransactionTypeDeposit,
			Amount: decimal.NewFromInt(200),
			Status: domain.TransactionStatusApproved,
		},
	}

	s.mockInvRepo.EXPECT().GetByUserID(gomock.Any(), user.ID).Return(investments, nil)
	s.mockTransRepo.EXPECT().
		GetByUserSince(gomock.Any(), user.ID, s.today.Add(-24*time.Hour)).
		Return(transactions, nil)

	report, err := s.service.BuildDailyReport(s.T().Context(), user)
	s.Require().NoError(err)

	want := "Hello Alice, here is your daily financial report:\n\n" +
		"Balance: 1250\n\n" +
		"Active Investments:\n" +
		"- 500 in Plan 7, Ends: 2025-04-09\n" +
		"\nTransactions Today:\n" +
		"- deposit of 200, Status: approved\n"
	s.Equal(want, report)
}

func (s *ReportServiceTestSuite) TestBuildDailyReport_Empty() {
	user := domain.User{ID: 42, Name: "Bob", Balance: decimal.NewFromInt(0)}

	s.mockInvRepo.EXPECT().GetByUserID(gomock.Any(), user.ID).Return(nil, nil)
	s.mockTransRepo.EXPECT().
		GetByUserSince(gomock.Any(), user.ID, gomock.Any()).
		Return(nil, nil)

	report, err := s.service.BuildDailyReport(s.T().Context(), user)
	s.Require().NoError(err)

	want := "Hello Bob, here is your daily financial report:\n\n" +
		"Balance: 0\n\n" +
		"Active Investments:\nNone\n" +
		"\nTransactions Today:\nNone\n"
	s.Equal(want, report)
}

func (s *ReportServiceTestSuite) TestSuggestPlan() {
	yesterday := s.today.AddDate(0, 0, -1)

	plans := []domain.Plan{
		{
			ID: 1, Name: "BRONZE",
			DailyReturn:   decimal.NewFromFloat(0.5),
			MinInvestment: decimal.NewFromInt(100),
			DurationDays:  10,
		}, {
			ID: 2, Name: "GOLD",
			DailyReturn:   decimal.NewFromInt(2),
			MinInvestment: decimal.NewFromInt(500),
			DurationDays:  30,
		}, {
			ID: 3, Name: "PLATINUM",
			DailyReturn:   decimal.NewFromInt(5),
			MinInvestment: decimal.NewFromInt(2000),
			DurationDays:  60,
		},
	}

	cases := []struct {
		name           string
		user           domain.User
		activeInvs     []domain.Investment
		expectRepoCall bool
		expectPlans    bool
		wantSend       bool
		wantMsg        string
	}{
		{
			name: "suggested earlier today",
			user: domain.User{
				ID: 1, Name: "Alice",
				Balance:            decimal.NewFromInt(1000),
				LastSuggestionSent: &s.today,
			},
		}, {
			name: "has active investment",
			user: domain.User{
				ID: 2, Name: "Bob",
				Balance:            decimal.NewFromInt(1000),
				LastSuggestionSent: &yesterday,
			},
			activeInvs:     []domain.Investment{{ID: 1, Active: true}},
			expectRepoCall: true,
		}, {
			name: "nothing affordable",
			user: domain.User{
				ID: 3, Name: "Carol",
				Balance: decimal.NewFromInt(50),
			},
			expectRepoCall: true,
			expectPlans:    true,
		}, {
			// из доступных по балансу планов выбирается наибольшая дневная ставка,
			// недоступный PLATINUM не предлагается.
			name: "best affordable plan wins",
			user: domain.User{
				ID: 4, Name: "Dave",
				Balance: decimal.NewFromInt(1000),
			},
			expectRepoCall: true,
			expectPlans:    true,
			wantSend:       true,
			wantMsg: "Hi Dave! Your balance 1000 is sitting idle. Plan GOLD earns 2% daily " +
				"(min 500, 30 days). Reply \"invest <amount> GOLD\" to start.",
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			if t.expectRepoCall {
				s.mockInvRepo.EXPECT().
					GetActiveByUserID(gomock.Any(), t.user.ID).
					Return(t.activeInvs, nil)
			}
			if t.expectPlans {
				s.mockPlanRepo.EXPECT().GetAll(gomock.Any()).Return(plans, nil)
			}

			msg, shouldSend, err := s.service.SuggestPlan(s.T().Context(), t.user)
			s.Require().NoError(err)
			s.Equal(t.wantSend, shouldSend)
			s.Equal(t.wantMsg, msg)
		})
	}
}

func (s *ReportServiceTestSuite) TestMarkSuggested() {
	s.mockUserRepo.EXPECT().
		SetLastSuggestionSent(gomock.Any(), int64(42), s.today).
		Return(nil)

	err := s.service.MarkSuggested(s.T().Context(), 42)
	s.Require().NoError(err)
}
