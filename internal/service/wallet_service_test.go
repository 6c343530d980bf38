package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
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

type WalletServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockUserRepo  *mocks.MockUserRepository
	mockPlanRepo  *mocks.MockPlanRepository
	mockInvRepo   *mocks.MockInvestmentRepository
	mockTransRepo *mocks.MockTransactionRepository
	today         time.Time
	service       *WalletService
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
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

	s.today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var err error
	s.service, err = NewWalletService(s.mockUOW, clock.NewFixedClock(s.today))
	s.Require().NoError(err)
}

func (s *WalletServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *WalletServiceTestSuite) expectUOWDo(times int) {
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(s.T().Context(), s.mockTX)
		},
	).Times(times)
}

func (s *WalletServiceTestSuite) testUser() domain.User {
	return domain.User{
		ID:      42,
		Name:    gofakeit.Name(),
		Phone:   gofakeit.Phone(),
		Balance: decimal.NewFromInt(500),
	}
}

// TestDeposit Тест пополнения: баланс растет и дописывается approved-транзакция аудита.
func (s *WalletServiceTestSuite) TestDeposit() {
	user := s.testUser()
	amount := decimal.NewFromInt(200)
	updated := user
	updated.Balance = user.Balance.Add(amount)

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransRepo, nil)

	s.mockUserRepo.EXPECT().
		AddToBalance(gomock.Any(), user.ID, amount).
		Return(&updated, nil)

	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error) {
			// убеждаемся что аудит записан с правильными данными.
			s.Equal(user.ID, args.UserID)
			s.Equal(domain.TransactionTypeDeposit, args.Type)
			s.Equal(domain.TransactionStatusApproved, args.Status)
			s.True(amount.Equal(args.Amount))
			return &domain.Transaction{ID: 1}, nil
		})

	s.expectUOWDo(1)

	result, err := s.service.Deposit(s.T().Context(), user.ID, amount)
	s.Require().NoError(err)
	s.True(updated.Balance.Equal(result.Balance))
}

func (s *WalletServiceTestSuite) TestWithdraw() {
	user := s.testUser()
	amount := decimal.NewFromInt(100)
	updated := user
	updated.Balance = user.Balance.Sub(amount)

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransRepo, nil)

	s.mockUserRepo.EXPECT().
		SubtractFromBalance(gomock.Any(), user.ID, amount).
		Return(&updated, nil)

	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error) {
			s.Equal(domain.TransactionTypeWithdraw, args.Type)
			s.Equal(domain.TransactionStatusApproved, args.Status)
			return &domain.Transaction{ID: 2}, nil
		})

	s.expectUOWDo(1)

	result, err := s.service.Withdraw(s.T().Context(), user.ID, amount)
	s.Require().NoError(err)
	s.True(updated.Balance.Equal(result.Balance))
}

// TestWithdraw_NotEnoughBalance Тест вывода при нехватке средств: транзакция аудита не создается.
func (s *WalletServiceTestSuite) TestWithdraw_NotEnoughBalance() {
	user := s.testUser()
	amount := user.Balance.Add(decimal.NewFromInt(1))

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)

	s.mockUserRepo.EXPECT().
		SubtractFromBalance(gomock.Any(), user.ID, amount).
		Return(nil, domain.ErrNotEnoughBalance)

	// аудит не пишется
	s.mockTransRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	s.expectUOWDo(1)

	result, err := s.service.Withdraw(s.T().Context(), user.ID, amount)
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)
	s.Nil(result)
}

func (s *WalletServiceTestSuite) TestInvest() {
	user := s.testUser()
	plan := domain.Plan{
		ID:            7,
		Name:          "GOLD",
		DailyReturn:   decimal.NewFromInt(2),
		MinInvestment: decimal.NewFromInt(300),
		DurationDays:  30,
	}
	amount := decimal.NewFromInt(400)
	wantEndDate := s.today.AddDate(0, 0, int(plan.DurationDays))

	s.mockPlanRepo.EXPECT().FindByName(gomock.Any(), plan.Name).Return(&plan, nil)

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.InvestmentRepoName)).
		Return(s.mockInvRepo, nil)

	s.mockUserRepo.EXPECT().
		SubtractFromBalance(gomock.Any(), user.ID, amount).
		Return(&user, nil)

	s.mockInvRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.InvestmentCreate) (*domain.Investment, error) {
			// вклад стартует сегодня и watermark равен дате старта: до завтра начислять нечего.
			s.Equal(user.ID, args.UserID)
			s.Equal(plan.ID, args.PlanID)
			s.True(amount.Equal(args.Amount))
			s.True(args.StartDate.Equal(s.today))
			s.True(args.EndDate.Equal(wantEndDate))
			s.True(args.LastCalculated.Equal(args.StartDate))
			return &domain.Investment{
				ID:             1,
				UserID:         args.UserID,
				PlanID:         args.PlanID,
				Amount:         args.Amount,
				StartDate:      args.StartDate,
				EndDate:        args.EndDate,
				LastCalculated: args.LastCalculated,
				Active:         true,
			}, nil
		})

	s.expectUOWDo(1)

	investment, gotPlan, err := s.service.Invest(s.T().Context(), user.ID, amount, plan.Name)
	s.Require().NoError(err)
	s.Equal(plan.ID, gotPlan.ID)
	s.True(investment.Active)
	s.True(investment.EndDate.Equal(wantEndDate))
}

func (s *WalletServiceTestSuite) TestInvest_PlanNotFound() {
	s.mockPlanRepo.EXPECT().
		FindByName(gomock.Any(), "unknown").
		Return(nil, domain.ErrRecordNotFound)
	s.expectUOWDo(0)

	investment, plan, err := s.service.Invest(s.T().Context(), 42, decimal.NewFromInt(400), "unknown")

	var notFoundErr *domain.PlanNotFoundError
	s.Require().ErrorAs(err, &notFoundErr)
	s.Equal("unknown", notFoundErr.Name)
	s.Nil(investment)
	s.Nil(plan)
}

func (s *WalletServiceTestSuite) TestInvest_BelowMinimum() {
	plan := domain.Plan{
		ID:            7,
		Name:          "GOLD",
		MinInvestment: decimal.NewFromInt(300),
		DurationDays:  30,
	}

	s.mockPlanRepo.EXPECT().FindByName(gomock.Any(), plan.Name).Return(&plan, nil)
	s.expectUOWDo(0)

	investment, gotPlan, err := s.service.Invest(s.T().Context(), 42, decimal.NewFromInt(100), plan.Name)
	s.Require().ErrorIs(err, domain.ErrBelowMinInvestment)
	s.Nil(investment)
	// план возвращается чтобы вызывающая сторона могла назвать минимальную сумму.
	s.Require().NotNil(gotPlan)
	s.Equal(plan.ID, gotPlan.ID)
}

func (s *WalletServiceTestSuite) TestInvest_NotEnoughBalance() {
	plan := domain.Plan{
		ID:            7,
		Name:          "GOLD",
		MinInvestment: decimal.NewFromInt(300),
		DurationDays:  30,
	}
	amount := decimal.NewFromInt(900)

	s.mockPlanRepo.EXPECT().FindByName(gomock.Any(), plan.Name).Return(&plan, nil)

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil)

	s.mockUserRepo.EXPECT().
		SubtractFromBalance(gomock.Any(), int64(42), amount).
		Return(nil, domain.ErrNotEnoughBalance)

	// вклад не создается
	s.mockInvRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	s.expectUOWDo(1)

	investment, _, err := s.service.Invest(s.T().Context(), 42, amount, plan.Name)
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)
	s.Nil(investment)
}
