package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/scheduler/mocks"
	"github.com/zentfin/zent-finance/internal/service"
)

type ProcessorTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockAccrual    *mocks.MockAccrualServicer
	mockReports    *mocks.MockReportServicer
	mockDispatcher *mocks.MockDispatcher
	processor      *Processor
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func (s *ProcessorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.mockAccrual = mocks.NewMockAccrualServicer(s.ctrl)
	s.mockReports = mocks.NewMockReportServicer(s.ctrl)
	s.mockDispatcher = mocks.NewMockDispatcher(s.ctrl)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.processor = NewProcessor(s.mockAccrual, s.mockReports, s.mockDispatcher, logger)
}

func (s *ProcessorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestRunAccrualPass_Success Тест на проход с начислением и завершением: уведомления отправляются
// в порядке событий, сначала о доходе, потом о завершении.
func (s *ProcessorTestSuite) TestRunAccrualPass_Success() {
	investments := []domain.Investment{
		{ID: 1, UserID: 100},
		{ID: 2, UserID: 101},
	}

	userOne := domain.User{ID: 100, Phone: "+15550001", Balance: decimal.NewFromInt(130)}
	userTwo := domain.User{ID: 101, Phone: "+15550002", Balance: decimal.NewFromInt(999)}
	plan := domain.Plan{ID: 7, Name: "GOLD"}
	profit := decimal.NewFromInt(30)

	s.mockAccrual.EXPECT().
		ActiveInvestments(gomock.Any()).
		Return(investments, nil)

	// первый вклад: начислено 3 дня, не завершен
	s.mockAccrual.EXPECT().
		Accrue(gomock.Any(), investments[0]).
		Return(&service.AccrualResult{
			Investment: &investments[0],
			Plan:       &plan,
			User:       &userOne,
			Profit:     profit,
			Days:       3,
		}, nil)
	s.mockAccrual.EXPECT().Mature(gomock.Any(), investments[0]).Return(false, nil)

	// второй вклад: начислять нечего, но дата окончания прошла
	s.mockAccrual.EXPECT().
		Accrue(gomock.Any(), investments[1]).
		Return(&service.AccrualResult{
			Investment: &investments[1],
			Plan:       &plan,
			User:       &userTwo,
			Profit:     decimal.Zero,
			Days:       0,
		}, nil)
	s.mockAccrual.EXPECT().Mature(gomock.Any(), investments[1]).Return(true, nil)

	s.mockDispatcher.EXPECT().
		EarningsAccrued(gomock.Any(), domain.EarningsAccrued{
			UserID:   userOne.ID,
			Phone:    userOne.Phone,
			PlanName: plan.Name,
			Profit:   profit,
			Balance:  userOne.Balance,
		})
	s.mockDispatcher.EXPECT().
		InvestmentMatured(gomock.Any(), domain.InvestmentMatured{
			UserID:   userTwo.ID,
			Phone:    userTwo.Phone,
			PlanName: plan.Name,
		})

	summary := s.processor.RunAccrualPass(s.T().Context())

	s.Equal(2, summary.Processed)
	s.Equal(1, summary.Accrued)
	s.Equal(1, summary.Matured)
	s.Equal(0, summary.Skipped)
	s.Equal(0, summary.Failed)
}

// TestRunAccrualPass_ItemFailureIsolated Тест на изоляцию ошибок: упавший вклад не прерывает
// обработку остальных.
func (s *ProcessorTestSuite) TestRunAccrualPass_ItemFailureIsolated() {
	investments := []domain.Investment{
		{ID: 1, UserID: 100},
		{ID: 2, UserID: 101},
		{ID: 3, UserID: 102},
	}
	user := domain.User{ID: 102, Phone: "+15550003", Balance: decimal.NewFromInt(50)}
	plan := domain.Plan{ID: 7, Name: "GOLD"}

	s.mockAccrual.EXPECT().
		ActiveInvestments(gomock.Any()).
		Return(investments, nil)

	// первый вклад падает по инфраструктурной причине
	s.mockAccrual.EXPECT().
		Accrue(gomock.Any(), investments[0]).
		Return(nil, errors.New("connection reset"))

	// второй ссылается на отсутствующий план
	s.mockAccrual.EXPECT().
		Accrue(gomock.Any(), investments[1]).
		Return(nil, fmt.Errorf("accruing investment 2: %w", domain.ErrRecordNotFound))

	// третий обрабатывается штатно
	s.mockAccrual.EXPECT().
		Accrue(gomock.Any(), investments[2]).
		Return(&service.AccrualResult{
			Investment: &investments[2],
			Plan:       &plan,
			User:       &user,
			Profit:     decimal.Zero,
			Days:       0,
		}, nil)
	s.mockAccrual.EXPECT().Mature(gomock.Any(), investments[2]).Return(false, nil)

	summary := s.processor.RunAccrualPass(s.T().Context())

	s.Equal(3, summary.Processed)
	s.Equal(0, summary.Accrued)
	s.Equal(1, summary.Skipped)
	s.Equal(1, summary.Failed)
}

// TestRunAccrualPass_NotificationsUnderItemTimeout Тест на предел времени элемента: уведомления
// уходят под тем же дедлайном что и обработка вклада, зависший шлюз не может заблокировать проход.
func (s *ProcessorTestSuite) TestRunAccrualPass_NotificationsUnderItemTimeout() {
	investments := []domain.Investment{{ID: 1, UserID: 100}}
	user := domain.User{ID: 100, Phone: "+15550001", Balance: decimal.NewFromInt(130)}
	plan := domain.Plan{ID: 7, Name: "GOLD"}

	s.mockAccrual.EXPECT().
		ActiveInvestments(gomock.Any()).
		Return(investments, nil)
	s.mockAccrual.EXPECT().
		Accrue(gomock.Any(), investments[0]).
		Return(&service.AccrualResult{
			Investment: &investments[0],
			Plan:       &plan,
			User:       &user,
			Profit:     decimal.NewFromInt(30),
			Days:       3,
		}, nil)
	s.mockAccrual.EXPECT().Mature(gomock.Any(), investments[0]).Return(true, nil)

	s.mockDispatcher.EXPECT().
		EarningsAccrued(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, _ domain.EarningsAccrued) {
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline, "уведомление о доходе должно уходить с дедлайном элемента")
		})
	s.mockDispatcher.EXPECT().
		InvestmentMatured(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, _ domain.InvestmentMatured) {
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline, "уведомление о завершении должно уходить с дедлайном элемента")
		})

	summary := s.processor.RunAccrualPass(s.T().Context())

	s.Equal(1, summary.Accrued)
	s.Equal(1, summary.Matured)
}

func (s *ProcessorTestSuite) TestRunAccrualPass_ListError() {
	s.mockAccrual.EXPECT().
		ActiveInvestments(gomock.Any()).
		Return(nil, errors.New("db down"))

	summary := s.processor.RunAccrualPass(s.T().Context())

	s.Equal(0, summary.Processed)
	s.Equal(1, summary.Failed)
}

// TestRunReportPass Тест на рассылку отчетов: ошибка доставки одному юзеру не мешает остальным.
func (s *ProcessorTestSuite) TestRunReportPass() {
	users := []domain.User{
		{ID: 1, Phone: "+15550001"},
		{ID: 2, Phone: "+15550002"},
	}

	s.mockReports.EXPECT().Users(gomock.Any()).Return(users, nil)

	s.mockReports.EXPECT().
		BuildDailyReport(gomock.Any(), users[0]).
		Return("report one", nil)
	s.mockReports.EXPECT().
		BuildDailyReport(gomock.Any(), users[1]).
		Return("report two", nil)

	s.mockDispatcher.EXPECT().
		Notify(gomock.Any(), users[0].Phone, "report one").
		Return(nil)
	s.mockDispatcher.EXPECT().
		Notify(gomock.Any(), users[1].Phone, "report two").
		Return(errors.New("gateway timeout"))

	summary := s.processor.RunReportPass(s.T().Context())

	s.Equal(2, summary.Processed)
	s.Equal(1, summary.Sent)
}

// TestRunSuggestionPass Тест на рассылку рекомендаций: дата последней рекомендации продвигается
// только после успешной доставки.
func (s *ProcessorTestSuite) TestRunSuggestionPass() {
	users := []domain.User{
		{ID: 1, Phone: "+15550001"},
		{ID: 2, Phone: "+15550002"},
		{ID: 3, Phone: "+15550003"},
	}

	s.mockReports.EXPECT().Users(gomock.Any()).Return(users, nil)

	// первому есть что предложить и доставка успешна
	s.mockReports.EXPECT().
		SuggestPlan(gomock.Any(), users[0]).
		Return("invest already", true, nil)
	s.mockDispatcher.EXPECT().
		Notify(gomock.Any(), users[0].Phone, "invest already").
		Return(nil)
	s.mockReports.EXPECT().MarkSuggested(gomock.Any(), users[0].ID).Return(nil)

	// второму предлагать нечего
	s.mockReports.EXPECT().
		SuggestPlan(gomock.Any(), users[1]).
		Return("", false, nil)

	// третьему доставка не удалась: MarkSuggested не вызывается, рекомендация уйдет следующим проходом
	s.mockReports.EXPECT().
		SuggestPlan(gomock.Any(), users[2]).
		Return("invest already", true, nil)
	s.mockDispatcher.EXPECT().
		Notify(gomock.Any(), users[2].Phone, "invest already").
		Return(errors.New("gateway timeout"))
	s.mockReports.EXPECT().MarkSuggested(gomock.Any(), users[2].ID).Times(0)

	summary := s.processor.RunSuggestionPass(s.T().Context())

	s.Equal(3, summary.Processed)
	s.Equal(1, summary.Sent)
	s.Equal(1, summary.Skipped)
	s.Equal(1, summary.Failed)
}
