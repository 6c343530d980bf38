package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zentfin/zent-finance/internal/clock"
	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
	"github.com/zentfin/zent-finance/pkg/uow"
)

// одного повтора при конфликте достаточно: если watermark продвинули повторно,
// интервал уже начислен кем-то другим и вклад подождет следующего прохода.
const accrueMaxAttempts = 2

var percentDivisor = decimal.NewFromInt(100)

// AccrualService ядро движка: начисление дохода по вкладам и перевод вкладов
// в завершенное состояние.
type AccrualService struct {
	uow      uow.UOW
	invRepo  InvestmentRepository
	planRepo PlanRepository
	userRepo UserRepository
	clock    clock.Clock
}

func NewAccrualService(u uow.UOW, c clock.Clock) (*AccrualService, error) {
	invRepo, invRepoErr := uow.GetRepositoryAs[InvestmentRepository](u, uow.RepositoryName(repoargs.InvestmentRepoName))
	if invRepoErr != nil {
		return nil, invRepoErr
	}
	planRepo, planRepoErr := uow.GetRepositoryAs[PlanRepository](u, uow.RepositoryName(repoargs.PlanRepoName))
	if planRepoErr != nil {
		return nil, planRepoErr
	}
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &AccrualService{
		uow:      u,
		invRepo:  invRepo,
		planRepo: planRepo,
		userRepo: userRepo,
		clock:    c,
	}, nil
}

// ActiveInvestments возвращает все активные вклады - единицы работы одного прохода.
func (a *AccrualService) ActiveInvestments(ctx context.Context) ([]domain.Investment, error) {
	investments, err := a.invRepo.GetActive(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return investments, nil
}

// AccrualResult результат обработки одного вклада. Profit и User.Balance - значения,
// зафиксированные в БД; уведомления строятся только из них.
type AccrualResult struct {
	Investment *domain.Investment
	Plan       *domain.Plan
	User       *domain.User
	Profit     decimal.Decimal
	Days       int
}

// Accrue начисляет доход по одному вкладу за целые дни, прошедшие с watermark'а.
//
// Алгоритм работы:
//  1. Загружает план и юзера вклада. Отсутствие любого из них - ошибка целостности данных,
//     watermark не трогается и вклад будет повторен следующим проходом.
//  2. Считает elapsed = целые дни от max(last_calculated, start_date) до "сегодня".
//     При elapsed <= 0 начислять нечего - возвращается результат с Days = 0 (идемпотентность:
//     повторный проход в тот же день ничего не меняет).
//  3. Продвигает watermark и увеличивает баланс юзера в одной транзакции. Условное обновление
//     watermark'а защищает от двойного начисления: при конфликте транзакция откатывается целиком,
//     вклад перечитывается и попытка повторяется один раз.
func (a *AccrualService) Accrue(ctx context.Context, investment domain.Investment) (*AccrualResult, error) {
	plan, planErr := a.planRepo.GetByID(ctx, investment.PlanID)
	if planErr != nil {
		return nil, fmt.Errorf("accruing investment %d: %w", investment.ID, planErr)
	}
	user, userErr := a.userRepo.GetByID(ctx, investment.UserID)
	if userErr != nil {
		return nil, fmt.Errorf("accruing investment %d: %w", investment.ID, userErr)
	}

	inv := investment
	today := a.clock.Today()

	for attempt := 1; ; attempt++ {
		elapsed := clock.WholeDaysBetween(clock.Latest(inv.LastCalculated, inv.StartDate), today)
		if elapsed <= 0 || !inv.Active {
			return &AccrualResult{Investment: &inv, Plan: plan, User: user, Profit: decimal.Zero}, nil
		}

		dailyProfit := plan.DailyReturn.Mul(inv.Amount).Div(percentDivisor)
		totalProfit := dailyProfit.Mul(decimal.NewFromInt(int64(elapsed)))

		commitErr := a.commitAccrual(ctx, &inv, user, today, totalProfit)
		if commitErr == nil {
			return &AccrualResult{Investment: &inv, Plan: plan, User: user, Profit: totalProfit, Days: elapsed}, nil
		}

		if !errors.Is(commitErr, domain.ErrVersionConflict) || attempt >= accrueMaxAttempts {
			return nil, fmt.Errorf("accruing investment %d: %w", investment.ID, commitErr)
		}

		// Конфликт watermark'а: перечитываем вклад и пробуем еще раз с актуальным состоянием.
		fresh, freshErr := a.invRepo.GetByID(ctx, inv.ID)
		if freshErr != nil {
			return nil, fmt.Errorf("accruing investment %d: %w", investment.ID, freshErr)
		}
		inv = *fresh
	}
}

// commitAccrual фиксирует продвижение watermark'а и дельту баланса атомарно. Частичный коммит
// (баланс без watermark'а или наоборот) невозможен - обе записи в одной транзакции.
func (a *AccrualService) commitAccrual(
	ctx context.Context,
	inv *domain.Investment,
	user *domain.User,
	today time.Time,
	profit decimal.Decimal,
) error {
	txErr := a.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		invRepo, invRepoErr := uow.GetAs[InvestmentRepository](tx, uow.RepositoryName(repoargs.InvestmentRepoName))
		if invRepoErr != nil {
			return invRepoErr //nolint:wrapcheck
		}
		if wmErr := invRepo.AdvanceWatermark(c, repoargs.AdvanceWatermark{
			ID:   inv.ID,
			From: inv.LastCalculated,
			To:   today,
		}); wmErr != nil {
			return wmErr //nolint:wrapcheck
		}

		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		updatedUser, balanceErr := userRepo.AddToBalance(c, inv.UserID, profit)
		if balanceErr != nil {
			return balanceErr //nolint:wrapcheck
		}

		inv.LastCalculated = today
		*user = *updatedUser
		return nil
	})
	return txErr
}

// Mature проверяет дату окончания вклада и при необходимости деактивирует его. Проверка
// не зависит от того, было ли в этом цикле начисление. Возвращает true если вклад
// деактивирован именно этим вызовом.
func (a *AccrualService) Mature(ctx context.Context, investment domain.Investment) (bool, error) {
	today := a.clock.Today()
	if !investment.Active || !today.After(investment.EndDate) {
		return false, nil
	}

	if err := a.invRepo.Deactivate(ctx, investment.ID, today); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			// Вклад уже деактивирован конкурентным проходом - no-op.
			return false, nil
		}
		return false, fmt.Errorf("maturing investment %d: %w", investment.ID, err)
	}
	return true, nil
}
