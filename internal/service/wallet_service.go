package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zentfin/zent-finance/internal/clock"
	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
	"github.com/zentfin/zent-finance/pkg/uow"
)

// WalletService операции обработчика команд: пополнение, вывод и открытие вклада.
// Использует ту же дисциплину условных обновлений что и начисление, чтобы входящая
// команда и плановый проход не потеряли обновления друг друга.
type WalletService struct {
	uow      uow.UOW
	userRepo UserRepository
	planRepo PlanRepository
	clock    clock.Clock
}

func NewWalletService(u uow.UOW, c clock.Clock) (*WalletService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	planRepo, planRepoErr := uow.GetRepositoryAs[PlanRepository](u, uow.RepositoryName(repoargs.PlanRepoName))
	if planRepoErr != nil {
		return nil, planRepoErr
	}
	return &WalletService{
		uow:      u,
		userRepo: userRepo,
		planRepo: planRepo,
		clock:    c,
	}, nil
}

func (w *WalletService) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	user, err := w.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

// Deposit увеличивает баланс юзера и дописывает транзакцию аудита. Обе записи в одной
// транзакции БД. Возвращает юзера с новым балансом.
func (w *WalletService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.User, error) {
	var user *domain.User

	txErr := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		var balanceErr error
		user, balanceErr = userRepo.AddToBalance(c, userID, amount)
		if balanceErr != nil {
			return balanceErr //nolint:wrapcheck
		}
		return w.appendTransaction(c, tx, userID, domain.TransactionTypeDeposit, amount)
	})
	if txErr != nil {
		return nil, fmt.Errorf("depositing for user %d: %w", userID, txErr)
	}
	return user, nil
}

// Withdraw уменьшает баланс юзера при достаточности средств. При нехватке возвращает
// domain.ErrNotEnoughBalance; никакие записи при этом не создаются.
func (w *WalletService) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.User, error) {
	var user *domain.User

	txErr := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		var balanceErr error
		user, balanceErr = userRepo.SubtractFromBalance(c, userID, amount)
		if balanceErr != nil {
			return balanceErr //nolint:wrapcheck
		}
		return w.appendTransaction(c, tx, userID, domain.TransactionTypeWithdraw, amount)
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrNotEnoughBalance) {
			return nil, domain.ErrNotEnoughBalance
		}
		return nil, fmt.Errorf("withdrawing for user %d: %w", userID, txErr)
	}
	return user, nil
}

// Invest открывает вклад: проверяет план и минимальную сумму, списывает amount с баланса
// и создает вклад с watermark'ом равным дате старта. Все записи в одной транзакции.
//
// Возвращаемые ошибки: *domain.PlanNotFoundError если план не найден,
// domain.ErrBelowMinInvestment если сумма меньше минимальной,
// domain.ErrNotEnoughBalance при нехватке средств.
func (w *WalletService) Invest(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
	planName string,
) (*domain.Investment, *domain.Plan, error) {
	plan, planErr := w.planRepo.FindByName(ctx, planName)
	if planErr != nil {
		if errors.Is(planErr, domain.ErrRecordNotFound) {
			return nil, nil, domain.NewPlanNotFoundError(planName)
		}
		return nil, nil, fmt.Errorf("investing for user %d: %w", userID, planErr)
	}

	if amount.LessThan(plan.MinInvestment) {
		return nil, plan, domain.ErrBelowMinInvestment
	}

	startDate := w.clock.Today()
	endDate := startDate.AddDate(0, 0, int(plan.DurationDays))

	var investment *domain.Investment
	txErr := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		if _, balanceErr := userRepo.SubtractFromBalance(c, userID, amount); balanceErr != nil {
			return balanceErr //nolint:wrapcheck
		}

		invRepo, invRepoErr := uow.GetAs[InvestmentRepository](tx, uow.RepositoryName(repoargs.InvestmentRepoName))
		if invRepoErr != nil {
			return invRepoErr //nolint:wrapcheck
		}
		var createErr error
		investment, createErr = invRepo.Create(c, repoargs.InvestmentCreate{
			UserID:         userID,
			PlanID:         plan.ID,
			Amount:         amount,
			StartDate:      startDate,
			EndDate:        endDate,
			LastCalculated: startDate,
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrNotEnoughBalance) {
			return nil, plan, domain.ErrNotEnoughBalance
		}
		return nil, plan, fmt.Errorf("investing for user %d: %w", userID, txErr)
	}
	return investment, plan, nil
}

func (w *WalletService) appendTransaction(
	ctx context.Context,
	tx uow.TX,
	userID int64,
	transType domain.TransactionType,
	amount decimal.Decimal,
) error {
	transRepo, transRepoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
	if transRepoErr != nil {
		return transRepoErr //nolint:wrapcheck
	}
	if _, createErr := transRepo.Create(ctx, repoargs.TransactionCreate{
		UserID: userID,
		Type:   transType,
		Amount: amount,
		Status: domain.TransactionStatusApproved,
	}); createErr != nil {
		return createErr //nolint:wrapcheck
	}
	return nil
}
