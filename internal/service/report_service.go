package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zentfin/zent-finance/internal/clock"
	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
	"github.com/zentfin/zent-finance/pkg/uow"
)

const reportTransactionsWindow = 24 * time.Hour

// ReportService собирает тексты ежедневных отчетов и проактивных рекомендаций планов.
// Тексты строятся только из сохраненных полей - сервис ничего не пересчитывает.
type ReportService struct {
	userRepo  UserRepository
	planRepo  PlanRepository
	invRepo   InvestmentRepository
	transRepo TransactionRepository
	clock     clock.Clock
}

func NewReportService(u uow.UOW, c clock.Clock) (*ReportService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	planRepo, planRepoErr := uow.GetRepositoryAs[PlanRepository](u, uow.RepositoryName(repoargs.PlanRepoName))
	if planRepoErr != nil {
		return nil, planRepoErr
	}
	invRepo, invRepoErr := uow.GetRepositoryAs[InvestmentRepository](u, uow.RepositoryName(repoargs.InvestmentRepoName))
	if invRepoErr != nil {
		return nil, invRepoErr
	}
	transRepo, transRepoErr := uow.GetRepositoryAs[TransactionRepository](
		u, uow.RepositoryName(repoargs.TransactionRepoName))
	if transRepoErr != nil {
		return nil, transRepoErr
	}
	return &ReportService{
		userRepo:  userRepo,
		planRepo:  planRepo,
		invRepo:   invRepo,
		transRepo: transRepo,
		clock:     c,
	}, nil
}

func (r *ReportService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := r.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return users, nil
}

// BuildDailyReport собирает текст ежедневного финансового отчета: баланс, вклады
// и транзакции за последние сутки.
func (r *ReportService) BuildDailyReport(ctx context.Context, user domain.User) (string, error) {
	investments, invErr := r.invRepo.GetByUserID(ctx, user.ID)
	if invErr != nil {
		return "", fmt.Errorf("building report for user %d: %w", user.ID, invErr)
	}

	since := r.clock.Now().Add(-reportTransactionsWindow)
	transactions, transErr := r.transRepo.GetByUserSince(ctx, user.ID, since)
	if transErr != nil {
		return "", fmt.Errorf("building report for user %d: %w", user.ID, transErr)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, here is your daily financial report:\n\n", user.Name)
	fmt.Fprintf(&b, "Balance: %s\n\n", user.Balance)

	b.WriteString("Active Investments:\n")
	var activeCount int
	for _, inv := range investments {
		if !inv.Active {
			continue
		}
		activeCount++
		fmt.Fprintf(&b, "- %s in Plan %d, Ends: %s\n", inv.Amount, inv.PlanID, inv.EndDate.Format(time.DateOnly))
	}
	if activeCount == 0 {
		b.WriteString("None\n")
	}

	b.WriteString("\nTransactions Today:\n")
	if len(transactions) == 0 {
		b.WriteString("None\n")
	}
	for _, trans := range transactions {
		fmt.Fprintf(&b, "- %s of %s, Status: %s\n", trans.Type, trans.Amount, trans.Status)
	}

	return b.String(), nil
}

// SuggestPlan подбирает юзеру план для рекомендации. Возвращает текст рекомендации и флаг
// "стоит ли отправлять".
//
// Рекомендация не отправляется если:
//   - у юзера уже есть активный вклад;
//   - рекомендация уже отправлялась сегодня (защита от спама через last_suggestion_sent);
//   - баланса не хватает ни на один план.
//
// Из доступных по балансу планов выбирается план с наибольшей дневной ставкой.
func (r *ReportService) SuggestPlan(ctx context.Context, user domain.User) (string, bool, error) {
	today := r.clock.Today()
	if user.LastSuggestionSent != nil && !today.After(clock.DateOnly(*user.LastSuggestionSent)) {
		return "", false, nil
	}

	active, activeErr := r.invRepo.GetActiveByUserID(ctx, user.ID)
	if activeErr != nil {
		return "", false, fmt.Errorf("suggesting plan for user %d: %w", user.ID, activeErr)
	}
	if len(active) > 0 {
		return "", false, nil
	}

	plans, plansErr := r.planRepo.GetAll(ctx)
	if plansErr != nil {
		return "", false, fmt.Errorf("suggesting plan for user %d: %w", user.ID, plansErr)
	}

	var best *domain.Plan
	for i, plan := range plans {
		if user.Balance.LessThan(plan.MinInvestment) {
			continue
		}
		if best == nil || plan.DailyReturn.GreaterThan(best.DailyReturn) {
			best = &plans[i]
		}
	}
	if best == nil {
		return "", false, nil
	}

	msg := fmt.Sprintf(
		"Hi %s! Your balance %s is sitting idle. Plan %s earns %s%% daily (min %s, %d days). "+
			"Reply \"invest <amount> %s\" to start.",
		user.Name, user.Balance, best.Name, best.DailyReturn, best.MinInvestment, best.DurationDays, best.Name,
	)
	return msg, true, nil
}

// MarkSuggested продвигает дату последней рекомендации. Вызывается только после успешной
// доставки, чтобы неудачная отправка не глушила рекомендацию до завтра.
func (r *ReportService) MarkSuggested(ctx context.Context, userID int64) error {
	if err := r.userRepo.SetLastSuggestionSent(ctx, userID, r.clock.Today()); err != nil {
		return fmt.Errorf("marking suggestion sent for user %d: %w", userID, err)
	}
	return nil
}
