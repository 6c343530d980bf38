package scheduler

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/service"
)

type AccrualServicer interface {
	ActiveInvestments(ctx context.Context) ([]domain.Investment, error)
	Accrue(ctx context.Context, investment domain.Investment) (*service.AccrualResult, error)
	Mature(ctx context.Context, investment domain.Investment) (bool, error)
}

type ReportServicer interface {
	Users(ctx context.Context) ([]domain.User, error)
	BuildDailyReport(ctx context.Context, user domain.User) (string, error)
	SuggestPlan(ctx context.Context, user domain.User) (string, bool, error)
	MarkSuggested(ctx context.Context, userID int64) error
}

type Dispatcher interface {
	EarningsAccrued(ctx context.Context, event domain.EarningsAccrued)
	InvestmentMatured(ctx context.Context, event domain.InvestmentMatured)
	Notify(ctx context.Context, to string, body string) error
}
