package webhook

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zentfin/zent-finance/internal/domain"
)

// WalletServicer интерфейс исключительно для моков.
type WalletServicer interface {
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.User, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.User, error)
	Invest(
		ctx context.Context,
		userID int64,
		amount decimal.Decimal,
		planName string,
	) (*domain.Investment, *domain.Plan, error)
}

type Replier interface {
	Notify(ctx context.Context, to string, body string) error
}
