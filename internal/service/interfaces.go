package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	AddToBalance(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.User, error)
	SubtractFromBalance(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.User, error)
	SetLastSuggestionSent(ctx context.Context, userID int64, sentAt time.Time) error
}

type PlanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	FindByName(ctx context.Context, name string) (*domain.Plan, error)
	GetAll(ctx context.Context) ([]domain.Plan, error)
}

type InvestmentRepository interface {
	Create(ctx context.Context, args repoargs.InvestmentCreate) (*domain.Investment, error)
	GetByID(ctx context.Context, id int64) (*domain.Investment, error)
	GetActive(ctx context.Context) ([]domain.Investment, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Investment, error)
	GetActiveByUserID(ctx context.Context, userID int64) ([]domain.Investment, error)
	AdvanceWatermark(ctx context.Context, args repoargs.AdvanceWatermark) error
	Deactivate(ctx context.Context, id int64, asOf time.Time) error
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error)
	GetByUserSince(ctx context.Context, userID int64, since time.Time) ([]domain.Transaction, error)
}
