package repoargs

import (
	"github.com/shopspring/decimal"

	"github.com/zentfin/zent-finance/internal/domain"
)

type TransactionCreate struct {
	UserID int64
	Type   domain.TransactionType
	Amount decimal.Decimal
	Status domain.TransactionStatus
}
