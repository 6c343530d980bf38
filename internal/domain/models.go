package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Phone     string
	Balance   decimal.Decimal
	// LastSuggestionSent дата последней проактивной рекомендации плана. nil если рекомендаций еще не было.
	LastSuggestionSent *time.Time
}

// Plan тарифный план вклада. Планы иммутабельны - движок их только читает.
type Plan struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Name          string
	DailyReturn   decimal.Decimal
	MinInvestment decimal.Decimal
	DurationDays  int32
}

// Investment вклад юзера в тарифный план.
//
// LastCalculated - watermark: дата по которую доход уже начислен. Инвариант: монотонно не убывает
// и не превышает текущую дату обработки. Active после перехода в false обратно не включается.
type Investment struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         int64
	PlanID         int64
	Amount         decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	LastCalculated time.Time
	Active         bool
}

// Transaction запись аудита операций юзера, только дописывается. Начисление дохода
// транзакцией не является - это мутация баланса.
type Transaction struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
	Type      TransactionType
	Amount    decimal.Decimal
	Status    TransactionStatus
}
