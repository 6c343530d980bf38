package repoargs

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvestmentCreate struct {
	UserID         int64
	PlanID         int64
	Amount         decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	LastCalculated time.Time
}

// AdvanceWatermark аргументы условного продвижения watermark'а. Обновление выполняется только
// если в БД last_calculated все еще равен From - иначе начисление посчитал кто-то другой.
type AdvanceWatermark struct {
	ID   int64
	From time.Time
	To   time.Time
}
