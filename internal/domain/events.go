package domain

import "github.com/shopspring/decimal"

// EarningsAccrued событие успешного начисления дохода. Profit и Balance - значения
// зафиксированные в хранилище; тексты уведомлений строятся только из них.
type EarningsAccrued struct {
	UserID   int64
	Phone    string
	PlanName string
	Profit   decimal.Decimal
	Balance  decimal.Decimal
}

// InvestmentMatured событие завершения вклада (прошла дата окончания).
type InvestmentMatured struct {
	UserID   int64
	Phone    string
	PlanName string
}
