package gateway

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zentfin/zent-finance/internal/domain"
)

// Dispatcher доставляет уведомления о событиях движка. Ошибка доставки логируется
// и отбрасывается: финансовое состояние к этому моменту уже зафиксировано, уведомление -
// best-effort. Откатывать или повторять мутацию из-за недоступного шлюза нельзя.
type Dispatcher struct {
	sender Sender
	l      *logrus.Entry
}

func NewDispatcher(sender Sender, l *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		l: l.WithFields(logrus.Fields{
			"component": "gateway",
			"module":    "dispatcher",
		}),
	}
}

// EarningsAccrued уведомляет юзера о начисленном доходе. Суммы берутся из события,
// то есть из зафиксированных в БД значений - ничего не пересчитывается.
func (d *Dispatcher) EarningsAccrued(ctx context.Context, event domain.EarningsAccrued) {
	body := fmt.Sprintf(
		"Your daily earning from %s is %s. Current balance: %s.",
		event.PlanName, event.Profit, event.Balance,
	)
	d.deliver(ctx, event.UserID, event.Phone, body)
}

// InvestmentMatured уведомляет юзера о завершении вклада.
func (d *Dispatcher) InvestmentMatured(ctx context.Context, event domain.InvestmentMatured) {
	body := fmt.Sprintf(
		"Your investment in %s has ended. Total earnings added to your balance.",
		event.PlanName,
	)
	d.deliver(ctx, event.UserID, event.Phone, body)
}

// Notify отправляет произвольный текст (отчеты, рекомендации, ответы на команды).
// В отличие от событийных методов возвращает ошибку доставки - вызывающая сторона
// может использовать ее как сигнал (но не для отката мутаций).
func (d *Dispatcher) Notify(ctx context.Context, to string, body string) error {
	if err := d.sender.Send(ctx, to, body); err != nil {
		d.l.WithError(err).WithField("to", to).Error("message delivery failed")
		return err //nolint:wrapcheck
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, userID int64, to string, body string) {
	if err := d.sender.Send(ctx, to, body); err != nil {
		// только логируем: доставка не должна влиять на результат прохода.
		d.l.WithError(err).WithFields(logrus.Fields{
			"userID": userID,
			"to":     to,
		}).Error("event notification delivery failed")
	}
}
