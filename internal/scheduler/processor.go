// Package scheduler выполняет периодические проходы движка: начисление дохода с проверкой
// завершения вкладов, ежедневные отчеты и проактивные рекомендации планов.
package scheduler

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"time"

	"github.com/zentfin/zent-finance/internal/domain"
)

const defaultItemTimeout = 10 * time.Second

// PassSummary итог одного прохода. Проход никогда не возвращает ошибку наверх -
// вместо этого отдает счетчики для наблюдаемости.
type PassSummary struct {
	Processed int
	Accrued   int
	Matured   int
	Skipped   int
	Failed    int
	Sent      int
}

// Processor прогоняет проходы по активным вкладам и юзерам. Ошибка обработки одного
// элемента не прерывает обработку остальных: элемент логируется, пропускается и будет
// повторен следующим проходом (watermark - точка возобновления).
type Processor struct {
	accrual     AccrualServicer
	reports     ReportServicer
	dispatcher  Dispatcher
	l           *logrus.Entry
	itemTimeout time.Duration
}

func NewProcessor(accrual AccrualServicer, reports ReportServicer, dispatcher Dispatcher, l *logrus.Logger) *Processor {
	return &Processor{
		accrual:    accrual,
		reports:    reports,
		dispatcher: dispatcher,
		l: l.WithFields(logrus.Fields{
			"component": "scheduler",
			"module":    "processor",
		}),
		itemTimeout: defaultItemTimeout,
	}
}

// SetItemTimeout устанавливает предел времени на обработку одного элемента прохода.
// Зависший элемент не должен блокировать остальные.
func (p *Processor) SetItemTimeout(timeout time.Duration) *Processor {
	p.itemTimeout = timeout
	return p
}

// RunAccrualPass выполняет один проход начисления: для каждого активного вклада сначала
// начисление, затем проверка завершения. Эффекты каждого вклада коммитятся независимо.
//
// При остановке процесса проход дорабатывает текущий вклад (его атомарный коммит) и выходит;
// недообработанные вклады безопасно возобновятся следующим проходом по watermark'у.
func (p *Processor) RunAccrualPass(ctx context.Context) *PassSummary {
	summary := new(PassSummary)

	listCtx, cancel := context.WithTimeout(ctx, p.itemTimeout)
	investments, listErr := p.accrual.ActiveInvestments(listCtx)
	cancel()
	if listErr != nil {
		p.l.WithError(listErr).Error("listing active investments")
		summary.Failed++
		return summary
	}

	for _, investment := range investments {
		select {
		case <-ctx.Done():
			p.l.Info("accrual pass interrupted, resuming next pass")
			return summary
		default:
		}
		summary.Processed++
		p.processInvestment(ctx, investment, summary)
	}

	p.l.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"accrued":   summary.Accrued,
		"matured":   summary.Matured,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("accrual pass finished")
	return summary
}

// processInvestment обрабатывает один вклад: начисление, затем - независимо от того, было ли
// начисление, - проверка даты окончания. Уведомления отправляются строго в порядке событий:
// сначала о доходе, потом о завершении.
func (p *Processor) processInvestment(ctx context.Context, investment domain.Investment, summary *PassSummary) {
	itemCtx, cancel := context.WithTimeout(ctx, p.itemTimeout)
	defer cancel()

	l := p.l.WithField("investmentID", investment.ID)

	result, accrueErr := p.accrual.Accrue(itemCtx, investment)
	if accrueErr != nil {
		if errors.Is(accrueErr, domain.ErrRecordNotFound) {
			// целостность данных нарушена только для этого вклада: его план или юзер отсутствует.
			l.WithError(accrueErr).Error("investment references missing plan or user, skipping")
			summary.Skipped++
		} else {
			l.WithError(accrueErr).Error("accrual failed, will retry next pass")
			summary.Failed++
		}
		return
	}

	if result.Days > 0 {
		summary.Accrued++
		p.dispatcher.EarningsAccrued(itemCtx, domain.EarningsAccrued{
			UserID:   result.User.ID,
			Phone:    result.User.Phone,
			PlanName: result.Plan.Name,
			Profit:   result.Profit,
			Balance:  result.User.Balance,
		})
	}

	matured, matureErr := p.accrual.Mature(itemCtx, *result.Investment)
	if matureErr != nil {
		l.WithError(matureErr).Error("maturity check failed, will retry next pass")
		summary.Failed++
		return
	}
	if matured {
		summary.Matured++
		p.dispatcher.InvestmentMatured(itemCtx, domain.InvestmentMatured{
			UserID:   result.User.ID,
			Phone:    result.User.Phone,
			PlanName: result.Plan.Name,
		})
	}
}

// RunReportPass отправляет каждому юзеру ежедневный финансовый отчет.
func (p *Processor) RunReportPass(ctx context.Context) *PassSummary {
	summary := new(PassSummary)

	users, usersErr := p.users(ctx, summary)
	if usersErr != nil {
		return summary
	}

	for _, user := range users {
		select {
		case <-ctx.Done():
			p.l.Info("report pass interrupted")
			return summary
		default:
		}
		summary.Processed++

		itemCtx, cancel := context.WithTimeout(ctx, p.itemTimeout)
		report, reportErr := p.reports.BuildDailyReport(itemCtx, user)
		if reportErr != nil {
			cancel()
			p.l.WithError(reportErr).WithField("userID", user.ID).Error("building report")
			summary.Failed++
			continue
		}
		if sendErr := p.dispatcher.Notify(itemCtx, user.Phone, report); sendErr == nil {
			summary.Sent++
		}
		cancel()
	}

	p.l.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"sent":      summary.Sent,
		"failed":    summary.Failed,
	}).Info("report pass finished")
	return summary
}

// RunSuggestionPass рассылает рекомендации планов юзерам без активных вкладов.
// Дата последней рекомендации продвигается только после успешной доставки.
func (p *Processor) RunSuggestionPass(ctx context.Context) *PassSummary {
	summary := new(PassSummary)

	users, usersErr := p.users(ctx, summary)
	if usersErr != nil {
		return summary
	}

	for _, user := range users {
		select {
		case <-ctx.Done():
			p.l.Info("suggestion pass interrupted")
			return summary
		default:
		}
		summary.Processed++

		itemCtx, cancel := context.WithTimeout(ctx, p.itemTimeout)
		p.suggestToUser(itemCtx, user, summary)
		cancel()
	}

	p.l.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"sent":      summary.Sent,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("suggestion pass finished")
	return summary
}

func (p *Processor) suggestToUser(ctx context.Context, user domain.User, summary *PassSummary) {
	msg, shouldSend, suggestErr := p.reports.SuggestPlan(ctx, user)
	if suggestErr != nil {
		p.l.WithError(suggestErr).WithField("userID", user.ID).Error("picking plan suggestion")
		summary.Failed++
		return
	}
	if !shouldSend {
		summary.Skipped++
		return
	}

	if sendErr := p.dispatcher.Notify(ctx, user.Phone, msg); sendErr != nil {
		summary.Failed++
		return
	}
	if markErr := p.reports.MarkSuggested(ctx, user.ID); markErr != nil {
		p.l.WithError(markErr).WithField("userID", user.ID).Error("marking suggestion sent")
		summary.Failed++
		return
	}
	summary.Sent++
}

func (p *Processor) users(ctx context.Context, summary *PassSummary) ([]domain.User, error) {
	listCtx, cancel := context.WithTimeout(ctx, p.itemTimeout)
	defer cancel()

	users, usersErr := p.reports.Users(listCtx)
	if usersErr != nil {
		p.l.WithError(usersErr).Error("listing users")
		summary.Failed++
		return nil, usersErr
	}
	return users, nil
}
