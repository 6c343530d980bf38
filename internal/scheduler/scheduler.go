package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler владеет периодическими триггерами движка. Каждая джоба обернута в
// cron.SkipIfStillRunning: если проход еще идет когда срабатывает следующий триггер,
// новый запуск пропускается, а не ставится в очередь - одновременно может выполняться
// не больше одного прохода каждого типа.
type Scheduler struct {
	cron           *cron.Cron
	processor      *Processor
	l              *logrus.Entry
	accrualSpec    string
	reportSpec     string
	suggestionSpec string
}

type Args struct {
	Processor      *Processor
	Logger         *logrus.Logger
	AccrualSpec    string
	ReportSpec     string
	SuggestionSpec string
}

func New(args Args) *Scheduler {
	l := args.Logger.WithFields(logrus.Fields{
		"component": "scheduler",
		"module":    "cron",
	})
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(newCronLogger(l)),
	))
	return &Scheduler{
		cron:           c,
		processor:      args.Processor,
		l:              l,
		accrualSpec:    args.AccrualSpec,
		reportSpec:     args.ReportSpec,
		suggestionSpec: args.SuggestionSpec,
	}
}

// Start регистрирует джобы и запускает крон. ctx пробрасывается в проходы: его отмена
// просит идущий проход доработать текущий элемент и выйти.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.accrualSpec, func() {
		s.processor.RunAccrualPass(ctx)
	}); err != nil {
		return fmt.Errorf("scheduling accrual pass: %s", err.Error())
	}

	if _, err := s.cron.AddFunc(s.reportSpec, func() {
		s.processor.RunReportPass(ctx)
	}); err != nil {
		return fmt.Errorf("scheduling report pass: %s", err.Error())
	}

	if _, err := s.cron.AddFunc(s.suggestionSpec, func() {
		s.processor.RunSuggestionPass(ctx)
	}); err != nil {
		return fmt.Errorf("scheduling suggestion pass: %s", err.Error())
	}

	s.cron.Start()
	s.l.WithFields(logrus.Fields{
		"accrual":    s.accrualSpec,
		"report":     s.reportSpec,
		"suggestion": s.suggestionSpec,
	}).Info("scheduler started")
	return nil
}

// Stop останавливает крон и дожидается завершения идущих джоб.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.l.Info("scheduler stopped")
}
