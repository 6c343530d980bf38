package app

import (
	"context"
	"fmt"

	"github.com/zentfin/zent-finance/internal/clock"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
	"github.com/zentfin/zent-finance/internal/scheduler"
	"github.com/zentfin/zent-finance/internal/transport/gateway"
	"github.com/zentfin/zent-finance/internal/transport/webhook"

	"github.com/zentfin/zent-finance/pkg/uow"

	"github.com/sirupsen/logrus"
	"github.com/zentfin/zent-finance/internal/config"
	"github.com/zentfin/zent-finance/internal/repository/pgrepo"
	"github.com/zentfin/zent-finance/internal/service"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	"os/signal"
	"syscall"

	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %+v", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	systemClock := clock.NewSystemClock()

	services, sErr := service.Factory(unitOfWork, systemClock)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	sender := gateway.NewHTTPClient(a.Config.GatewayAPIURL, a.Config.GatewayInstance, a.Config.GatewayToken)
	dispatcher := gateway.NewDispatcher(sender, a.Logger)

	router := webhook.New(webhook.RouterArgs{
		Logger:        a.Logger,
		WalletService: services.WalletService,
		Replier:       dispatcher,
		WebsiteURL:    a.Config.WebsiteURL,
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	processor := scheduler.NewProcessor(services.AccrualService, services.ReportService, dispatcher, a.Logger)
	sched := scheduler.New(scheduler.Args{
		Processor:      processor,
		Logger:         a.Logger,
		AccrualSpec:    a.Config.AccrualSpec,
		ReportSpec:     a.Config.ReportSpec,
		SuggestionSpec: a.Config.SuggestionSpec,
	})
	if schedErr := sched.Start(notifyCtx); schedErr != nil {
		return fmt.Errorf("app run: %s", schedErr.Error())
	}
	defer sched.Stop()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	repositories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.PlanRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPlanRepository(dbtx)
		},
		repoargs.InvestmentRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewInvestmentRepository(dbtx)
		},
		repoargs.TransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTransactionRepository(dbtx)
		},
	}

	for name, factory := range repositories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
