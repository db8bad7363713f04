package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/srochno-market/internal/config"
	"github.com/fsdevblog/srochno-market/internal/repository/pgrepo"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/internal/service"
	"github.com/fsdevblog/srochno-market/internal/sweeper"
	"github.com/fsdevblog/srochno-market/internal/transport/api"
	"github.com/fsdevblog/srochno-market/internal/transport/cryptopay"
	"github.com/fsdevblog/srochno-market/internal/transport/telegram"
	"github.com/fsdevblog/srochno-market/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
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

	a.Logger.Infof("Starting app on %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	gateway := cryptopay.New(a.Config.CryptoPayBaseURL, a.Config.CryptoPayToken)
	sender := telegram.New(a.Config.TelegramBotToken)

	services, sErr := service.Factory(unitOfWork, gateway, sender, a.Config, a.Logger)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:         a.Logger,
		UserService:    services.UserService,
		OrderService:   services.OrderService,
		BalanceService: services.LedgerService,
		PaymentService: services.PaymentService,
		JWTSecretKey:   []byte(a.Config.JWTUserSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	go sweeper.New(services.SweepService, a.Config.SweepInterval, a.Logger).Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.OrderRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewOrderRepository(dbtx)
		},
		repoargs.TakeRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTakeRepository(dbtx)
		},
		repoargs.BalanceTransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewBalanceTransactionRepository(dbtx)
		},
		repoargs.PaymentInvoiceRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPaymentInvoiceRepository(dbtx)
		},
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
