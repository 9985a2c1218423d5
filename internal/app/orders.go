// Package app сборка обоих сервисов: подключения, юниты работы, сервисы, фоновые воркеры
// и HTTP-роутер. Каждый сервис — отдельная структура с одинаковым жизненным циклом.
package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/internal/config"
	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/messages"
	"github.com/fsdevblog/groph-pay/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/internal/service"
	"github.com/fsdevblog/groph-pay/internal/transport/api"
	"github.com/fsdevblog/groph-pay/internal/transport/rabbit"
	"github.com/fsdevblog/groph-pay/internal/worker"
	"github.com/fsdevblog/groph-pay/pkg/uow"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrdersApp struct {
	Config *config.Config
	Logger *logrus.Logger
}

func NewOrders(conf *config.Config, l *logrus.Logger) *OrdersApp {
	return &OrdersApp{
		Config: conf,
		Logger: l,
	}
}

func (a *OrdersApp) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting orders app with config: %+v", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("orders app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initOrdersUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("orders app run: %s", uowErr.Error())
	}

	services, sErr := service.OrdersFactory(unitOfWork, a.Logger)
	if sErr != nil {
		return fmt.Errorf("orders app run: %s", sErr.Error())
	}

	broker, brokerErr := rabbit.Connect(a.Config.AMQPURL, a.Logger)
	if brokerErr != nil {
		return fmt.Errorf("orders app run: %s", brokerErr.Error())
	}
	defer broker.Close()

	router, routerErr := api.NewOrdersRouter(api.OrdersRouterArgs{
		Logger:       a.Logger,
		OrderService: services.OrderService,
	})
	if routerErr != nil {
		return fmt.Errorf("orders app run: %s", routerErr.Error())
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	publisher := worker.NewOutboxPublisher(
		services.OutboxService,
		broker,
		map[domain.MessageType]string{
			domain.MessageTypeOrderPaymentRequest: messages.QueueOrderPayments,
		},
		a.Logger,
	)
	go publisher.Run(notifyCtx)

	processor := worker.NewInboxProcessor(
		services.InboxService,
		worker.InboxHandlerFunc(services.OrderService.ApplyPaymentResult),
		a.Logger,
	)
	go processor.Run(notifyCtx)

	go func() {
		consumeErr := broker.Consume(notifyCtx, messages.QueuePaymentResults,
			func(ctx context.Context, messageID string, payload []byte) error {
				_, _, recordErr := services.InboxService.Record(ctx, domain.MessageTypePaymentResult, messageID, payload)
				return recordErr //nolint:wrapcheck
			})
		if consumeErr != nil && !errors.Is(consumeErr, context.Canceled) {
			errChan <- consumeErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initOrdersUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// order repo
	orderRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewOrderRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.OrderRepoName), orderRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// outbox repo
	outboxRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewOutboxRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.OutboxRepoName), outboxRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// inbox repo
	inboxRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewInboxRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.InboxRepoName), inboxRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
