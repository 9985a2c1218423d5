package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
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
)

type PaymentsApp struct {
	Config *config.Config
	Logger *logrus.Logger
}

func NewPayments(conf *config.Config, l *logrus.Logger) *PaymentsApp {
	return &PaymentsApp{
		Config: conf,
		Logger: l,
	}
}

func (a *PaymentsApp) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting payments app with config: %+v", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("payments app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initPaymentsUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("payments app run: %s", uowErr.Error())
	}

	services, sErr := service.PaymentsFactory(unitOfWork, a.Logger)
	if sErr != nil {
		return fmt.Errorf("payments app run: %s", sErr.Error())
	}

	broker, brokerErr := rabbit.Connect(a.Config.AMQPURL, a.Logger)
	if brokerErr != nil {
		return fmt.Errorf("payments app run: %s", brokerErr.Error())
	}
	defer broker.Close()

	router, routerErr := api.NewPaymentsRouter(api.PaymentsRouterArgs{
		Logger:         a.Logger,
		AccountService: services.PaymentService,
	})
	if routerErr != nil {
		return fmt.Errorf("payments app run: %s", routerErr.Error())
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
			domain.MessageTypePaymentResult: messages.QueuePaymentResults,
		},
		a.Logger,
	)
	go publisher.Run(notifyCtx)

	processor := worker.NewInboxProcessor(
		services.InboxService,
		worker.InboxHandlerFunc(services.PaymentService.ProcessPayment),
		a.Logger,
	)
	go processor.Run(notifyCtx)

	go func() {
		consumeErr := broker.Consume(notifyCtx, messages.QueueOrderPayments,
			func(ctx context.Context, messageID string, payload []byte) error {
				_, _, recordErr := services.InboxService.Record(
					ctx, domain.MessageTypeOrderPaymentRequest, messageID, payload)
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

func initPaymentsUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// account repo
	accountRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewAccountRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.AccountRepoName), accountRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// payment transaction repo
	paymentTransactionRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewPaymentTransactionRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.PaymentTransactionRepoName),
		paymentTransactionRepoFactoryFn,
	); regErr != nil {
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
