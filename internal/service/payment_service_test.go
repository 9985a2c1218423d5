package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/messages"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/internal/service/mocks"
	"github.com/fsdevblog/groph-pay/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-pay/pkg/uow/mocks"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockUOW             *uowmocks.MockUOW
	mockTX              *uowmocks.MockTX
	mockAccountRepo     *mocks.MockAccountRepository
	mockTransactionRepo *mocks.MockPaymentTransactionRepository
	mockInboxRepo       *mocks.MockInboxRepository
	mockOutboxRepo      *mocks.MockOutboxRepository
	paymentService      *PaymentService
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (s *PaymentServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockAccountRepo = mocks.NewMockAccountRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockPaymentTransactionRepository(s.mockCtrl)
	s.mockInboxRepo = mocks.NewMockInboxRepository(s.mockCtrl)
	s.mockOutboxRepo = mocks.NewMockOutboxRepository(s.mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()

	l := logrus.New()
	l.SetOutput(io.Discard)

	paymentService, servErr := NewPaymentService(s.mockUOW, l)
	s.Require().NoError(servErr)
	s.paymentService = paymentService
}

func (s *PaymentServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectTransaction настраивает прокидывание fn в mockTX и выдачу репозиториев из транзакции.
func (s *PaymentServiceTestSuite) expectTransaction() {
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.PaymentTransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.InboxRepoName)).
		Return(s.mockInboxRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OutboxRepoName)).
		Return(s.mockOutboxRepo, nil).AnyTimes()
}

func (s *PaymentServiceTestSuite) inboxMessage(request messages.OrderPaymentRequest) domain.InboxMessage {
	payload, err := json.Marshal(request)
	s.Require().NoError(err)

	return domain.InboxMessage{
		ID:          uuid.New(),
		MessageID:   uuid.New().String(),
		MessageType: domain.MessageTypeOrderPaymentRequest,
		Payload:     payload,
	}
}

// Уже помеченное сообщение не трогает ни счет, ни outbox.
func (s *PaymentServiceTestSuite) TestProcessPaymentAlreadyProcessed() {
	message := s.inboxMessage(messages.OrderPaymentRequest{
		OrderID: uuid.New(),
		UserID:  gofakeit.UUID(),
		Amount:  decimal.NewFromInt(100),
	})
	message.Processed = true

	// Ни одного вызова uow.Do не ожидаем.
	err := s.paymentService.ProcessPayment(context.Background(), message)
	s.NoError(err)
}

// Повторная обработка уже рассчитанного платежа: списания нет, в outbox уходит
// зафиксированный ранее исход.
func (s *PaymentServiceTestSuite) TestProcessPaymentAlreadySettled() {
	userID := gofakeit.UUID()
	orderID := uuid.New()
	request := messages.OrderPaymentRequest{
		OrderID: orderID,
		UserID:  userID,
		Amount:  decimal.NewFromInt(100),
	}
	message := s.inboxMessage(request)

	existing := domain.PaymentTransaction{
		ID:      uuid.New(),
		OrderID: orderID,
		UserID:  userID,
		Amount:  decimal.NewFromInt(100),
		Success: true,
	}

	s.expectTransaction()

	s.mockTransactionRepo.EXPECT().
		FindByOrderID(gomock.Any(), orderID).
		Return(&existing, nil)

	// Повторного списания и повторной записи транзакции быть не должно:
	// UpdateBalance и Create не мокаются вовсе.

	s.mockInboxRepo.EXPECT().MarkProcessed(gomock.Any(), message.ID).Return(nil)

	s.mockOutboxRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.OutboxMessageCreate) (*domain.OutboxMessage, error) {
			s.Equal(domain.MessageTypePaymentResult, args.MessageType)

			var result messages.PaymentResult
			s.Require().NoError(json.Unmarshal(args.Payload, &result))
			s.Equal(orderID, result.OrderID)
			s.True(result.Success)
			return &domain.OutboxMessage{ID: args.ID}, nil
		})

	err := s.paymentService.ProcessPayment(context.Background(), message)
	s.NoError(err)
}

// Счета нет — отказ с причиной "Account not found", без списания.
func (s *PaymentServiceTestSuite) TestProcessPaymentAccountNotFound() {
	userID := gofakeit.UUID()
	orderID := uuid.New()
	message := s.inboxMessage(messages.OrderPaymentRequest{
		OrderID: orderID,
		UserID:  userID,
		Amount:  decimal.NewFromInt(100),
	})

	s.expectTransaction()

	s.mockTransactionRepo.EXPECT().
		FindByOrderID(gomock.Any(), orderID).
		Return(nil, domain.ErrRecordNotFound)

	s.mockAccountRepo.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(nil, domain.ErrRecordNotFound)

	s.mockTransactionRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.PaymentTransactionCreate) (*domain.PaymentTransaction, error) {
			s.Equal(orderID, args.OrderID)
			s.False(args.Success)
			s.Equal(domain.PaymentErrAccountNotFound, args.ErrorMessage)
			return &domain.PaymentTransaction{ID: args.ID}, nil
		})

	s.mockInboxRepo.EXPECT().MarkProcessed(gomock.Any(), message.ID).Return(nil)

	s.mockOutboxRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.OutboxMessageCreate) (*domain.OutboxMessage, error) {
			var result messages.PaymentResult
			s.Require().NoError(json.Unmarshal(args.Payload, &result))
			s.False(result.Success)
			s.Equal(domain.PaymentErrAccountNotFound, result.ErrorMessage)
			return &domain.OutboxMessage{ID: args.ID}, nil
		})

	err := s.paymentService.ProcessPayment(context.Background(), message)
	s.NoError(err)
}

// Средств не хватает — отказ с причиной "Insufficient funds", баланс не меняется.
func (s *PaymentServiceTestSuite) TestProcessPaymentInsufficientFunds() {
	userID := gofakeit.UUID()
	orderID := uuid.New()
	message := s.inboxMessage(messages.OrderPaymentRequest{
		OrderID: orderID,
		UserID:  userID,
		Amount:  decimal.NewFromInt(100),
	})

	account := domain.Account{
		ID:      1,
		UserID:  userID,
		Balance: decimal.NewFromInt(99),
	}

	s.expectTransaction()

	s.mockTransactionRepo.EXPECT().
		FindByOrderID(gomock.Any(), orderID).
		Return(nil, domain.ErrRecordNotFound)

	s.mockAccountRepo.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&account, nil)

	s.mockTransactionRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.PaymentTransactionCreate) (*domain.PaymentTransaction, error) {
			s.False(args.Success)
			s.Equal(domain.PaymentErrInsufficientFunds, args.ErrorMessage)
			return &domain.PaymentTransaction{ID: args.ID}, nil
		})

	s.mockInboxRepo.EXPECT().MarkProcessed(gomock.Any(), message.ID).Return(nil)

	s.mockOutboxRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.OutboxMessageCreate) (*domain.OutboxMessage, error) {
			var result messages.PaymentResult
			s.Require().NoError(json.Unmarshal(args.Payload, &result))
			s.False(result.Success)
			s.Equal(domain.PaymentErrInsufficientFunds, result.ErrorMessage)
			return &domain.OutboxMessage{ID: args.ID}, nil
		})

	err := s.paymentService.ProcessPayment(context.Background(), message)
	s.NoError(err)
}

// Успешный платеж: списание ровно на сумму заказа, все четыре записи в одной транзакции.
func (s *PaymentServiceTestSuite) TestProcessPaymentSuccess() {
	userID := gofakeit.UUID()
	orderID := uuid.New()
	amount := decimal.NewFromInt(100)
	message := s.inboxMessage(messages.OrderPaymentRequest{
		OrderID: orderID,
		UserID:  userID,
		Amount:  amount,
	})

	account := domain.Account{
		ID:      1,
		UserID:  userID,
		Balance: decimal.NewFromInt(150),
	}

	s.expectTransaction()

	s.mockTransactionRepo.EXPECT().
		FindByOrderID(gomock.Any(), orderID).
		Return(nil, domain.ErrRecordNotFound)

	s.mockAccountRepo.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&account, nil)

	s.mockAccountRepo.EXPECT().
		UpdateBalance(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, balance decimal.Decimal) (*domain.Account, error) {
			// 150 - 100 = 50
			s.True(balance.Equal(decimal.NewFromInt(50)))
			return &domain.Account{UserID: userID, Balance: balance}, nil
		})

	s.mockTransactionRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.PaymentTransactionCreate) (*domain.PaymentTransaction, error) {
			s.Equal(orderID, args.OrderID)
			s.True(args.Success)
			s.True(args.Amount.Equal(amount))
			return &domain.PaymentTransaction{ID: args.ID}, nil
		})

	s.mockInboxRepo.EXPECT().MarkProcessed(gomock.Any(), message.ID).Return(nil)

	s.mockOutboxRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.OutboxMessageCreate) (*domain.OutboxMessage, error) {
			var result messages.PaymentResult
			s.Require().NoError(json.Unmarshal(args.Payload, &result))
			s.Equal(orderID, result.OrderID)
			s.True(result.Success)
			s.Empty(result.ErrorMessage)
			return &domain.OutboxMessage{ID: args.ID}, nil
		})

	err := s.paymentService.ProcessPayment(context.Background(), message)
	s.NoError(err)
}

func (s *PaymentServiceTestSuite) TestTopUp() {
	userID := gofakeit.UUID()

	account := domain.Account{
		ID:      1,
		UserID:  userID,
		Balance: decimal.NewFromInt(30),
	}

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil)

	s.mockAccountRepo.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(&account, nil)

	s.mockAccountRepo.EXPECT().
		UpdateBalance(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, balance decimal.Decimal) (*domain.Account, error) {
			s.True(balance.Equal(decimal.NewFromInt(50)))
			return &domain.Account{UserID: userID, Balance: balance}, nil
		})

	updated, err := s.paymentService.TopUp(context.Background(), userID, decimal.NewFromInt(20))
	s.NoError(err)
	s.Require().NotNil(updated)
	s.True(updated.Balance.Equal(decimal.NewFromInt(50)))
}

func (s *PaymentServiceTestSuite) TestCreateAccountDuplicate() {
	userID := gofakeit.UUID()

	s.mockAccountRepo.EXPECT().
		Create(gomock.Any(), userID).
		Return(nil, domain.ErrDuplicateKey)

	account, err := s.paymentService.CreateAccount(context.Background(), userID)
	s.Nil(account)
	s.ErrorIs(err, domain.ErrDuplicateKey)
}
