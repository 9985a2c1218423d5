package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/messages"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type PaymentService struct {
	uow         uow.UOW
	accountRepo AccountRepository
	l           *logrus.Entry
}

func NewPaymentService(u uow.UOW, l *logrus.Logger) (*PaymentService, error) {
	accountRepo, err := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &PaymentService{
		uow:         u,
		accountRepo: accountRepo,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "payment",
		}),
	}, nil
}

// CreateAccount создает счет с нулевым балансом. Если счет у юзера уже есть —
// вернется domain.ErrDuplicateKey.
func (p *PaymentService) CreateAccount(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := p.accountRepo.Create(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

func (p *PaymentService) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := p.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

// TopUp пополняет баланс. Чтение и запись баланса выполняются в одной транзакции.
func (p *PaymentService) TopUp(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	var account *domain.Account

	txErr := p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		existing, findErr := accountRepo.FindByUserID(c, userID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}

		var updErr error
		account, updErr = accountRepo.UpdateBalance(c, userID, existing.Balance.Add(amount))
		return updErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, txErr //nolint:wrapcheck
	}
	return account, nil
}

// ProcessPayment конечный автомат обработки платежа. Для каждого orderId возможны ровно два
// терминальных состояния (успех/отказ), и оба достигаются не более одного раза:
//
//  1. Если inbox-строка уже помечена обработанной — no-op (защита от повторного вызова).
//  2. Если PaymentTransaction по orderId уже существует — списание не повторяется; помечаем
//     inbox-строку и заново кладем в outbox ранее зафиксированный исход. Так закрывается сценарий
//     "платеж обработан, но коммит пометки/результата не прошел": источник истины — уникальность
//     payment_transactions.order_id, а не флаг processed.
//  3. Иначе: нет счета -> отказ "Account not found"; не хватает средств -> отказ
//     "Insufficient funds"; иначе — успех со списанием.
//
// В каждом терминальном случае четыре записи (транзакция платежа, баланс при успехе,
// пометка inbox, outbox-результат) коммитятся одной транзакцией.
func (p *PaymentService) ProcessPayment(ctx context.Context, message domain.InboxMessage) error {
	if message.Processed {
		p.l.WithField("messageID", message.MessageID).Info("inbox message already processed")
		return nil
	}

	var request messages.OrderPaymentRequest
	if unmarshalErr := json.Unmarshal(message.Payload, &request); unmarshalErr != nil {
		return fmt.Errorf("decoding payment request %s: %s", message.MessageID, unmarshalErr.Error())
	}

	txErr := p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		return p.settle(c, tx, message, request)
	})
	if txErr != nil {
		return fmt.Errorf("processing payment for order %s: %w", request.OrderID, txErr)
	}
	return nil
}

func (p *PaymentService) settle(
	ctx context.Context,
	tx uow.TX,
	message domain.InboxMessage,
	request messages.OrderPaymentRequest,
) error {
	transactionRepo, transRepoErr :=
		uow.GetAs[PaymentTransactionRepository](tx, uow.RepositoryName(repoargs.PaymentTransactionRepoName))
	if transRepoErr != nil {
		return transRepoErr //nolint:wrapcheck
	}
	accountRepo, accountRepoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return accountRepoErr //nolint:wrapcheck
	}

	existing, findErr := transactionRepo.FindByOrderID(ctx, request.OrderID)
	if findErr == nil {
		p.l.WithField("orderID", request.OrderID).Info("payment already settled, re-staging result")
		return p.finish(ctx, tx, message, messages.PaymentResult{
			OrderID:      existing.OrderID,
			UserID:       existing.UserID,
			Success:      existing.Success,
			ErrorMessage: existing.ErrorMessage,
		})
	}
	if !errors.Is(findErr, domain.ErrRecordNotFound) {
		return findErr //nolint:wrapcheck
	}

	account, accountErr := accountRepo.FindByUserID(ctx, request.UserID)
	if accountErr != nil {
		if errors.Is(accountErr, domain.ErrRecordNotFound) {
			return p.settleFailure(ctx, tx, transactionRepo, message, request, domain.PaymentErrAccountNotFound)
		}
		return accountErr //nolint:wrapcheck
	}

	if account.Balance.LessThan(request.Amount) {
		return p.settleFailure(ctx, tx, transactionRepo, message, request, domain.PaymentErrInsufficientFunds)
	}

	return p.settleSuccess(ctx, tx, transactionRepo, accountRepo, message, request, account)
}

func (p *PaymentService) settleSuccess(
	ctx context.Context,
	tx uow.TX,
	transactionRepo PaymentTransactionRepository,
	accountRepo AccountRepository,
	message domain.InboxMessage,
	request messages.OrderPaymentRequest,
	account *domain.Account,
) error {
	if _, updErr := accountRepo.UpdateBalance(
		ctx, request.UserID, account.Balance.Sub(request.Amount),
	); updErr != nil {
		return updErr //nolint:wrapcheck
	}

	if _, createErr := transactionRepo.Create(ctx, repoargs.PaymentTransactionCreate{
		ID:      uuid.New(),
		OrderID: request.OrderID,
		UserID:  request.UserID,
		Amount:  request.Amount,
		Success: true,
	}); createErr != nil {
		return createErr //nolint:wrapcheck
	}

	p.l.WithFields(logrus.Fields{
		"orderID": request.OrderID,
		"amount":  request.Amount,
	}).Info("payment settled successfully")

	return p.finish(ctx, tx, message, messages.PaymentResult{
		OrderID: request.OrderID,
		UserID:  request.UserID,
		Success: true,
	})
}

func (p *PaymentService) settleFailure(
	ctx context.Context,
	tx uow.TX,
	transactionRepo PaymentTransactionRepository,
	message domain.InboxMessage,
	request messages.OrderPaymentRequest,
	reason string,
) error {
	if _, createErr := transactionRepo.Create(ctx, repoargs.PaymentTransactionCreate{
		ID:           uuid.New(),
		OrderID:      request.OrderID,
		UserID:       request.UserID,
		Amount:       request.Amount,
		Success:      false,
		ErrorMessage: reason,
	}); createErr != nil {
		return createErr //nolint:wrapcheck
	}

	p.l.WithFields(logrus.Fields{
		"orderID": request.OrderID,
		"reason":  reason,
	}).Info("payment declined")

	return p.finish(ctx, tx, message, messages.PaymentResult{
		OrderID:      request.OrderID,
		UserID:       request.UserID,
		Success:      false,
		ErrorMessage: reason,
	})
}

// finish общий хвост любого терминального исхода: пометить inbox-строку обработанной
// и положить PaymentResult в outbox — в рамках все той же транзакции.
func (p *PaymentService) finish(
	ctx context.Context,
	tx uow.TX,
	message domain.InboxMessage,
	result messages.PaymentResult,
) error {
	inboxRepo, inboxRepoErr := uow.GetAs[InboxRepository](tx, uow.RepositoryName(repoargs.InboxRepoName))
	if inboxRepoErr != nil {
		return inboxRepoErr //nolint:wrapcheck
	}
	outboxRepo, outboxRepoErr := uow.GetAs[OutboxRepository](tx, uow.RepositoryName(repoargs.OutboxRepoName))
	if outboxRepoErr != nil {
		return outboxRepoErr //nolint:wrapcheck
	}

	if markErr := inboxRepo.MarkProcessed(ctx, message.ID); markErr != nil {
		return markErr //nolint:wrapcheck
	}

	payload, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		return fmt.Errorf("encoding payment result: %s", marshalErr.Error())
	}

	_, outboxErr := outboxRepo.Create(ctx, repoargs.OutboxMessageCreate{
		ID:          uuid.New(),
		MessageType: domain.MessageTypePaymentResult,
		Payload:     payload,
	})
	return outboxErr //nolint:wrapcheck
}
