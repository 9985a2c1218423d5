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

type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
	l         *logrus.Entry
}

func NewOrderService(u uow.UOW, l *logrus.Logger) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "order",
		}),
	}, nil
}

// Create создает заказ в статусе NEW и в той же транзакции кладет OrderPaymentRequest
// в transactional_outbox. Либо закоммитятся оба, либо ни одного — заказ без команды на оплату
// (и команда без заказа) появиться не может. Прямого обращения к брокеру здесь нет.
func (o *OrderService) Create(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
	description string,
) (*domain.Order, error) {
	var order *domain.Order
	orderID := uuid.New()

	paymentRequest := messages.OrderPaymentRequest{
		OrderID:     orderID,
		UserID:      userID,
		Amount:      amount,
		Description: description,
	}
	payload, marshalErr := json.Marshal(paymentRequest)
	if marshalErr != nil {
		return nil, fmt.Errorf("creating order: %s", marshalErr.Error())
	}

	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		outboxRepo, outboxRepoErr := uow.GetAs[OutboxRepository](tx, uow.RepositoryName(repoargs.OutboxRepoName))
		if outboxRepoErr != nil {
			return outboxRepoErr //nolint:wrapcheck
		}

		var createErr error
		order, createErr = orderRepo.Create(c, repoargs.OrderCreate{
			ID:          orderID,
			UserID:      userID,
			Amount:      amount,
			Description: description,
			Status:      domain.OrderStatusNew,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}

		_, outboxErr := outboxRepo.Create(c, repoargs.OutboxMessageCreate{
			ID:          uuid.New(),
			MessageType: domain.MessageTypeOrderPaymentRequest,
			Payload:     payload,
		})
		return outboxErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating order: %w", txErr)
	}

	o.l.WithField("orderID", order.ID).Info("order created")
	return order, nil
}

// GetByUserID возвращает заказы юзера отсортированные по дате создания по убыванию.
func (o *OrderService) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

func (o *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := o.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// ApplyPaymentResult применяет PaymentResult из transactional_inbox: переводит заказ
// в FINISHED/CANCELED и помечает inbox-строку обработанной одной транзакцией.
// Повторный вызов для уже обработанной строки — no-op, поэтому редоставка безопасна.
func (o *OrderService) ApplyPaymentResult(ctx context.Context, message domain.InboxMessage) error {
	if message.Processed {
		o.l.WithField("messageID", message.MessageID).Info("inbox message already processed")
		return nil
	}

	var result messages.PaymentResult
	if unmarshalErr := json.Unmarshal(message.Payload, &result); unmarshalErr != nil {
		return fmt.Errorf("decoding payment result %s: %s", message.MessageID, unmarshalErr.Error())
	}

	status := domain.OrderStatusFinished
	if !result.Success {
		status = domain.OrderStatusCanceled
	}

	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		inboxRepo, inboxRepoErr := uow.GetAs[InboxRepository](tx, uow.RepositoryName(repoargs.InboxRepoName))
		if inboxRepoErr != nil {
			return inboxRepoErr //nolint:wrapcheck
		}

		if _, updErr := orderRepo.UpdateStatus(c, result.OrderID, status); updErr != nil {
			// Результат по чужому заказу применить некуда, и повтор это не исправит —
			// помечаем строку обработанной.
			if errors.Is(updErr, domain.ErrRecordNotFound) {
				o.l.WithFields(logrus.Fields{
					"orderID":   result.OrderID,
					"messageID": message.MessageID,
				}).Warn("payment result for unknown order, skipping")
				return inboxRepo.MarkProcessed(c, message.ID) //nolint:wrapcheck
			}
			return updErr //nolint:wrapcheck
		}

		return inboxRepo.MarkProcessed(c, message.ID) //nolint:wrapcheck
	})
	if txErr != nil {
		return fmt.Errorf("applying payment result: %w", txErr)
	}

	o.l.WithFields(logrus.Fields{
		"orderID": result.OrderID,
		"status":  status,
	}).Info("order status updated")
	return nil
}
