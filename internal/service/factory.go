package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type OrderAppServices struct {
	OrderService  *OrderService
	OutboxService *OutboxService
	InboxService  *InboxService
}

type PaymentAppServices struct {
	PaymentService *PaymentService
	OutboxService  *OutboxService
	InboxService   *InboxService
}

func OrdersFactory(unitOfWork uow.UOW, l *logrus.Logger) (*OrderAppServices, error) {
	orderService, orderServiceErr := NewOrderService(unitOfWork, l)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	outboxService, outboxServiceErr := NewOutboxService(unitOfWork)
	if outboxServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", outboxServiceErr.Error())
	}

	inboxService, inboxServiceErr := NewInboxService(unitOfWork)
	if inboxServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", inboxServiceErr.Error())
	}

	return &OrderAppServices{
		OrderService:  orderService,
		OutboxService: outboxService,
		InboxService:  inboxService,
	}, nil
}

func PaymentsFactory(unitOfWork uow.UOW, l *logrus.Logger) (*PaymentAppServices, error) {
	paymentService, paymentServiceErr := NewPaymentService(unitOfWork, l)
	if paymentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", paymentServiceErr.Error())
	}

	outboxService, outboxServiceErr := NewOutboxService(unitOfWork)
	if outboxServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", outboxServiceErr.Error())
	}

	inboxService, inboxServiceErr := NewInboxService(unitOfWork)
	if inboxServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", inboxServiceErr.Error())
	}

	return &PaymentAppServices{
		PaymentService: paymentService,
		OutboxService:  outboxService,
		InboxService:   inboxService,
	}, nil
}
