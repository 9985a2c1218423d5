// Package messages описывает схемы сообщений, которыми обмениваются сервисы заказов и платежей.
package messages

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Имена очередей используются как routing key как есть.
const (
	QueueOrderPayments  = "order_payments"
	QueuePaymentResults = "payment_results"
)

// OrderPaymentRequest команда на списание средств. orders -> payments.
type OrderPaymentRequest struct {
	OrderID     uuid.UUID       `json:"orderId"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// PaymentResult итог обработки платежа. payments -> orders. ErrorMessage заполнен только при неуспехе.
type PaymentResult struct {
	OrderID      uuid.UUID `json:"orderId"`
	UserID       string    `json:"userId"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}
