package repoargs

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
)

type OrderCreate struct {
	ID          uuid.UUID
	UserID      string
	Amount      decimal.Decimal
	Description string
	Status      domain.OrderStatusType
}

type PaymentTransactionCreate struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	UserID       string
	Amount       decimal.Decimal
	Success      bool
	ErrorMessage string
}
