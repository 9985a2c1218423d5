package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      string
	Amount      decimal.Decimal
	Description string
	Status      OrderStatusType
}

type Account struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string
	Balance   decimal.Decimal
}

// PaymentTransaction неизменяемая запись об одной попытке оплаты. Уникальность OrderID —
// якорь идемпотентности всей обработки платежей.
type PaymentTransaction struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	OrderID      uuid.UUID
	UserID       string
	Amount       decimal.Decimal
	Success      bool
	ErrorMessage string
}

// OutboxMessage исходящее сообщение, записанное в той же транзакции что и бизнес-мутация.
type OutboxMessage struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	MessageType MessageType
	Payload     []byte
	Published   bool
	PublishedAt *time.Time
}

// InboxMessage входящее сообщение, сохраненное до применения эффекта. MessageID — идентификатор
// присвоенный брокером, по нему выполняется дедупликация повторных доставок.
type InboxMessage struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	MessageID   string
	MessageType MessageType
	Payload     []byte
	Processed   bool
	ProcessedAt *time.Time
}
