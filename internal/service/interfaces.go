package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type AccountRepository interface {
	Create(ctx context.Context, userID string) (*domain.Account, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) (*domain.Account, error)
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.OrderCreate) (*domain.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatusType) (*domain.Order, error)
}

type PaymentTransactionRepository interface {
	Create(ctx context.Context, args repoargs.PaymentTransactionCreate) (*domain.PaymentTransaction, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.PaymentTransaction, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, args repoargs.OutboxMessageCreate) (*domain.OutboxMessage, error)
	GetUnpublished(ctx context.Context, limit uint) ([]domain.OutboxMessage, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
}

type InboxRepository interface {
	Create(ctx context.Context, args repoargs.InboxMessageCreate) (*domain.InboxMessage, error)
	FindByMessageID(ctx context.Context, messageID string) (*domain.InboxMessage, error)
	GetUnprocessed(ctx context.Context, limit uint) ([]domain.InboxMessage, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
}
