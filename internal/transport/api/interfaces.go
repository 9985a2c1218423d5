package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
)

// OrderServicer интерфейс исключительно для моков.
type OrderServicer interface {
	Create(ctx context.Context, userID string, amount decimal.Decimal, description string) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

// AccountServicer интерфейс исключительно для моков.
type AccountServicer interface {
	CreateAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	TopUp(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error)
}
