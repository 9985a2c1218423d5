package worker

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type OutboxServicer interface {
	UnpublishedBatch(ctx context.Context, limit uint) ([]domain.OutboxMessage, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
}

type InboxServicer interface {
	UnprocessedBatch(ctx context.Context, limit uint) ([]domain.InboxMessage, error)
}

// Publisher контракт брокера со стороны отправителя.
type Publisher interface {
	Publish(ctx context.Context, queue string, messageID string, payload []byte) error
}

// InboxHandler применяет эффект одного inbox-сообщения. Реализация обязана быть идемпотентной:
// процессор гарантирует лишь at-least-once вызов.
type InboxHandler interface {
	Handle(ctx context.Context, message domain.InboxMessage) error
}

// InboxHandlerFunc адаптер, чтобы методы сервисов подходили под InboxHandler.
type InboxHandlerFunc func(ctx context.Context, message domain.InboxMessage) error

func (f InboxHandlerFunc) Handle(ctx context.Context, message domain.InboxMessage) error {
	return f(ctx, message)
}
