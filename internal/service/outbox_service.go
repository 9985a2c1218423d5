package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

// OutboxService доступ к стейджинговой таблице исходящих сообщений для фонового publisher'а.
// Сами записи в outbox создаются бизнес-сервисами внутри их транзакций, не здесь.
type OutboxService struct {
	outboxRepo OutboxRepository
}

func NewOutboxService(u uow.UOW) (*OutboxService, error) {
	outboxRepo, err := uow.GetRepositoryAs[OutboxRepository](u, uow.RepositoryName(repoargs.OutboxRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &OutboxService{outboxRepo: outboxRepo}, nil
}

// UnpublishedBatch возвращает limit самых старых неопубликованных сообщений.
func (o *OutboxService) UnpublishedBatch(ctx context.Context, limit uint) ([]domain.OutboxMessage, error) {
	messages, err := o.outboxRepo.GetUnpublished(ctx, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return messages, nil
}

// MarkPublished помечает одну строку опубликованной. Вызывается сразу после успешной публикации
// каждого сообщения, не батчем — падение посреди цикла не теряет уже опубликованные строки.
func (o *OutboxService) MarkPublished(ctx context.Context, id uuid.UUID) error {
	return o.outboxRepo.MarkPublished(ctx, id) //nolint:wrapcheck
}
