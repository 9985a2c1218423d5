package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

// InboxService записывает входящие сообщения брокера в transactional_inbox с дедупликацией
// по message_id и отдает необработанные строки фоновому процессору.
type InboxService struct {
	inboxRepo InboxRepository
}

func NewInboxService(u uow.UOW) (*InboxService, error) {
	inboxRepo, err := uow.GetRepositoryAs[InboxRepository](u, uow.RepositoryName(repoargs.InboxRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &InboxService{inboxRepo: inboxRepo}, nil
}

// Record сохраняет доставленное сообщение. Возвращает created=false если сообщение с таким
// message_id уже записано (повторная доставка) — в этом случае вставка не выполняется, вызывающая
// сторона все равно подтверждает доставку брокеру.
func (i *InboxService) Record(
	ctx context.Context,
	messageType domain.MessageType,
	messageID string,
	payload []byte,
) (message *domain.InboxMessage, created bool, err error) {
	existing, findErr := i.inboxRepo.FindByMessageID(ctx, messageID)
	if findErr == nil {
		return existing, false, nil
	}
	if !errors.Is(findErr, domain.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("recording inbox message: %w", findErr)
	}

	inserted, createErr := i.inboxRepo.Create(ctx, repoargs.InboxMessageCreate{
		ID:          uuid.New(),
		MessageID:   messageID,
		MessageType: messageType,
		Payload:     payload,
	})
	if createErr != nil {
		// Гонка с параллельной доставкой того же сообщения: уникальный индекс по message_id
		// сработал после нашей проверки. Считаем сообщение записанным.
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("recording inbox message: %w", createErr)
	}
	return inserted, true, nil
}

// UnprocessedBatch возвращает limit самых старых необработанных сообщений.
func (i *InboxService) UnprocessedBatch(ctx context.Context, limit uint) ([]domain.InboxMessage, error) {
	batch, err := i.inboxRepo.GetUnprocessed(ctx, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return batch, nil
}
