package repoargs

import (
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
)

type OutboxMessageCreate struct {
	ID          uuid.UUID
	MessageType domain.MessageType
	Payload     []byte
}

type InboxMessageCreate struct {
	ID          uuid.UUID
	MessageID   string
	MessageType domain.MessageType
	Payload     []byte
}
