package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type InboxRepository struct {
	conn uow.DBTX
}

func NewInboxRepository(conn uow.DBTX) *InboxRepository {
	return &InboxRepository{conn: conn}
}

const inboxColumns = "id, created_at, message_id, message_type, payload, processed, processed_at"

// Create сохраняет входящее сообщение. Уникальный индекс по message_id отсечет повторную доставку
// того же сообщения брокером — вернется domain.ErrDuplicateKey.
func (i *InboxRepository) Create(
	ctx context.Context,
	args repoargs.InboxMessageCreate,
) (*domain.InboxMessage, error) {
	row := i.conn.QueryRow(ctx, `
		INSERT INTO transactional_inbox (id, message_id, message_type, payload, processed)
		VALUES ($1, $2, $3, $4, false)
		RETURNING `+inboxColumns,
		args.ID, args.MessageID, args.MessageType, args.Payload)

	message, scanErr := scanInboxMessage(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "creating inbox message %s", args.MessageID)
	}
	return message, nil
}

func (i *InboxRepository) FindByMessageID(ctx context.Context, messageID string) (*domain.InboxMessage, error) {
	row := i.conn.QueryRow(ctx, `
		SELECT `+inboxColumns+`
		FROM transactional_inbox
		WHERE message_id = $1`, messageID)

	message, scanErr := scanInboxMessage(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "finding inbox message by broker id %s", messageID)
	}
	return message, nil
}

// GetUnprocessed возвращает limit самых старых необработанных сообщений.
func (i *InboxRepository) GetUnprocessed(ctx context.Context, limit uint) ([]domain.InboxMessage, error) {
	rows, err := i.conn.Query(ctx, `
		SELECT `+inboxColumns+`
		FROM transactional_inbox
		WHERE processed = false
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return nil, convertErr(err, "getting unprocessed inbox messages")
	}
	defer rows.Close()

	var result []domain.InboxMessage
	for rows.Next() {
		message, scanErr := scanInboxMessage(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning inbox row")
		}
		result = append(result, *message)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting unprocessed inbox messages")
	}
	return result, nil
}

func (i *InboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	_, err := i.conn.Exec(ctx, `
		UPDATE transactional_inbox
		SET processed = true, processed_at = now()
		WHERE id = $1 AND processed = false`, id)
	if err != nil {
		return convertErr(err, "marking inbox message %s processed", id)
	}
	return nil
}

func scanInboxMessage(row rowScanner) (*domain.InboxMessage, error) {
	var message domain.InboxMessage
	if err := row.Scan(
		&message.ID,
		&message.CreatedAt,
		&message.MessageID,
		&message.MessageType,
		&message.Payload,
		&message.Processed,
		&message.ProcessedAt,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &message, nil
}
