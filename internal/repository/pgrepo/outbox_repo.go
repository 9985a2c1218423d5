package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type OutboxRepository struct {
	conn uow.DBTX
}

func NewOutboxRepository(conn uow.DBTX) *OutboxRepository {
	return &OutboxRepository{conn: conn}
}

const outboxColumns = "id, created_at, message_type, payload, published, published_at"

func (o *OutboxRepository) Create(
	ctx context.Context,
	args repoargs.OutboxMessageCreate,
) (*domain.OutboxMessage, error) {
	row := o.conn.QueryRow(ctx, `
		INSERT INTO transactional_outbox (id, message_type, payload, published)
		VALUES ($1, $2, $3, false)
		RETURNING `+outboxColumns,
		args.ID, args.MessageType, args.Payload)

	message, scanErr := scanOutboxMessage(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "creating outbox message %s", args.ID)
	}
	return message, nil
}

// GetUnpublished возвращает limit самых старых неопубликованных сообщений.
// SKIP LOCKED чтобы конкурирующие publisher'ы на общей БД пропускали захваченные строки,
// а не вставали на них в очередь.
func (o *OutboxRepository) GetUnpublished(ctx context.Context, limit uint) ([]domain.OutboxMessage, error) {
	rows, err := o.conn.Query(ctx, `
		SELECT `+outboxColumns+`
		FROM transactional_outbox
		WHERE published = false
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return nil, convertErr(err, "getting unpublished outbox messages")
	}
	defer rows.Close()

	var result []domain.OutboxMessage
	for rows.Next() {
		message, scanErr := scanOutboxMessage(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning outbox row")
		}
		result = append(result, *message)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting unpublished outbox messages")
	}
	return result, nil
}

// MarkPublished помечает сообщение опубликованным. Условие published = false гарантирует
// что строка переходит в published ровно один раз.
func (o *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	_, err := o.conn.Exec(ctx, `
		UPDATE transactional_outbox
		SET published = true, published_at = now()
		WHERE id = $1 AND published = false`, id)
	if err != nil {
		return convertErr(err, "marking outbox message %s published", id)
	}
	return nil
}

func scanOutboxMessage(row rowScanner) (*domain.OutboxMessage, error) {
	var message domain.OutboxMessage
	if err := row.Scan(
		&message.ID,
		&message.CreatedAt,
		&message.MessageType,
		&message.Payload,
		&message.Published,
		&message.PublishedAt,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &message, nil
}
