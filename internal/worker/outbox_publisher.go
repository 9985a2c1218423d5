// Package worker содержит фоновые циклы надежной доставки: publisher исходящих сообщений
// и процессор входящих.
package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/logger"
)

const (
	defaultDrainInterval  = 5 * time.Second
	defaultBatchSize uint = 10
)

// OutboxPublisher дренирует transactional_outbox: раз в interval забирает пачку неопубликованных
// сообщений (старые первыми) и проталкивает их в брокер. Бизнес-путь, положивший сообщение в outbox,
// publisher'а не ждет.
type OutboxPublisher struct {
	svs       OutboxServicer
	publisher Publisher
	routes    map[domain.MessageType]string
	l         *logrus.Entry
	batchSize uint
	interval  time.Duration
}

// NewOutboxPublisher создает publisher. routes задает очередь для каждого типа сообщения.
func NewOutboxPublisher(
	svs OutboxServicer,
	publisher Publisher,
	routes map[domain.MessageType]string,
	l *logrus.Logger,
) *OutboxPublisher {
	return &OutboxPublisher{
		svs:       svs,
		publisher: publisher,
		routes:    routes,
		l:         logger.WithComponent(l, "worker", "outbox_publisher"),
		batchSize: defaultBatchSize,
		interval:  defaultDrainInterval,
	}
}

// SetBatchSize устанавливает кол-во сообщений, обрабатываемых за один цикл.
func (p *OutboxPublisher) SetBatchSize(size uint) *OutboxPublisher {
	p.batchSize = size
	return p
}

// SetInterval устанавливает паузу между циклами.
func (p *OutboxPublisher) SetInterval(interval time.Duration) *OutboxPublisher {
	p.interval = interval
	return p
}

// Run крутит циклы публикации до отмены контекста.
func (p *OutboxPublisher) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"batchSize": p.batchSize,
		"interval":  p.interval.String(),
	}).Info("Starting")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-ticker.C:
			if err := p.drainOnce(ctx); err != nil {
				p.l.WithError(err).Error("drain cycle failed")
			}
		}
	}
}

// drainOnce один цикл: выборка пачки, публикация и пометка каждой строки по отдельности.
// Ошибка публикации одного сообщения не прерывает цикл — строка останется неопубликованной
// и будет повторена в следующем цикле. Ошибка выборки прерывает весь цикл.
func (p *OutboxPublisher) drainOnce(ctx context.Context) error {
	batch, batchErr := p.svs.UnpublishedBatch(ctx, p.batchSize)
	if batchErr != nil {
		return errors.Wrap(batchErr, "fetching unpublished batch")
	}

	for _, message := range batch {
		l := p.l.WithFields(logrus.Fields{
			"outboxID":    message.ID,
			"messageType": message.MessageType,
		})

		queue, ok := p.routes[message.MessageType]
		if !ok {
			// Нет маршрута — ошибка конфигурации. Строку не трогаем, чтобы она не потерялась
			// молча, и идем дальше.
			l.Error("no route for message type")
			continue
		}

		if pubErr := p.publisher.Publish(ctx, queue, message.ID.String(), message.Payload); pubErr != nil {
			l.WithError(pubErr).Error("publish failed, will retry next cycle")
			continue
		}

		// Пометка сразу после каждой публикации: падение посреди пачки теряет максимум
		// текущее сообщение (оно уйдет повторно), а не пометки уже опубликованных.
		if markErr := p.svs.MarkPublished(ctx, message.ID); markErr != nil {
			l.WithError(markErr).Error("marking published failed, message will be re-published")
			continue
		}

		l.WithField("queue", queue).Info("message published")
	}
	return nil
}
