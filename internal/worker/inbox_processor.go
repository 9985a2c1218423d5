package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/internal/logger"
)

// InboxProcessor дренирует transactional_inbox: раз в interval забирает пачку необработанных
// сообщений (старые первыми) и синхронно скармливает их handler'у.
type InboxProcessor struct {
	svs       InboxServicer
	handler   InboxHandler
	l         *logrus.Entry
	batchSize uint
	interval  time.Duration
}

func NewInboxProcessor(svs InboxServicer, handler InboxHandler, l *logrus.Logger) *InboxProcessor {
	return &InboxProcessor{
		svs:       svs,
		handler:   handler,
		l:         logger.WithComponent(l, "worker", "inbox_processor"),
		batchSize: defaultBatchSize,
		interval:  defaultDrainInterval,
	}
}

// SetBatchSize устанавливает кол-во сообщений, обрабатываемых за один цикл.
func (p *InboxProcessor) SetBatchSize(size uint) *InboxProcessor {
	p.batchSize = size
	return p
}

// SetInterval устанавливает паузу между циклами.
func (p *InboxProcessor) SetInterval(interval time.Duration) *InboxProcessor {
	p.interval = interval
	return p
}

// Run крутит циклы обработки до отмены контекста.
func (p *InboxProcessor) Run(ctx context.Context) {
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

// drainOnce один цикл: выборка пачки и по-строчная обработка. Ошибка handler'а логируется,
// строка остается необработанной и будет повторена — поэтому handler обязан быть идемпотентным.
// Ошибка выборки прерывает весь цикл.
func (p *InboxProcessor) drainOnce(ctx context.Context) error {
	batch, batchErr := p.svs.UnprocessedBatch(ctx, p.batchSize)
	if batchErr != nil {
		return errors.Wrap(batchErr, "fetching unprocessed batch")
	}

	for _, message := range batch {
		if handleErr := p.handler.Handle(ctx, message); handleErr != nil {
			p.l.WithError(handleErr).WithFields(logrus.Fields{
				"inboxID":   message.ID,
				"messageID": message.MessageID,
			}).Error("handling failed, will retry next cycle")
		}
	}
	return nil
}
