package rabbit

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DeliveryHandler durable-стейджинг одной доставки. Вызывается до подтверждения брокеру.
type DeliveryHandler func(ctx context.Context, messageID string, payload []byte) error

// Consume подписывается на очередь и блокируется до отмены контекста. Каждая доставка проходит
// через handler, после чего подтверждается брокеру независимо от исхода: если сообщение с таким
// message_id уже записано durable, редоставка от брокера нам не нужна. Ошибка handler'а означает,
// что сообщение не записано и брокер доставит его снова после переподключения.
func (c *Client) Consume(ctx context.Context, queue string, handler DeliveryHandler) error {
	// Отдельный канал: подписка живет параллельно с публикациями основного канала.
	channel, chanErr := c.conn.Channel()
	if chanErr != nil {
		return errors.Wrap(chanErr, "opening consumer channel")
	}
	defer func() { _ = channel.Close() }()

	if declareErr := declareQueue(channel, queue); declareErr != nil {
		return declareErr
	}

	if qosErr := channel.Qos(1, 0, false); qosErr != nil {
		return errors.Wrap(qosErr, "setting QoS")
	}

	deliveries, consumeErr := channel.Consume(
		queue, // queue
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if consumeErr != nil {
		return errors.Wrapf(consumeErr, "consuming from queue %s", queue)
	}

	c.l.WithField("queue", queue).Info("started consuming")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.Errorf("delivery channel for queue %s closed", queue)
			}

			messageID := delivery.MessageId
			if messageID == "" {
				// Брокер не дал идентификатор — генерируем свой. Дедупликация для такого
				// сообщения работать не будет, поэтому случай подсвечивается в логах.
				messageID = uuid.New().String()
				c.l.WithField("queue", queue).
					Warn("delivery without MessageId, generated fallback id, dedup is best effort")
			}

			if handleErr := handler(ctx, messageID, delivery.Body); handleErr != nil {
				c.l.WithError(handleErr).WithFields(logrus.Fields{
					"queue":     queue,
					"messageID": messageID,
				}).Error("handling delivery failed")
			}

			// Ack в любом случае: либо сообщение уже durable в inbox, либо оно не записалось
			// и вернется после reconnect'а — держать его unacked смысла нет.
			if ackErr := delivery.Ack(false); ackErr != nil {
				c.l.WithError(ackErr).WithField("queue", queue).Error("ack failed")
			}
		}
	}
}
