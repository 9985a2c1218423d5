package rabbit

import (
	"context"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publish отправляет payload в очередь queue через default exchange. Сообщение уходит persistent,
// messageID (id outbox-строки) кладется в свойство MessageId — по нему принимающая сторона
// дедуплицирует повторные доставки.
func (c *Client) Publish(ctx context.Context, queue string, messageID string, payload []byte) error {
	if declareErr := declareQueue(c.channel, queue); declareErr != nil {
		return declareErr
	}

	pubErr := c.channel.PublishWithContext(ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    messageID,
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		})
	if pubErr != nil {
		return errors.Wrapf(pubErr, "publishing to queue %s", queue)
	}

	c.l.WithField("queue", queue).Debug("message published to broker")
	return nil
}
