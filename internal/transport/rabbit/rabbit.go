// Package rabbit транспорт до RabbitMQ. Ядро системы видит брокера только через две операции:
// публикация в очередь и подписка на очередь.
package rabbit

import (
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/internal/logger"
)

const (
	maxDialAttempts   = 10
	dialRetryInterval = 2 * time.Second
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	l       *logrus.Entry
}

// Connect подключается к брокеру с повторными попытками (RabbitMQ в докере поднимается
// дольше сервиса). Исчерпание попыток — фатальная ошибка для сервиса.
func Connect(url string, l *logrus.Logger) (*Client, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < maxDialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		l.WithError(err).Warnf("failed to connect to RabbitMQ, retrying in 2s... (%d/%d)", i+1, maxDialAttempts)
		time.Sleep(dialRetryInterval)
	}
	if err != nil {
		return nil, errors.Wrap(err, "connecting to RabbitMQ")
	}

	channel, chanErr := conn.Channel()
	if chanErr != nil {
		_ = conn.Close()
		return nil, errors.Wrap(chanErr, "opening channel")
	}

	return &Client{
		conn:    conn,
		channel: channel,
		l:       logger.WithComponent(l, "transport", "rabbit"),
	}, nil
}

func (c *Client) Close() {
	_ = c.channel.Close()
	_ = c.conn.Close()
}

func declareQueue(channel *amqp.Channel, queue string) error {
	_, err := channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	return errors.Wrapf(err, "declaring queue %s", queue)
}
