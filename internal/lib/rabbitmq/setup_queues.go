package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// QueueConfig описывает очередь и её routing key в exchange событий.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetUserEventQueues возвращает очереди для воркеров, слушающих события пользователей.
func GetUserEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "user.registered", RoutingKey: "registered"},
		// при необходимости дополнительные очереди для других воркеров
	}
}

// Setup объявляет exchange событий и привязывает к нему очереди.
func Setup(ch *amqp.Channel, exchange string) error {
	const op = "rabbitmq.Setup"
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range GetUserEventQueues() {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
