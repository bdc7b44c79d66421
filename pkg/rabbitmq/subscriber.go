package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Subscriber reads domain events from a queue bound to the shareit exchange.
type Subscriber struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewSubscriber declares queue and binds it with bindingKey, e.g. "booking.*".
// An empty queue name gets a server-named exclusive queue.
func NewSubscriber(url, queue, bindingKey string) (*Subscriber, error) {
	conn, ch, err := open(url)
	if err != nil {
		return nil, err
	}

	durable, exclusive := true, false
	if queue == "" {
		durable, exclusive = false, true
	}
	q, err := ch.QueueDeclare(queue, durable, !durable, exclusive, false, nil)
	if err != nil {
		closeAll(ch, conn)
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.QueueBind(q.Name, bindingKey, ExchangeName, false, nil); err != nil {
		closeAll(ch, conn)
		return nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	return &Subscriber{conn: conn, channel: ch, queue: q.Name}, nil
}

// Consume delivers messages with auto-ack.
func (s *Subscriber) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := s.channel.Consume(s.queue, "", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}
	return msgs, nil
}

func (s *Subscriber) Close() {
	closeAll(s.channel, s.conn)
}
