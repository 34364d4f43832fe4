package notify

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// DefaultExchange is the topic exchange notices are published to
const DefaultExchange = "dashboard_notices"

type publishChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher forwards notices to a topic exchange, keyed notice.<screen>
type AMQPPublisher struct {
	exchange string
	open     func() (publishChannel, error)
	closer   func() error
}

// DialAMQP connects to the broker and declares the exchange
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	p := NewAMQPPublisher(conn, exchange)
	p.closer = conn.Close
	return p, nil
}

// NewAMQPPublisher publishes over an existing connection. The caller owns conn.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) *AMQPPublisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &AMQPPublisher{
		exchange: exchange,
		open: func() (publishChannel, error) {
			return conn.Channel()
		},
	}
}

// RoutingKey returns the key a notice is published under
func RoutingKey(n Notice) string {
	screen := n.Screen
	if screen == "" {
		screen = "app"
	}
	return fmt.Sprintf("notice.%s", screen)
}

// Publish sends one notice
func (p *AMQPPublisher) Publish(n Notice) error {
	ch, err := p.open()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notice: %w", err)
	}

	return ch.Publish(
		p.exchange,
		RoutingKey(n),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   n.ID.String(),
			Timestamp:   n.At,
			Body:        body,
		},
	)
}

// Notify publishes n, logging any failure
func (p *AMQPPublisher) Notify(n Notice) {
	if err := p.Publish(n); err != nil {
		log.Printf("[Notice] Failed to publish notice %s: %v", n.ID, err)
	}
}

// Close releases the connection if the publisher dialled it
func (p *AMQPPublisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}
