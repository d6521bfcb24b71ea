// Package amqp publishes ledger events to a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/ericfisherdev/budgetbot/internal/domain/model"
	"github.com/ericfisherdev/budgetbot/internal/domain/port/driven"
)

const publishTimeout = 5 * time.Second

// Compile-time interface satisfaction checks.
var (
	_ driven.EventPublisher = (*Publisher)(nil)
	_ driven.EventPublisher = NopPublisher{}
)

// channel is the subset of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends each ledger event as a persistent JSON message routed by
// event type ("category.added", "expense.added").
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	logger   *slog.Logger
}

// Dial connects to the broker at url and declares a durable topic exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := newPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{channel: ch, exchange: exchange, logger: logger}
}

// Publish encodes event and publishes it with a bounded timeout.
func (p *Publisher) Publish(ctx context.Context, event model.LedgerEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Debug("published ledger event", "type", event.Type, "exchange", p.exchange)
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher discards events. It is used when no broker is configured.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, model.LedgerEvent) error { return nil }
